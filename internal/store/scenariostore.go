// Package store holds fetched scenarios and the session's selection state.
// Scenarios are immutable once ingested; refresh replaces the whole mapping
// in one step so a render never sees a partially-populated store.
package store

import (
	"context"
	"sync"

	"github.com/floorview/floorview/pkg/models"
)

// Fetcher fetches one scenario's full data from the backend.
type Fetcher interface {
	GetScenario(ctx context.Context, id string) (*models.Scenario, error)
}

// Store is the in-memory scenario cache plus the session filter selection.
type Store struct {
	mu        sync.RWMutex
	scenarios map[string]*models.Scenario
	order     []string
	selection models.FilterSelection
}

// New creates an empty Store with the default selection.
func New() *Store {
	return &Store{
		scenarios: make(map[string]*models.Scenario),
		selection: models.DefaultSelection(""),
	}
}

// Load fetches every id through the fetcher. A failed id is recorded and
// skipped; the others continue. The returned map holds one error per failed
// id and is empty on full success.
func (s *Store) Load(ctx context.Context, fetcher Fetcher, ids []string) map[string]error {
	loaded := make(map[string]*models.Scenario, len(ids))
	order := make([]string, 0, len(ids))
	failed := make(map[string]error)

	for _, id := range ids {
		sc, err := fetcher.GetScenario(ctx, id)
		if err != nil {
			failed[id] = err
			continue
		}
		Validate(sc)
		loaded[id] = sc
		order = append(order, id)
	}

	s.ReplaceAll(loaded, order)
	return failed
}

// ReplaceAll atomically swaps in a new scenario mapping. If the previously
// selected scenario id is absent from the new mapping, selection falls back
// to the first id in order; an empty mapping clears the selection.
func (s *Store) ReplaceAll(scenarios map[string]*models.Scenario, order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarios = scenarios
	s.order = append([]string(nil), order...)

	if _, ok := s.scenarios[s.selection.ScenarioID]; !ok {
		if len(s.order) > 0 {
			s.selection.ScenarioID = s.order[0]
		} else {
			s.selection.ScenarioID = ""
		}
	}
}

// Get returns the scenario with the given id, or nil if not loaded.
func (s *Store) Get(id string) *models.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenarios[id]
}

// IDs returns the loaded scenario ids in load order.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Len returns the number of loaded scenarios.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenarios)
}

// Selected returns the currently selected scenario, or nil when nothing is
// loaded.
func (s *Store) Selected() *models.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenarios[s.selection.ScenarioID]
}

// Selection returns a snapshot copy of the session selection. Renderers
// take this snapshot, never the live state.
func (s *Store) Selection() models.FilterSelection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// Select switches to the given scenario id. Unknown ids are a no-op and
// return false; the selection is unchanged.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scenarios[id]; !ok {
		return false
	}
	s.selection.ScenarioID = id
	return true
}

// SetView switches the active view. Switching views never resets the
// team/shift/product filters.
func (s *Store) SetView(v models.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.View = v
}

// SetTeam sets the team filter ("all" clears it).
func (s *Store) SetTeam(team string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Team = team
}

// SetShift sets the shift filter ("all" clears it).
func (s *Store) SetShift(shift string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Shift = shift
}

// SetProduct sets the product filter ("all" clears it).
func (s *Store) SetProduct(product string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Product = product
}

// Validate checks a scenario's cross-references at ingestion: every task
// must name a known product, and every dependency a known task id. Failures
// mark the scenario degraded rather than rejecting it, so one bad row does
// not take the whole scenario off the dashboard.
func Validate(sc *models.Scenario) {
	products := make(map[string]bool, len(sc.Products))
	for _, p := range sc.Products {
		products[p.Name] = true
	}
	taskIDs := make(map[string]bool, len(sc.Tasks))
	for _, t := range sc.Tasks {
		taskIDs[t.ID] = true
	}

	sc.Problems = nil
	for _, t := range sc.Tasks {
		if t.Product != "" && !products[t.Product] {
			sc.Problems = append(sc.Problems, models.ReferenceProblem{
				TaskID: t.ID, Field: "product", Ref: t.Product,
			})
		}
		for _, dep := range t.Dependencies {
			if !taskIDs[dep.TaskID] {
				sc.Problems = append(sc.Problems, models.ReferenceProblem{
					TaskID: t.ID, Field: "dependency", Ref: dep.TaskID,
				})
			}
		}
	}
	sc.Degraded = len(sc.Problems) > 0
}
