// Package sync orchestrates the dashboard's data flow: the startup fetch
// sequence, scenario switching, user-confirmed refresh, and the bulk
// auto-assign batch.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/floorview/floorview/internal/observability"
	"github.com/floorview/floorview/internal/store"
	"github.com/floorview/floorview/pkg/models"
)

// Backend is the subset of the API client the controller drives.
type Backend interface {
	ListScenarios(ctx context.Context) ([]models.ScenarioInfo, error)
	GetScenario(ctx context.Context, id string) (*models.Scenario, error)
	Refresh(ctx context.Context) error
	AssignTask(ctx context.Context, taskID, mechanicID, scenarioID string) error
}

// ErrStale marks a fetch sequence superseded by a newer one; its results
// were discarded before reaching the store.
var ErrStale = errors.New("fetch superseded by a newer request")

// ErrBusy is returned when a refresh is requested while one is in flight.
var ErrBusy = errors.New("refresh already in progress")

// Controller drives fetches into the store and dispatches re-renders to
// whoever observes the store afterwards.
type Controller struct {
	backend Backend
	store   *store.Store
	events  observability.EventLog

	workers         []string
	defaultScenario string

	generation atomic.Uint64

	mu   sync.Mutex
	busy bool
}

// NewController wires a Controller. workers is the fixed pool auto-assign
// round-robins over; defaultScenario may be empty to use the first listed.
func NewController(backend Backend, st *store.Store, events observability.EventLog, workers []string, defaultScenario string) *Controller {
	return &Controller{
		backend:         backend,
		store:           st,
		events:          events,
		workers:         workers,
		defaultScenario: defaultScenario,
	}
}

// StartupResult reports which scenarios loaded and which fetches failed.
type StartupResult struct {
	Loaded []string
	Failed map[string]error
}

// Startup runs the startup sequence: fetch the scenario list (fatal on
// failure), fetch each scenario's detail (failures skipped), swap the store,
// and select the default scenario. Results from a superseded call are
// discarded and ErrStale returned.
func (c *Controller) Startup(ctx context.Context) (*StartupResult, error) {
	gen := c.generation.Add(1)

	infos, err := c.backend.ListScenarios(ctx)
	if err != nil {
		observability.LogEvent(c.events, observability.EventFetchFailed,
			"scenario list fetch failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("fetching scenario list: %w", err)
	}

	loaded := make(map[string]*models.Scenario, len(infos))
	order := make([]string, 0, len(infos))
	failed := make(map[string]error)

	for _, info := range infos {
		sc, err := c.backend.GetScenario(ctx, info.ID)
		if err != nil {
			failed[info.ID] = err
			observability.LogEvent(c.events, observability.EventFetchFailed,
				"scenario fetch failed", map[string]any{"scenario": info.ID, "error": err.Error()})
			continue
		}
		store.Validate(sc)
		loaded[info.ID] = sc
		order = append(order, info.ID)
		observability.LogEvent(c.events, observability.EventScenarioFetched,
			"scenario fetched", map[string]any{"scenario": info.ID, "tasks": len(sc.Tasks), "degraded": sc.Degraded})
	}

	// A newer startup or refresh has been issued since this one began;
	// its results win and ours are dropped.
	if c.generation.Load() != gen {
		return nil, ErrStale
	}

	c.store.ReplaceAll(loaded, order)
	if c.defaultScenario != "" {
		c.store.Select(c.defaultScenario)
	}

	return &StartupResult{Loaded: order, Failed: failed}, nil
}

// SwitchScenario selects the target scenario. Unknown ids are a no-op
// returning false, leaving all state unchanged.
func (c *Controller) SwitchScenario(id string) bool {
	if !c.store.Select(id) {
		return false
	}
	observability.LogEvent(c.events, observability.EventScenarioSwitched,
		"scenario switched", map[string]any{"scenario": id})
	return true
}

// Busy reports whether a refresh sequence is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// RefreshAll triggers a backend recompute and re-runs the startup sequence.
// The busy state is set for the whole duration and cleared on every exit
// path. The old store contents stay live until the new data is complete.
func (c *Controller) RefreshAll(ctx context.Context) (*StartupResult, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	c.busy = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	observability.LogEvent(c.events, observability.EventRefreshStarted, "refresh started", nil)

	if err := c.backend.Refresh(ctx); err != nil {
		observability.LogEvent(c.events, observability.EventRefreshFailed,
			"refresh failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("backend refresh: %w", err)
	}

	result, err := c.Startup(ctx)
	if err != nil {
		observability.LogEvent(c.events, observability.EventRefreshFailed,
			"reload after refresh failed", map[string]any{"error": err.Error()})
		return nil, err
	}

	observability.LogEvent(c.events, observability.EventRefreshCompleted,
		"refresh completed", map[string]any{"scenarios": len(result.Loaded)})
	return result, nil
}

// Assignment pairs a task with the worker it was given to.
type Assignment struct {
	TaskID     string
	MechanicID string
}

// AssignResult reports a finished auto-assign batch.
type AssignResult struct {
	Assignments []Assignment
	Attempted   int
	Succeeded   int
	Failures    map[string]error
}

// AutoAssign distributes the given tasks round-robin over the worker pool,
// in control order: task i goes to worker i mod len(pool). Individual
// failures are recorded and excluded from the success count; the batch
// never aborts.
func (c *Controller) AutoAssign(ctx context.Context, taskIDs []string) (*AssignResult, error) {
	if len(c.workers) == 0 {
		return nil, errors.New("no workers configured for auto-assign")
	}

	scenarioID := c.store.Selection().ScenarioID
	result := &AssignResult{Failures: make(map[string]error)}

	for i, taskID := range taskIDs {
		worker := c.workers[i%len(c.workers)]
		result.Attempted++
		if err := c.backend.AssignTask(ctx, taskID, worker, scenarioID); err != nil {
			result.Failures[taskID] = err
			observability.LogEvent(c.events, observability.EventAssignFailed,
				"assignment failed", map[string]any{"task": taskID, "mechanic": worker, "error": err.Error()})
			continue
		}
		result.Succeeded++
		result.Assignments = append(result.Assignments, Assignment{TaskID: taskID, MechanicID: worker})
		observability.LogEvent(c.events, observability.EventAssignSucceeded,
			"task assigned", map[string]any{"task": taskID, "mechanic": worker})
	}
	return result, nil
}
