package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/floorview/floorview/internal/store"
	"github.com/floorview/floorview/pkg/models"
)

// fakeBackend is a scriptable Backend for controller tests.
type fakeBackend struct {
	infos       []models.ScenarioInfo
	listErr     error
	scenarioErr map[string]error
	refreshErr  error
	assignErr   map[string]error

	assigned []Assignment
}

func (f *fakeBackend) ListScenarios(context.Context) ([]models.ScenarioInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.infos, nil
}

func (f *fakeBackend) GetScenario(_ context.Context, id string) (*models.Scenario, error) {
	if err := f.scenarioErr[id]; err != nil {
		return nil, err
	}
	return &models.Scenario{ID: id}, nil
}

func (f *fakeBackend) Refresh(context.Context) error {
	return f.refreshErr
}

func (f *fakeBackend) AssignTask(_ context.Context, taskID, mechanicID, _ string) error {
	if err := f.assignErr[taskID]; err != nil {
		return err
	}
	f.assigned = append(f.assigned, Assignment{TaskID: taskID, MechanicID: mechanicID})
	return nil
}

func infos(ids ...string) []models.ScenarioInfo {
	out := make([]models.ScenarioInfo, len(ids))
	for i, id := range ids {
		out[i] = models.ScenarioInfo{ID: id, Name: id}
	}
	return out
}

func TestStartup_ListFailureIsFatal(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{listErr: errors.New("connection refused")}
	c := NewController(backend, st, nil, []string{"m1"}, "")

	if _, err := c.Startup(context.Background()); err == nil {
		t.Fatal("expected startup to fail when the list fetch fails")
	}
	if st.Len() != 0 {
		t.Fatalf("store must stay empty after a fatal startup, has %d", st.Len())
	}
}

func TestStartup_SkipsFailedScenarios(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{
		infos:       infos("s1", "s2", "s3", "s4"),
		scenarioErr: map[string]error{"s3": errors.New("500")},
	}
	c := NewController(backend, st, nil, []string{"m1"}, "")

	result, err := c.Startup(context.Background())
	if err != nil {
		t.Fatalf("startup: %v", err)
	}
	if len(result.Loaded) != 3 {
		t.Fatalf("loaded %v, want 3 scenarios", result.Loaded)
	}
	if result.Failed["s3"] == nil {
		t.Fatalf("expected s3 in failures, got %v", result.Failed)
	}
	// Selection lands on the first listed scenario.
	if got := st.Selection().ScenarioID; got != "s1" {
		t.Fatalf("selection = %q, want s1", got)
	}
}

func TestStartup_SelectsConfiguredDefault(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{infos: infos("s1", "s2")}
	c := NewController(backend, st, nil, []string{"m1"}, "s2")

	if _, err := c.Startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}
	if got := st.Selection().ScenarioID; got != "s2" {
		t.Fatalf("selection = %q, want configured default s2", got)
	}
}

func TestSwitchScenario_UnknownIsNoOp(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{infos: infos("s1")}
	c := NewController(backend, st, nil, []string{"m1"}, "")
	if _, err := c.Startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}

	if c.SwitchScenario("ghost") {
		t.Fatal("switching to an unknown scenario must return false")
	}
	if got := st.Selection().ScenarioID; got != "s1" {
		t.Fatalf("selection moved to %q", got)
	}
}

func TestRefreshAll_BackendFailureKeepsOldData(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{infos: infos("s1")}
	c := NewController(backend, st, nil, []string{"m1"}, "")
	if _, err := c.Startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}

	backend.refreshErr = errors.New("recompute failed")
	if _, err := c.RefreshAll(context.Background()); err == nil {
		t.Fatal("expected refresh to fail")
	}
	if st.Len() != 1 {
		t.Fatalf("old data must survive a failed refresh, store has %d", st.Len())
	}
	if c.Busy() {
		t.Fatal("busy flag must clear after a failed refresh")
	}
}

func TestRefreshAll_ClearsBusyOnSuccess(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{infos: infos("s1")}
	c := NewController(backend, st, nil, []string{"m1"}, "")

	result, err := c.RefreshAll(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if len(result.Loaded) != 1 {
		t.Fatalf("loaded %v, want [s1]", result.Loaded)
	}
	if c.Busy() {
		t.Fatal("busy flag must clear after refresh")
	}
}

func TestAutoAssign_RoundRobin(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{infos: infos("s1")}
	workers := []string{"m1", "m2", "m3", "m4"}
	c := NewController(backend, st, nil, workers, "")
	if _, err := c.Startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}

	tasks := []string{"t1", "t2", "t3", "t4", "t5"}
	result, err := c.AutoAssign(context.Background(), tasks)
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}

	// Five tasks over four workers wrap around: the fifth goes back to m1.
	want := []string{"m1", "m2", "m3", "m4", "m1"}
	if len(result.Assignments) != len(want) {
		t.Fatalf("got %d assignments, want %d", len(result.Assignments), len(want))
	}
	for i, a := range result.Assignments {
		if a.MechanicID != want[i] {
			t.Errorf("task %s -> %s, want %s", a.TaskID, a.MechanicID, want[i])
		}
	}
}

func TestAutoAssign_FailuresDoNotAbortBatch(t *testing.T) {
	st := store.New()
	backend := &fakeBackend{
		infos:     infos("s1"),
		assignErr: map[string]error{"t2": errors.New("conflict")},
	}
	c := NewController(backend, st, nil, []string{"m1", "m2"}, "")
	if _, err := c.Startup(context.Background()); err != nil {
		t.Fatalf("startup: %v", err)
	}

	result, err := c.AutoAssign(context.Background(), []string{"t1", "t2", "t3"})
	if err != nil {
		t.Fatalf("auto-assign: %v", err)
	}
	if result.Attempted != 3 || result.Succeeded != 2 {
		t.Fatalf("attempted=%d succeeded=%d, want 3 and 2", result.Attempted, result.Succeeded)
	}
	if result.Failures["t2"] == nil {
		t.Fatalf("expected t2 failure, got %v", result.Failures)
	}
	// The failed slot still consumed its worker: t3 goes to m1, not m2.
	last := result.Assignments[len(result.Assignments)-1]
	if last.TaskID != "t3" || last.MechanicID != "m1" {
		t.Fatalf("t3 assigned to %s, want m1", last.MechanicID)
	}
}

func TestAutoAssign_NoWorkers(t *testing.T) {
	c := NewController(&fakeBackend{}, store.New(), nil, nil, "")
	if _, err := c.AutoAssign(context.Background(), []string{"t1"}); err == nil {
		t.Fatal("expected error with an empty worker pool")
	}
}
