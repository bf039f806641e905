package store

import (
	"context"
	"errors"
	"testing"

	"github.com/floorview/floorview/pkg/models"
)

func scenario(id string) *models.Scenario {
	return &models.Scenario{ID: id}
}

// fakeFetcher serves canned scenarios and fails the ids in failing.
type fakeFetcher struct {
	failing map[string]bool
}

func (f *fakeFetcher) GetScenario(_ context.Context, id string) (*models.Scenario, error) {
	if f.failing[id] {
		return nil, errors.New("boom")
	}
	return scenario(id), nil
}

func TestLoad_SkipsFailedScenarios(t *testing.T) {
	s := New()
	fetcher := &fakeFetcher{failing: map[string]bool{"s2": true}}

	failed := s.Load(context.Background(), fetcher, []string{"s1", "s2", "s3"})

	if len(failed) != 1 || failed["s2"] == nil {
		t.Fatalf("expected s2 to fail, got %v", failed)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 loaded scenarios, got %d", s.Len())
	}
	if got := s.IDs(); len(got) != 2 || got[0] != "s1" || got[1] != "s3" {
		t.Fatalf("expected ids [s1 s3], got %v", got)
	}
}

func TestSelect_UnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.ReplaceAll(map[string]*models.Scenario{"s1": scenario("s1")}, []string{"s1"})
	s.Select("s1")

	if s.Select("nope") {
		t.Fatal("selecting an unknown id must return false")
	}
	if got := s.Selection().ScenarioID; got != "s1" {
		t.Fatalf("selection changed to %q after failed select", got)
	}
}

func TestReplaceAll_FallbackToFirstInOrder(t *testing.T) {
	s := New()
	s.ReplaceAll(map[string]*models.Scenario{"s1": scenario("s1"), "s2": scenario("s2")}, []string{"s1", "s2"})
	s.Select("s2")

	// s2 disappears in the next swap; selection falls back to the first id.
	s.ReplaceAll(map[string]*models.Scenario{"s3": scenario("s3"), "s4": scenario("s4")}, []string{"s3", "s4"})
	if got := s.Selection().ScenarioID; got != "s3" {
		t.Fatalf("expected fallback to s3, got %q", got)
	}

	// An empty swap clears the selection.
	s.ReplaceAll(map[string]*models.Scenario{}, nil)
	if got := s.Selection().ScenarioID; got != "" {
		t.Fatalf("expected empty selection, got %q", got)
	}
}

func TestReplaceAll_KeepsSurvivingSelection(t *testing.T) {
	s := New()
	s.ReplaceAll(map[string]*models.Scenario{"s1": scenario("s1"), "s2": scenario("s2")}, []string{"s1", "s2"})
	s.Select("s2")

	s.ReplaceAll(map[string]*models.Scenario{"s2": scenario("s2")}, []string{"s2"})
	if got := s.Selection().ScenarioID; got != "s2" {
		t.Fatalf("surviving selection should stay on s2, got %q", got)
	}
}

func TestSetView_PreservesFilters(t *testing.T) {
	s := New()
	s.SetTeam("Alpha")
	s.SetShift("2nd")
	s.SetProduct("Line B")

	s.SetView(models.ViewManagement)

	sel := s.Selection()
	if sel.View != models.ViewManagement {
		t.Fatalf("view = %q, want management", sel.View)
	}
	if sel.Team != "Alpha" || sel.Shift != "2nd" || sel.Product != "Line B" {
		t.Fatalf("filters reset on view switch: %+v", sel)
	}
}

func TestValidate_MarksDegraded(t *testing.T) {
	sc := &models.Scenario{
		ID:       "bad",
		Products: []models.Product{{Name: "Line A"}},
		Tasks: []models.Task{
			{ID: "1", Product: "Line A"},
			{ID: "2", Product: "Ghost Line"},
			{ID: "3", Product: "Line A", Dependencies: []models.Dependency{{TaskID: "missing"}}},
		},
	}

	Validate(sc)

	if !sc.Degraded {
		t.Fatal("expected scenario to be degraded")
	}
	if len(sc.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", len(sc.Problems), sc.Problems)
	}
	fields := map[string]bool{}
	for _, p := range sc.Problems {
		fields[p.Field] = true
	}
	if !fields["product"] || !fields["dependency"] {
		t.Fatalf("expected one product and one dependency problem, got %v", sc.Problems)
	}
}

func TestValidate_CleanScenario(t *testing.T) {
	sc := &models.Scenario{
		ID:       "ok",
		Products: []models.Product{{Name: "Line A"}},
		Tasks: []models.Task{
			{ID: "1", Product: "Line A"},
			{ID: "2", Product: "Line A", Dependencies: []models.Dependency{{TaskID: "1"}}},
		},
	}

	Validate(sc)

	if sc.Degraded || len(sc.Problems) != 0 {
		t.Fatalf("clean scenario flagged degraded: %v", sc.Problems)
	}
}
