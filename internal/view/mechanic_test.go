package view

import (
	"testing"

	"github.com/floorview/floorview/pkg/models"
)

func TestMechanic_SortsAndEstimatesCompletion(t *testing.T) {
	onDock := ts("2026-07-28T00:00:00")
	sched := &models.MechanicSchedule{
		MechanicID: "mech1",
		Shift:      "1st",
		Tasks: []models.Task{
			{ID: "late", Start: ts("2026-08-01T13:00:00"), End: ts("2026-08-01T14:30:00")},
			{
				ID: "early", Start: ts("2026-08-01T08:00:00"), End: ts("2026-08-01T09:00:00"),
				Dependencies: []models.Dependency{{TaskID: "prep-1"}, {TaskID: "prep-2"}},
				OnDockDate:   &onDock,
			},
		},
	}

	v := Mechanic(sched)

	if !v.HasWork || v.AssignedCount != 2 {
		t.Fatalf("HasWork=%v count=%d", v.HasWork, v.AssignedCount)
	}
	if v.Rows[0].ID != "early" || v.Rows[1].ID != "late" {
		t.Fatalf("rows not sorted by start: %s, %s", v.Rows[0].ID, v.Rows[1].ID)
	}
	// Completion estimate is the latest end time.
	if v.EstimatedDone.Hour() != 14 || v.EstimatedDone.Minute() != 30 {
		t.Errorf("EstimatedDone = %v, want 14:30", v.EstimatedDone)
	}
	if v.Rows[0].Dependencies != "prep-1,prep-2" {
		t.Errorf("dependencies = %q", v.Rows[0].Dependencies)
	}
	if v.Rows[0].OnDock != "2026-07-28" {
		t.Errorf("on-dock annotation = %q", v.Rows[0].OnDock)
	}
}

func TestMechanic_EmptySchedule(t *testing.T) {
	v := Mechanic(&models.MechanicSchedule{MechanicID: "mech2", Shift: "2nd"})
	if v.HasWork || !v.EstimatedDone.IsZero() {
		t.Fatalf("empty schedule: HasWork=%v done=%v", v.HasWork, v.EstimatedDone)
	}
}

func TestMechanic_NilSchedule(t *testing.T) {
	v := Mechanic(nil)
	if v.MechanicID != "" || v.HasWork {
		t.Fatalf("nil schedule must yield an empty view: %+v", v)
	}
}
