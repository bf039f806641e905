package view

import (
	"sort"
	"time"

	"github.com/floorview/floorview/pkg/models"
)

// MechanicRow is one entry of the mechanic's personal timeline.
type MechanicRow struct {
	ID           string
	Type         models.TaskType
	Product      string
	Start        time.Time
	End          time.Time
	DurationMin  int
	Dependencies string // comma-joined dependency ids
	OnDock       string // on-dock date annotation, empty unless a late part
}

// MechanicView is the per-individual display model built from the
// out-of-band assigned-task fetch.
type MechanicView struct {
	MechanicID    string
	Shift         string
	AssignedCount int
	// EstimatedDone is the end time of the chronologically last assigned
	// task; zero when no tasks are assigned (HasWork false).
	EstimatedDone time.Time
	HasWork       bool
	Rows          []MechanicRow
}

// Mechanic builds the mechanic view from a fetched schedule.
func Mechanic(sched *models.MechanicSchedule) MechanicView {
	v := MechanicView{}
	if sched == nil {
		return v
	}

	v.MechanicID = sched.MechanicID
	v.Shift = sched.Shift
	v.AssignedCount = len(sched.Tasks)

	tasks := append([]models.Task(nil), sched.Tasks...)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Start.Before(tasks[j].Start.Time)
	})

	v.Rows = make([]MechanicRow, 0, len(tasks))
	for _, t := range tasks {
		row := MechanicRow{
			ID:           t.ID,
			Type:         t.Type,
			Product:      t.Product,
			Start:        t.Start.Time,
			End:          t.End.Time,
			DurationMin:  t.DurationMin,
			Dependencies: t.DependencyIDs(),
		}
		if t.OnDockDate != nil && !t.OnDockDate.IsZero() {
			row.OnDock = t.OnDockDate.Format("2006-01-02")
		}
		v.Rows = append(v.Rows, row)

		if t.End.After(v.EstimatedDone) {
			v.EstimatedDone = t.End.Time
		}
	}
	v.HasWork = len(tasks) > 0
	return v
}
