// Package view builds display models for the four role-specific dashboard
// views. Builders are pure functions of a scenario snapshot, the session
// selection, and an injected clock; they never touch the store.
package view

import (
	"time"

	"github.com/floorview/floorview/internal/filter"
	"github.com/floorview/floorview/pkg/models"
)

// MaxTableRows caps the team-lead task table. Other views consume the full
// filtered list.
const MaxTableRows = 30

// TaskRow is one line of the team-lead task table.
type TaskRow struct {
	ID       string
	Type     models.TaskType
	Product  string
	Team     string
	Shift    string
	Priority int
	Start    time.Time
	End      time.Time
	Critical bool
}

// TeamLeadView is the team-lead display model: summary tiles, a capped task
// table, and the task-type breakdown.
type TeamLeadView struct {
	ScenarioID    string
	Degraded      bool
	Capacity      int
	Utilization   int
	TodayCount    int
	CriticalCount int
	TypeBreakdown map[models.TaskType]int
	Rows          []TaskRow
	TotalFiltered int
}

// TeamLead builds the team-lead view. now determines which tasks count as
// "today".
func TeamLead(sc *models.Scenario, sel models.FilterSelection, now time.Time) TeamLeadView {
	v := TeamLeadView{TypeBreakdown: make(map[models.TaskType]int)}
	if sc == nil {
		return v
	}

	tasks := filter.Tasks(sc, sel)
	summary := filter.Summarize(tasks)

	v.ScenarioID = sc.ID
	v.Degraded = sc.Degraded
	v.Capacity = filter.Capacity(sc, sel)
	v.Utilization = filter.Utilization(sc, sel)
	v.TodayCount = filter.TodayCount(tasks, now)
	v.CriticalCount = summary.CriticalCount
	v.TypeBreakdown = summary.CountsByType
	v.TotalFiltered = len(tasks)

	limit := len(tasks)
	if limit > MaxTableRows {
		limit = MaxTableRows
	}
	v.Rows = make([]TaskRow, 0, limit)
	for _, t := range tasks[:limit] {
		v.Rows = append(v.Rows, TaskRow{
			ID:       t.ID,
			Type:     t.Type,
			Product:  t.Product,
			Team:     t.Team,
			Shift:    t.Shift,
			Priority: t.Priority,
			Start:    t.Start.Time,
			End:      t.End.Time,
			Critical: filter.Critical(t),
		})
	}
	return v
}
