// Package filter derives filtered task lists and their aggregates from a
// scenario and the session's filter selection. Everything here is a pure
// function of its inputs.
package filter

import (
	"sort"
	"time"

	"github.com/floorview/floorview/pkg/models"
)

// CriticalPriorityMax is the highest priority value still counted as
// critical on its own.
const CriticalPriorityMax = 10

// Tasks returns the scenario's tasks passing all three filter predicates,
// sorted ascending by start time. The sort is stable: ties keep insertion
// order. Callers that cap the list (the team-lead table shows 30) truncate
// themselves.
func Tasks(sc *models.Scenario, sel models.FilterSelection) []models.Task {
	if sc == nil {
		return nil
	}
	out := make([]models.Task, 0, len(sc.Tasks))
	for _, t := range sc.Tasks {
		if sel.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start.Time)
	})
	return out
}

// Summary aggregates a filtered task list.
type Summary struct {
	CountsByType  map[models.TaskType]int
	LateCount     int
	ReworkCount   int
	CriticalCount int
}

// Critical reports whether a task counts as critical: priority at or below
// the threshold, or a late-part or rework task. The predicate is a union,
// not a partition.
func Critical(t models.Task) bool {
	return t.Priority <= CriticalPriorityMax || t.IsLatePartTask || t.IsReworkTask
}

// Summarize derives the per-type counts and the late/rework/critical counts
// from a filtered task list.
func Summarize(tasks []models.Task) Summary {
	s := Summary{CountsByType: make(map[models.TaskType]int)}
	for _, t := range tasks {
		s.CountsByType[t.Type]++
		if t.IsLatePartTask {
			s.LateCount++
		}
		if t.IsReworkTask {
			s.ReworkCount++
		}
		if Critical(t) {
			s.CriticalCount++
		}
	}
	return s
}

// Capacity returns the selected team's capacity, or the sum over all teams
// when the team filter is "all".
func Capacity(sc *models.Scenario, sel models.FilterSelection) int {
	if sc == nil {
		return 0
	}
	if sel.Team != models.FilterAll {
		return sc.TeamCapacities[sel.Team]
	}
	total := 0
	for _, c := range sc.TeamCapacities {
		total += c
	}
	return total
}

// Utilization returns the selected team's utilization percentage. With the
// team filter at "all" it returns the scenario's precomputed average, not a
// recomputation from the filtered tasks; capacity and utilization
// deliberately come from different sources in the aggregate case.
func Utilization(sc *models.Scenario, sel models.FilterSelection) int {
	if sc == nil {
		return 0
	}
	if sel.Team != models.FilterAll {
		return sc.Utilization[sel.Team]
	}
	return sc.AvgUtilization
}

// TodayCount counts filtered tasks whose start falls on the same calendar
// date as now. Now is injected by the caller.
func TodayCount(tasks []models.Task, now time.Time) int {
	count := 0
	for _, t := range tasks {
		if t.Start.SameDay(now) {
			count++
		}
	}
	return count
}
