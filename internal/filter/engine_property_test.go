package filter

import (
	"testing"
	"time"

	"github.com/floorview/floorview/pkg/models"
	"pgregory.net/rapid"
)

// genTask draws a task with bounded team/shift/product vocabularies so
// filters have something to match.
func genTask(t *rapid.T) models.Task {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).
		Add(time.Duration(rapid.IntRange(0, 72*60).Draw(t, "startMin")) * time.Minute)
	return models.Task{
		ID:             rapid.StringMatching(`task-[0-9]{1,4}`).Draw(t, "id"),
		Team:           rapid.SampledFrom([]string{"Alpha", "Beta", "Gamma"}).Draw(t, "team"),
		Shift:          rapid.SampledFrom([]string{"1st", "2nd", "3rd"}).Draw(t, "shift"),
		Product:        rapid.SampledFrom([]string{"Line A", "Line B"}).Draw(t, "product"),
		Priority:       rapid.IntRange(1, 100).Draw(t, "priority"),
		IsLatePartTask: rapid.Bool().Draw(t, "latePart"),
		IsReworkTask:   rapid.Bool().Draw(t, "rework"),
		Start:          models.Timestamp{Time: start},
		End:            models.Timestamp{Time: start.Add(time.Hour)},
	}
}

func genScenario(t *rapid.T) *models.Scenario {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = genTask(t)
	}
	return &models.Scenario{ID: "gen", Tasks: tasks}
}

func genSelection(t *rapid.T) models.FilterSelection {
	sel := models.DefaultSelection("gen")
	sel.Team = rapid.SampledFrom([]string{models.FilterAll, "Alpha", "Beta", "Gamma"}).Draw(t, "teamSel")
	sel.Shift = rapid.SampledFrom([]string{models.FilterAll, "1st", "2nd", "3rd"}).Draw(t, "shiftSel")
	sel.Product = rapid.SampledFrom([]string{models.FilterAll, "Line A", "Line B"}).Draw(t, "productSel")
	return sel
}

// TestProperty1_FilteredTasksAllMatch verifies that every task returned by
// Tasks passes the selection's predicates.
func TestProperty1_FilteredTasksAllMatch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := genScenario(t)
		sel := genSelection(t)
		for _, task := range Tasks(sc, sel) {
			if !sel.Matches(task) {
				t.Fatalf("task %s does not match selection %+v", task.ID, sel)
			}
		}
	})
}

// TestProperty2_FilteredTasksSortedByStart verifies ascending start order.
func TestProperty2_FilteredTasksSortedByStart(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := genScenario(t)
		tasks := Tasks(sc, genSelection(t))
		for i := 1; i < len(tasks); i++ {
			if tasks[i].Start.Before(tasks[i-1].Start.Time) {
				t.Fatalf("tasks[%d] starts before tasks[%d]", i, i-1)
			}
		}
	})
}

// TestProperty3_NarrowingNeverGrows verifies that replacing an open filter
// with a concrete value never increases the result size.
func TestProperty3_NarrowingNeverGrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := genScenario(t)
		open := models.DefaultSelection(sc.ID)
		narrowed := genSelection(t)

		if got, all := len(Tasks(sc, narrowed)), len(Tasks(sc, open)); got > all {
			t.Fatalf("narrowed selection returned %d tasks, open returned %d", got, all)
		}
	})
}

// TestProperty4_SummaryConsistent verifies that the aggregate counts agree
// with a direct count over the same list.
func TestProperty4_SummaryConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := genScenario(t)
		tasks := Tasks(sc, genSelection(t))
		s := Summarize(tasks)

		critical, total := 0, 0
		for _, task := range tasks {
			if Critical(task) {
				critical++
			}
		}
		for _, c := range s.CountsByType {
			total += c
		}
		if s.CriticalCount != critical {
			t.Fatalf("CriticalCount = %d, recount = %d", s.CriticalCount, critical)
		}
		if total != len(tasks) {
			t.Fatalf("type counts sum to %d, want %d", total, len(tasks))
		}
	})
}
