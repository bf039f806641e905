// Package stub implements a fixture-backed stand-in for the scheduling
// backend, for local development and integration tests. It serves the same
// JSON API the real backend does, with deterministic generated schedules.
package stub

import (
	"fmt"
	"os"
	"time"

	"github.com/floorview/floorview/pkg/models"
	"gopkg.in/yaml.v3"
)

// TeamFixture describes one team in a fixture scenario.
type TeamFixture struct {
	Name        string `yaml:"name"`
	Capacity    int    `yaml:"capacity"`
	Shift       string `yaml:"shift"`
	Utilization int    `yaml:"utilization"`
}

// ProductFixture describes one product line in a fixture scenario.
type ProductFixture struct {
	Name         string `yaml:"name"`
	Tasks        int    `yaml:"tasks"`
	OnTime       bool   `yaml:"on_time"`
	LatenessDays int    `yaml:"lateness_days"`
	LateParts    int    `yaml:"late_parts"`
	Rework       int    `yaml:"rework"`
}

// ScenarioFixture describes one scenario to generate.
type ScenarioFixture struct {
	ID       string           `yaml:"id"`
	Name     string           `yaml:"name"`
	Makespan int              `yaml:"makespan"`
	Teams    []TeamFixture    `yaml:"teams"`
	Products []ProductFixture `yaml:"products"`
}

// Fixture is the stub's data description, loadable from YAML.
type Fixture struct {
	Scenarios []ScenarioFixture `yaml:"scenarios"`
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("fixture lists no scenarios")
	}
	return &f, nil
}

// DefaultFixture mirrors the real backend's four scenarios at a small scale.
func DefaultFixture() *Fixture {
	teams := []TeamFixture{
		{Name: "Mechanic Team 1", Capacity: 8, Shift: "1st", Utilization: 82},
		{Name: "Mechanic Team 2", Capacity: 6, Shift: "2nd", Utilization: 94},
		{Name: "Quality Team 1", Capacity: 4, Shift: "1st", Utilization: 61},
	}
	products := []ProductFixture{
		{Name: "Line A", Tasks: 24, OnTime: true},
		{Name: "Line B", Tasks: 18, OnTime: false, LatenessDays: 3, LateParts: 2},
		{Name: "Line C", Tasks: 12, OnTime: false, LatenessDays: 9, Rework: 3},
	}
	return &Fixture{Scenarios: []ScenarioFixture{
		{ID: "baseline", Name: "Baseline (CSV Capacity)", Makespan: 32, Teams: teams, Products: products},
		{ID: "scenario1", Name: "Scenario 1: CSV Headcount", Makespan: 30, Teams: teams, Products: products},
		{ID: "scenario2", Name: "Scenario 2: Minimize Makespan", Makespan: 26, Teams: teams, Products: products},
		{ID: "scenario3", Name: "Scenario 3: Multi-Dimensional", Makespan: 28, Teams: teams, Products: products},
	}}
}

// Build generates full scenarios from the fixture, with task start times
// anchored at base so "today" views have work to show.
func (f *Fixture) Build(base time.Time) map[string]*models.Scenario {
	out := make(map[string]*models.Scenario, len(f.Scenarios))
	for _, sf := range f.Scenarios {
		out[sf.ID] = buildScenario(sf, base)
	}
	return out
}

func buildScenario(sf ScenarioFixture, base time.Time) *models.Scenario {
	sc := &models.Scenario{
		ID:             sf.ID,
		Makespan:       sf.Makespan,
		TeamCapacities: make(map[string]int, len(sf.Teams)),
		Utilization:    make(map[string]int, len(sf.Teams)),
		TaskTypeCounts: make(map[models.TaskType]int),
	}

	for _, t := range sf.Teams {
		sc.TeamCapacities[t.Name] = t.Capacity
		sc.Utilization[t.Name] = t.Utilization
		sc.TotalWorkforce += t.Capacity
		sc.AvgUtilization += t.Utilization
	}
	if len(sf.Teams) > 0 {
		sc.AvgUtilization /= len(sf.Teams)
	}

	onTime := 0
	taskSeq := 0
	for _, pf := range sf.Products {
		if pf.OnTime {
			onTime++
		}
		if pf.LatenessDays > sc.MaxLateness {
			sc.MaxLateness = pf.LatenessDays
		}
		sc.TotalLateness += pf.LatenessDays

		critical := 0
		var prevID string
		for i := 0; i < pf.Tasks; i++ {
			taskSeq++
			team := sf.Teams[taskSeq%len(sf.Teams)]

			taskType := models.TypeProduction
			switch {
			case i < pf.LateParts:
				taskType = models.TypeLatePart
			case i < pf.LateParts+pf.Rework:
				taskType = models.TypeRework
			case i%5 == 4:
				taskType = models.TypeQuality
			}

			start := base.Add(time.Duration(taskSeq) * 45 * time.Minute)
			task := models.Task{
				ID:             fmt.Sprintf("%s-%s-%03d", sf.ID, initials(pf.Name), i+1),
				Type:           taskType,
				DisplayName:    fmt.Sprintf("%s %s #%d", pf.Name, taskType, i+1),
				Product:        pf.Name,
				Team:           team.Name,
				Shift:          team.Shift,
				Priority:       taskSeq,
				Start:          models.Timestamp{Time: start},
				End:            models.Timestamp{Time: start.Add(60 * time.Minute)},
				DurationMin:    60,
				Mechanics:      1 + i%3,
				IsLatePartTask: taskType == models.TypeLatePart,
				IsReworkTask:   taskType == models.TypeRework,
				IsCriticalPath: i%4 == 0,
			}
			if task.IsLatePartTask {
				dock := models.Timestamp{Time: base.AddDate(0, 0, 1)}
				task.OnDockDate = &dock
			}
			if prevID != "" {
				task.Dependencies = []models.Dependency{
					{Type: "Finish-Start", TaskID: prevID, Product: pf.Name},
				}
			}
			prevID = task.ID

			if task.IsCriticalPath {
				critical++
			}
			sc.Tasks = append(sc.Tasks, task)
			sc.TaskTypeCounts[taskType]++
		}

		progress := 100 - pf.LatenessDays*10
		if progress < 0 {
			progress = 0
		}
		delivery := models.Timestamp{Time: base.AddDate(0, 0, sf.Makespan)}
		sc.Products = append(sc.Products, models.Product{
			Name:           pf.Name,
			DeliveryDate:   &delivery,
			OnTime:         pf.OnTime,
			LatenessDays:   pf.LatenessDays,
			TotalTasks:     pf.Tasks,
			Progress:       progress,
			DaysRemaining:  sf.Makespan,
			CriticalPath:   critical,
			LatePartsCount: pf.LateParts,
			ReworkCount:    pf.Rework,
		})
	}

	if len(sf.Products) > 0 {
		sc.OnTimeRate = onTime * 100 / len(sf.Products)
	}
	sc.TotalTasks = len(sc.Tasks)
	sc.ScheduledTasks = len(sc.Tasks)
	return sc
}

func initials(name string) string {
	out := make([]rune, 0, 4)
	nextWord := true
	for _, r := range name {
		if r == ' ' {
			nextWord = true
			continue
		}
		if nextWord {
			out = append(out, r)
			nextWord = false
		}
	}
	return string(out)
}
