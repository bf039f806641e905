package models

import "sort"

// Product is one product line inside a scenario, with its delivery outlook.
type Product struct {
	Name           string     `json:"name"`
	DeliveryDate   *Timestamp `json:"deliveryDate,omitempty"`
	OnTime         bool       `json:"onTime"`
	LatenessDays   int        `json:"latenessDays"`
	TotalTasks     int        `json:"totalTasks"`
	Progress       int        `json:"progress"`
	DaysRemaining  int        `json:"daysRemaining"`
	CriticalPath   int        `json:"criticalPath"`
	LatePartsCount int        `json:"latePartsCount"`
	ReworkCount    int        `json:"reworkCount"`
}

// ReferenceProblem records a cross-reference that failed to resolve when a
// scenario was ingested: a task naming an unknown product, or a dependency
// naming an unknown task id.
type ReferenceProblem struct {
	TaskID string `json:"taskId"`
	Field  string `json:"field"` // "product" or "dependency"
	Ref    string `json:"ref"`
}

// Scenario is one complete computed schedule alternative, immutable once
// fetched and replaced wholesale on refresh.
type Scenario struct {
	ID             string           `json:"scenarioName"`
	TotalWorkforce int              `json:"totalWorkforce"`
	Makespan       int              `json:"makespan"`
	OnTimeRate     int              `json:"onTimeRate"`
	AvgUtilization int              `json:"avgUtilization"`
	MaxLateness    int              `json:"maxLateness"`
	TotalLateness  int              `json:"totalLateness"`
	TeamCapacities map[string]int   `json:"teamCapacities"`
	Utilization    map[string]int   `json:"utilization"`
	Tasks          []Task           `json:"tasks"`
	Products       []Product        `json:"products"`
	TotalTasks     int              `json:"totalTasks"`
	ScheduledTasks int              `json:"scheduledTasks"`
	TaskTypeCounts map[TaskType]int `json:"taskTypeSummary,omitempty"`
	Error          string           `json:"error,omitempty"`

	// Degraded is set at ingestion when cross-references failed to resolve.
	// The scenario still renders; views annotate it.
	Degraded bool               `json:"-"`
	Problems []ReferenceProblem `json:"-"`
}

// Product returns the named product, or nil if the scenario has no product
// with that name.
func (s *Scenario) Product(name string) *Product {
	for i := range s.Products {
		if s.Products[i].Name == name {
			return &s.Products[i]
		}
	}
	return nil
}

// Teams returns the scenario's team names in sorted order, derived from the
// capacity map.
func (s *Scenario) Teams() []string {
	return sortedKeys(s.TeamCapacities)
}

// Shifts returns the distinct shift values appearing in the scenario's
// tasks, in sorted order.
func (s *Scenario) Shifts() []string {
	seen := make(map[string]bool)
	for _, t := range s.Tasks {
		if t.Shift != "" {
			seen[t.Shift] = true
		}
	}
	return sortedKeys(seen)
}

// ProductNames returns the scenario's product names in declaration order.
func (s *Scenario) ProductNames() []string {
	names := make([]string, len(s.Products))
	for i, p := range s.Products {
		names[i] = p.Name
	}
	return names
}

// ScenarioInfo is one entry of the backend's scenario listing.
type ScenarioInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
