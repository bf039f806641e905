package observability

import (
	"fmt"
	"time"
)

// Metrics aggregates dashboard activity from the event log.
type Metrics struct {
	ScenariosFetched  int        `json:"scenarios_fetched"`
	FetchFailures     int        `json:"fetch_failures"`
	ScenarioSwitches  int        `json:"scenario_switches"`
	Refreshes         int        `json:"refreshes"`
	RefreshFailures   int        `json:"refresh_failures"`
	TasksAssigned     int        `json:"tasks_assigned"`
	AssignFailures    int        `json:"assign_failures"`
	EventCount        int        `json:"event_count"`
	OldestEvent       *time.Time `json:"oldest_event,omitempty"`
	NewestEvent       *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from eventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and tallies them.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{EventCount: len(events)}
	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t

		switch event.Type {
		case EventScenarioFetched:
			m.ScenariosFetched++
		case EventFetchFailed:
			m.FetchFailures++
		case EventScenarioSwitched:
			m.ScenarioSwitches++
		case EventRefreshCompleted:
			m.Refreshes++
		case EventRefreshFailed:
			m.RefreshFailures++
		case EventAssignSucceeded:
			m.TasksAssigned++
		case EventAssignFailed:
			m.AssignFailures++
		}
	}
	return m, nil
}
