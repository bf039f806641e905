package observability

import (
	"fmt"
	"sort"
	"time"

	"github.com/floorview/floorview/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert is one triggered condition on the active scenario.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertEngine evaluates alert conditions against a scenario snapshot.
type AlertEngine interface {
	Evaluate(sc *models.Scenario) []Alert
}

// alertEngine checks configured thresholds against scenario data.
type alertEngine struct {
	thresholds models.AlertThresholdConfig
	now        func() time.Time
}

// NewAlertEngine creates an AlertEngine with the given thresholds.
func NewAlertEngine(thresholds models.AlertThresholdConfig) AlertEngine {
	return &alertEngine{thresholds: thresholds, now: func() time.Time { return time.Now().UTC() }}
}

// Evaluate checks team overload, product lateness, and the scenario's
// on-time rate. A nil scenario yields no alerts.
func (ae *alertEngine) Evaluate(sc *models.Scenario) []Alert {
	if sc == nil {
		return nil
	}
	now := ae.now()
	var alerts []Alert

	teams := make([]string, 0, len(sc.Utilization))
	for team := range sc.Utilization {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	for _, team := range teams {
		pct := sc.Utilization[team]
		switch {
		case pct > ae.thresholds.UtilizationCritical:
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("util-%s", team),
				Condition:   "team_overload",
				Severity:    SeverityHigh,
				Message:     fmt.Sprintf("%s running at %d%% utilization", team, pct),
				TriggeredAt: now,
			})
		case pct > ae.thresholds.UtilizationWarning:
			alerts = append(alerts, Alert{
				ID:          fmt.Sprintf("util-%s", team),
				Condition:   "team_overload",
				Severity:    SeverityMedium,
				Message:     fmt.Sprintf("%s running at %d%% utilization", team, pct),
				TriggeredAt: now,
			})
		}
	}

	for _, p := range sc.Products {
		if p.OnTime {
			continue
		}
		severity := SeverityMedium
		if p.LatenessDays > ae.thresholds.LatenessDays {
			severity = SeverityHigh
		}
		alerts = append(alerts, Alert{
			ID:          fmt.Sprintf("late-%s", p.Name),
			Condition:   "product_late",
			Severity:    severity,
			Message:     fmt.Sprintf("%s projected %d day(s) late", p.Name, p.LatenessDays),
			TriggeredAt: now,
		})
	}

	if sc.OnTimeRate < ae.thresholds.MinOnTimeRate {
		alerts = append(alerts, Alert{
			ID:          "on-time-rate",
			Condition:   "low_on_time_rate",
			Severity:    SeverityHigh,
			Message:     fmt.Sprintf("on-time rate %d%% below target %d%%", sc.OnTimeRate, ae.thresholds.MinOnTimeRate),
			TriggeredAt: now,
		})
	}

	if sc.Degraded {
		alerts = append(alerts, Alert{
			ID:          "degraded-" + sc.ID,
			Condition:   "degraded_scenario",
			Severity:    SeverityLow,
			Message:     fmt.Sprintf("scenario %s has %d unresolved reference(s)", sc.ID, len(sc.Problems)),
			TriggeredAt: now,
		})
	}

	return alerts
}
