// Package config loads floorview configuration from .floorview.yaml using
// Viper, falling back to defaults when no file is present.
package config

import (
	"fmt"

	"github.com/floorview/floorview/pkg/models"
	"github.com/spf13/viper"
)

// Manager loads and validates floorview configuration.
type Manager interface {
	Load() (*models.Config, error)
}

// viperManager implements Manager by reading .floorview.yaml from basePath.
type viperManager struct {
	basePath string
}

// NewManager creates a Manager that reads configuration relative to
// basePath.
func NewManager(basePath string) Manager {
	return &viperManager{basePath: basePath}
}

// Default returns a Config populated with the built-in defaults: the local
// backend, a four-worker demo assignment pool, and the team-lead view.
func Default() *models.Config {
	cfg := &models.Config{
		BackendURL:     "http://localhost:5000",
		TimeoutSeconds: 30,
		DefaultView:    string(models.ViewTeamLead),
		AssignWorkers:  []string{"mech1", "mech2", "mech3", "mech4"},
		EventLogPath:   ".floorview_events.jsonl",
		Alerts: models.AlertThresholdConfig{
			UtilizationCritical: 90,
			UtilizationWarning:  75,
			LatenessDays:        5,
			MinOnTimeRate:       50,
		},
	}
	return cfg
}

// Load reads .floorview.yaml via Viper. A missing file returns defaults; a
// malformed file is an error.
func (m *viperManager) Load() (*models.Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(".floorview")
	v.SetConfigType("yaml")
	v.AddConfigPath(m.basePath)

	v.SetDefault("backend.url", cfg.BackendURL)
	v.SetDefault("backend.timeout_seconds", cfg.TimeoutSeconds)
	v.SetDefault("defaults.scenario", cfg.DefaultScenario)
	v.SetDefault("defaults.view", cfg.DefaultView)
	v.SetDefault("assign.workers", cfg.AssignWorkers)
	v.SetDefault("event_log", cfg.EventLogPath)
	v.SetDefault("alerts.utilization_critical", cfg.Alerts.UtilizationCritical)
	v.SetDefault("alerts.utilization_warning", cfg.Alerts.UtilizationWarning)
	v.SetDefault("alerts.lateness_days", cfg.Alerts.LatenessDays)
	v.SetDefault("alerts.min_on_time_rate", cfg.Alerts.MinOnTimeRate)
	v.SetDefault("notifications.enabled", false)
	v.SetDefault("notifications.slack.webhook_url", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading .floorview.yaml: %w", err)
	}

	cfg.BackendURL = v.GetString("backend.url")
	cfg.TimeoutSeconds = v.GetInt("backend.timeout_seconds")
	cfg.DefaultScenario = v.GetString("defaults.scenario")
	cfg.DefaultView = v.GetString("defaults.view")
	cfg.AssignWorkers = v.GetStringSlice("assign.workers")
	cfg.EventLogPath = v.GetString("event_log")
	cfg.Alerts.UtilizationCritical = v.GetInt("alerts.utilization_critical")
	cfg.Alerts.UtilizationWarning = v.GetInt("alerts.utilization_warning")
	cfg.Alerts.LatenessDays = v.GetInt("alerts.lateness_days")
	cfg.Alerts.MinOnTimeRate = v.GetInt("alerts.min_on_time_rate")
	cfg.Notifications.Enabled = v.GetBool("notifications.enabled")
	cfg.Notifications.Slack.WebhookURL = v.GetString("notifications.slack.webhook_url")

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects configurations the rest of the system cannot work with.
func validate(cfg *models.Config) error {
	if cfg.BackendURL == "" {
		return fmt.Errorf("backend.url must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		return fmt.Errorf("backend.timeout_seconds must be positive, got %d", cfg.TimeoutSeconds)
	}
	if len(cfg.AssignWorkers) == 0 {
		return fmt.Errorf("assign.workers must list at least one worker")
	}
	switch models.View(cfg.DefaultView) {
	case models.ViewTeamLead, models.ViewManagement, models.ViewMechanic, models.ViewProject:
	default:
		return fmt.Errorf("defaults.view %q is not a known view", cfg.DefaultView)
	}
	return nil
}
