package models

// AlertThresholdConfig configures when the alert engine flags scenario
// conditions.
type AlertThresholdConfig struct {
	UtilizationCritical int `yaml:"utilization_critical"`
	UtilizationWarning  int `yaml:"utilization_warning"`
	LatenessDays        int `yaml:"lateness_days"`
	MinOnTimeRate       int `yaml:"min_on_time_rate"`
}

// NotificationConfig configures outbound alert notifications.
type NotificationConfig struct {
	Enabled bool `yaml:"enabled"`
	Slack   struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"slack"`
}

// Config is the merged floorview configuration loaded from .floorview.yaml.
type Config struct {
	BackendURL      string   `yaml:"backend_url"`
	TimeoutSeconds  int      `yaml:"timeout_seconds"`
	DefaultScenario string   `yaml:"default_scenario"`
	DefaultView     string   `yaml:"default_view"`
	AssignWorkers   []string `yaml:"assign_workers"`
	EventLogPath    string   `yaml:"event_log"`

	Alerts        AlertThresholdConfig `yaml:"alerts"`
	Notifications NotificationConfig   `yaml:"notifications"`
}
