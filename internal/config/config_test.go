package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/floorview/floorview/pkg/models"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".floorview.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := NewManager(t.TempDir()).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
	if cfg.DefaultView != string(models.ViewTeamLead) {
		t.Errorf("DefaultView = %q", cfg.DefaultView)
	}
	if len(cfg.AssignWorkers) != 4 {
		t.Errorf("AssignWorkers = %v", cfg.AssignWorkers)
	}
	if cfg.Alerts.UtilizationCritical != 90 || cfg.Alerts.UtilizationWarning != 75 {
		t.Errorf("alert thresholds: %+v", cfg.Alerts)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
backend:
  url: http://scheduler.internal:8080
  timeout_seconds: 10
defaults:
  scenario: scenario2
  view: management
assign:
  workers: [m10, m11]
alerts:
  utilization_critical: 85
notifications:
  enabled: true
  slack:
    webhook_url: https://hooks.slack.example/T000
`)

	cfg, err := NewManager(dir).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BackendURL != "http://scheduler.internal:8080" || cfg.TimeoutSeconds != 10 {
		t.Errorf("backend: %q %d", cfg.BackendURL, cfg.TimeoutSeconds)
	}
	if cfg.DefaultScenario != "scenario2" || cfg.DefaultView != "management" {
		t.Errorf("defaults: %q %q", cfg.DefaultScenario, cfg.DefaultView)
	}
	if len(cfg.AssignWorkers) != 2 || cfg.AssignWorkers[0] != "m10" {
		t.Errorf("workers: %v", cfg.AssignWorkers)
	}
	// Unset alert keys keep their defaults.
	if cfg.Alerts.UtilizationCritical != 85 || cfg.Alerts.UtilizationWarning != 75 {
		t.Errorf("alerts: %+v", cfg.Alerts)
	}
	if !cfg.Notifications.Enabled || cfg.Notifications.Slack.WebhookURL == "" {
		t.Errorf("notifications: %+v", cfg.Notifications)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty backend url", "backend:\n  url: \"\"\n"},
		{"non-positive timeout", "backend:\n  timeout_seconds: 0\n"},
		{"empty worker pool", "assign:\n  workers: []\n"},
		{"unknown view", "defaults:\n  view: bird's-eye\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.yaml)
			if _, err := NewManager(dir).Load(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "backend: [unclosed")
	if _, err := NewManager(dir).Load(); err == nil {
		t.Fatal("expected parse error")
	}
}
