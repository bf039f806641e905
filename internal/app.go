// Package internal provides the App struct that wires the floorview
// components together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/floorview/floorview/internal/api"
	"github.com/floorview/floorview/internal/cli"
	"github.com/floorview/floorview/internal/config"
	"github.com/floorview/floorview/internal/observability"
	"github.com/floorview/floorview/internal/store"
	schedsync "github.com/floorview/floorview/internal/sync"
	"github.com/floorview/floorview/pkg/models"
)

// App holds all service dependencies for the floorview client.
type App struct {
	BasePath string

	ConfigMgr config.Manager
	Config    *models.Config

	Backend    *api.Client
	Store      *store.Store
	Controller *schedsync.Controller

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
	Notifier    observability.Notifier
}

// NewApp creates and wires all components. basePath is the directory holding
// .floorview.yaml and the event log (typically the current directory or
// FLOORVIEW_HOME).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = config.NewManager(basePath)
	cfg, err := app.ConfigMgr.Load()
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Backend client and store ---
	app.Backend = api.NewClient(cfg.BackendURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
	app.Store = store.New()
	if cfg.DefaultView != "" {
		app.Store.SetView(models.View(cfg.DefaultView))
	}

	// --- Observability ---
	eventLogPath := cfg.EventLogPath
	if !filepath.IsAbs(eventLogPath) {
		eventLogPath = filepath.Join(basePath, eventLogPath)
	}
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: disable observability if the log can't be created.
		app.EventLog = nil
	}
	app.AlertEngine = observability.NewAlertEngine(cfg.Alerts)
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}
	if cfg.Notifications.Enabled && cfg.Notifications.Slack.WebhookURL != "" {
		app.Notifier = observability.NewSlackNotifier(cfg.Notifications.Slack.WebhookURL)
	}

	// --- Sync controller ---
	app.Controller = schedsync.NewController(app.Backend, app.Store, app.EventLog,
		cfg.AssignWorkers, cfg.DefaultScenario)

	// --- Wire CLI package-level variables ---
	cli.Cfg = cfg
	cli.Backend = app.Backend
	cli.Store = app.Store
	cli.Controller = app.Controller
	cli.AlertEngine = app.AlertEngine
	cli.MetricsCalc = app.MetricsCalc
	cli.Notifier = app.Notifier

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory floorview reads its configuration
// from. It checks FLOORVIEW_HOME, then walks up from the current directory
// looking for .floorview.yaml, and falls back to the current directory.
func ResolveBasePath() string {
	if home := os.Getenv("FLOORVIEW_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".floorview.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
