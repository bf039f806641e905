// Package mcp exposes the cached scheduling dashboard over the Model
// Context Protocol, so AI assistants can query scenarios, filtered task
// lists, and product statuses through typed tools.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/floorview/floorview/internal/filter"
	"github.com/floorview/floorview/internal/observability"
	"github.com/floorview/floorview/internal/store"
	"github.com/floorview/floorview/internal/view"
	"github.com/floorview/floorview/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the scenario store and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	store       *store.Store
	alertEngine observability.AlertEngine
}

// NewServer creates an MCP server over the given store. alertEngine may be
// nil when alerting is disabled.
func NewServer(st *store.Store, alertEngine observability.AlertEngine, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{store: st, alertEngine: alertEngine}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "floorview", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the client disconnects or the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type listScenariosInput struct{}

type scenarioSummary struct {
	ID             string `json:"id"`
	TotalTasks     int    `json:"total_tasks"`
	Makespan       int    `json:"makespan_days"`
	Workforce      int    `json:"workforce"`
	OnTimeRate     int    `json:"on_time_rate"`
	AvgUtilization int    `json:"avg_utilization"`
	MaxLateness    int    `json:"max_lateness_days"`
	Degraded       bool   `json:"degraded,omitempty"`
}

type listScenariosOutput struct {
	Scenarios []scenarioSummary `json:"scenarios"`
	Selected  string            `json:"selected"`
	Count     int               `json:"count"`
}

type getScenarioSummaryInput struct {
	ScenarioID string `json:"scenario_id,omitempty" jsonschema:"scenario id; defaults to the selected scenario"`
}

type productStatusOutput struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	Progress     int    `json:"progress"`
	DaysLeft     int    `json:"days_remaining"`
	LatenessDays int    `json:"lateness_days"`
	LateParts    int    `json:"late_parts"`
	Rework       int    `json:"rework"`
}

type teamUtilizationOutput struct {
	Team     string `json:"team"`
	Percent  int    `json:"percent"`
	Capacity int    `json:"capacity"`
	Band     string `json:"band"`
}

type getScenarioSummaryOutput struct {
	Summary  scenarioSummary         `json:"summary"`
	Products []productStatusOutput   `json:"products"`
	Teams    []teamUtilizationOutput `json:"teams"`
}

type filterTasksInput struct {
	ScenarioID string `json:"scenario_id,omitempty" jsonschema:"scenario id; defaults to the selected scenario"`
	Team       string `json:"team,omitempty" jsonschema:"team filter; omit or 'all' for every team"`
	Shift      string `json:"shift,omitempty" jsonschema:"shift filter; omit or 'all' for every shift"`
	Product    string `json:"product,omitempty" jsonschema:"product filter; omit or 'all' for every product"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum rows to return; defaults to 30"`
}

type taskRowOutput struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Product  string `json:"product"`
	Team     string `json:"team"`
	Shift    string `json:"shift"`
	Priority int    `json:"priority"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Critical bool   `json:"critical"`
}

type filterTasksOutput struct {
	Tasks         []taskRowOutput `json:"tasks"`
	TotalFiltered int             `json:"total_filtered"`
	LateCount     int             `json:"late_count"`
	ReworkCount   int             `json:"rework_count"`
	CriticalCount int             `json:"critical_count"`
}

type getProductStatusInput struct {
	Product    string `json:"product" jsonschema:"required,the product name"`
	ScenarioID string `json:"scenario_id,omitempty" jsonschema:"scenario id; defaults to the selected scenario"`
}

type getAlertsInput struct{}

type alertOutput struct {
	ID          string `json:"id"`
	Condition   string `json:"condition"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	TriggeredAt string `json:"triggered_at"`
}

type getAlertsOutput struct {
	Alerts []alertOutput `json:"alerts"`
	Count  int           `json:"count"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_scenarios",
		Description: "List loaded scheduling scenarios with headline KPIs (makespan, workforce, on-time rate).",
	}, s.handleListScenarios)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_scenario_summary",
		Description: "Get one scenario's management summary: KPIs, per-product delivery status, and per-team utilization.",
	}, s.handleGetScenarioSummary)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "filter_tasks",
		Description: "Filter a scenario's tasks by team, shift, and product. Returns tasks sorted by start time with aggregate counts.",
	}, s.handleFilterTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_product_status",
		Description: "Get one product's delivery status (on-time, at-risk, or late) with its schedule details.",
	}, s.handleGetProductStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_alerts",
		Description: "Evaluate and return active alerts on the selected scenario (team overload, late products, low on-time rate).",
	}, s.handleGetAlerts)
}

// --- Tool handlers ---

func (s *Server) resolveScenario(id string) (*models.Scenario, *gomcp.CallToolResult) {
	if id == "" {
		sc := s.store.Selected()
		if sc == nil {
			return nil, errorResult("no scenario loaded")
		}
		return sc, nil
	}
	sc := s.store.Get(id)
	if sc == nil {
		return nil, errorResult(fmt.Sprintf("scenario %q not loaded", id))
	}
	return sc, nil
}

func summarize(sc *models.Scenario) scenarioSummary {
	return scenarioSummary{
		ID:             sc.ID,
		TotalTasks:     sc.TotalTasks,
		Makespan:       sc.Makespan,
		Workforce:      sc.TotalWorkforce,
		OnTimeRate:     sc.OnTimeRate,
		AvgUtilization: sc.AvgUtilization,
		MaxLateness:    sc.MaxLateness,
		Degraded:       sc.Degraded,
	}
}

func (s *Server) handleListScenarios(_ context.Context, _ *gomcp.CallToolRequest, _ listScenariosInput) (*gomcp.CallToolResult, listScenariosOutput, error) {
	ids := s.store.IDs()
	out := listScenariosOutput{
		Scenarios: make([]scenarioSummary, 0, len(ids)),
		Selected:  s.store.Selection().ScenarioID,
		Count:     len(ids),
	}
	for _, id := range ids {
		if sc := s.store.Get(id); sc != nil {
			out.Scenarios = append(out.Scenarios, summarize(sc))
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetScenarioSummary(_ context.Context, _ *gomcp.CallToolRequest, input getScenarioSummaryInput) (*gomcp.CallToolResult, getScenarioSummaryOutput, error) {
	sc, errRes := s.resolveScenario(input.ScenarioID)
	if errRes != nil {
		return errRes, getScenarioSummaryOutput{}, nil
	}

	mgmt := view.Management(sc, models.DefaultSelection(sc.ID))
	out := getScenarioSummaryOutput{Summary: summarize(sc)}
	for _, p := range mgmt.Products {
		out.Products = append(out.Products, productStatusOutput{
			Name:         p.Name,
			Status:       string(p.Status),
			Progress:     p.Progress,
			DaysLeft:     p.DaysLeft,
			LatenessDays: p.LatenessDays,
			LateParts:    p.LateParts,
			Rework:       p.Rework,
		})
	}
	for _, t := range mgmt.Teams {
		out.Teams = append(out.Teams, teamUtilizationOutput{
			Team:     t.Team,
			Percent:  t.Percent,
			Capacity: t.Capacity,
			Band:     string(t.Band),
		})
	}
	return nil, out, nil
}

func (s *Server) handleFilterTasks(_ context.Context, _ *gomcp.CallToolRequest, input filterTasksInput) (*gomcp.CallToolResult, filterTasksOutput, error) {
	sc, errRes := s.resolveScenario(input.ScenarioID)
	if errRes != nil {
		return errRes, filterTasksOutput{}, nil
	}

	sel := models.DefaultSelection(sc.ID)
	if input.Team != "" {
		sel.Team = input.Team
	}
	if input.Shift != "" {
		sel.Shift = input.Shift
	}
	if input.Product != "" {
		sel.Product = input.Product
	}

	tasks := filter.Tasks(sc, sel)
	summary := filter.Summarize(tasks)

	limit := input.Limit
	if limit <= 0 {
		limit = view.MaxTableRows
	}
	if limit > len(tasks) {
		limit = len(tasks)
	}

	out := filterTasksOutput{
		Tasks:         make([]taskRowOutput, 0, limit),
		TotalFiltered: len(tasks),
		LateCount:     summary.LateCount,
		ReworkCount:   summary.ReworkCount,
		CriticalCount: summary.CriticalCount,
	}
	for _, t := range tasks[:limit] {
		out.Tasks = append(out.Tasks, taskRowOutput{
			ID:       t.ID,
			Type:     string(t.Type),
			Product:  t.Product,
			Team:     t.Team,
			Shift:    t.Shift,
			Priority: t.Priority,
			Start:    t.Start.Format(time.RFC3339),
			End:      t.End.Format(time.RFC3339),
			Critical: filter.Critical(t),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetProductStatus(_ context.Context, _ *gomcp.CallToolRequest, input getProductStatusInput) (*gomcp.CallToolResult, productStatusOutput, error) {
	if input.Product == "" {
		return errorResult("product is required"), productStatusOutput{}, nil
	}
	sc, errRes := s.resolveScenario(input.ScenarioID)
	if errRes != nil {
		return errRes, productStatusOutput{}, nil
	}

	mgmt := view.Management(sc, models.DefaultSelection(sc.ID))
	for _, p := range mgmt.Products {
		if p.Name == input.Product {
			return nil, productStatusOutput{
				Name:         p.Name,
				Status:       string(p.Status),
				Progress:     p.Progress,
				DaysLeft:     p.DaysLeft,
				LatenessDays: p.LatenessDays,
				LateParts:    p.LateParts,
				Rework:       p.Rework,
			}, nil
		}
	}
	return errorResult(fmt.Sprintf("product %q not found in scenario %s", input.Product, sc.ID)), productStatusOutput{}, nil
}

func (s *Server) handleGetAlerts(_ context.Context, _ *gomcp.CallToolRequest, _ getAlertsInput) (*gomcp.CallToolResult, getAlertsOutput, error) {
	if s.alertEngine == nil {
		return errorResult("alert engine not available (alerting may be disabled)"), getAlertsOutput{}, nil
	}

	alerts := s.alertEngine.Evaluate(s.store.Selected())
	out := getAlertsOutput{
		Alerts: make([]alertOutput, len(alerts)),
		Count:  len(alerts),
	}
	for i, a := range alerts {
		out.Alerts[i] = alertOutput{
			ID:          a.ID,
			Condition:   a.Condition,
			Severity:    string(a.Severity),
			Message:     a.Message,
			TriggeredAt: a.TriggeredAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
