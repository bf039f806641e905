// Package api implements the HTTP client for the scheduling backend's JSON
// API. All calls take a context and return typed models; failures are
// reported as *FetchError so callers can distinguish transport problems
// from backend-reported ones.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/floorview/floorview/pkg/models"
)

// FetchError is a failed backend call: a transport error or a non-2xx
// response.
type FetchError struct {
	Endpoint   string
	StatusCode int // 0 for transport failures
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to the scheduling backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the backend at baseURL. A trailing slash
// on baseURL is tolerated.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// getJSON performs a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return &FetchError{Endpoint: "GET " + endpoint, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Endpoint: "GET " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Endpoint: "GET " + endpoint, StatusCode: resp.StatusCode, Err: decodeAPIError(resp.Body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Endpoint: "GET " + endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// postJSON performs a POST with a JSON body and decodes the response into out.
func (c *Client) postJSON(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &FetchError{Endpoint: "POST " + endpoint, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return &FetchError{Endpoint: "POST " + endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Endpoint: "POST " + endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Endpoint: "POST " + endpoint, StatusCode: resp.StatusCode, Err: decodeAPIError(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Endpoint: "POST " + endpoint, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// decodeAPIError extracts the backend's {"error": "..."} message from an
// error response body, if present.
func decodeAPIError(r io.Reader) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	return fmt.Errorf("backend error")
}

// ListScenarios fetches the available scenario listing.
func (c *Client) ListScenarios(ctx context.Context) ([]models.ScenarioInfo, error) {
	var payload struct {
		Scenarios []models.ScenarioInfo `json:"scenarios"`
	}
	if err := c.getJSON(ctx, "/api/scenarios", &payload); err != nil {
		return nil, err
	}
	return payload.Scenarios, nil
}

// GetScenario fetches one scenario's full data.
func (c *Client) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	var sc models.Scenario
	if err := c.getJSON(ctx, "/api/scenario/"+url.PathEscape(id), &sc); err != nil {
		return nil, err
	}
	if sc.ID == "" {
		sc.ID = id
	}
	return &sc, nil
}

// GetMechanicTasks fetches the assigned-task list for one mechanic in the
// given scenario.
func (c *Client) GetMechanicTasks(ctx context.Context, mechanicID, scenarioID string) (*models.MechanicSchedule, error) {
	endpoint := fmt.Sprintf("/api/mechanic/%s/tasks?scenario=%s",
		url.PathEscape(mechanicID), url.QueryEscape(scenarioID))
	var sched models.MechanicSchedule
	if err := c.getJSON(ctx, endpoint, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

// GetProductTasks fetches the per-product task breakdown.
func (c *Client) GetProductTasks(ctx context.Context, productName, scenarioID string) (*models.ProductTaskDetail, error) {
	endpoint := fmt.Sprintf("/api/product/%s/tasks?scenario=%s",
		url.PathEscape(productName), url.QueryEscape(scenarioID))
	var detail models.ProductTaskDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AssignTask assigns one task to one mechanic.
func (c *Client) AssignTask(ctx context.Context, taskID, mechanicID, scenarioID string) error {
	body := map[string]string{
		"taskId":     taskID,
		"mechanicId": mechanicID,
		"scenario":   scenarioID,
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/assign_task", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &FetchError{Endpoint: "POST /api/assign_task", Err: fmt.Errorf("assignment rejected: %s", resp.Message)}
	}
	return nil
}

// Refresh asks the backend to recompute all scenarios. The backend message
// is returned as an error when the recompute fails.
func (c *Client) Refresh(ctx context.Context) error {
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := c.postJSON(ctx, "/api/refresh", struct{}{}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &FetchError{Endpoint: "POST /api/refresh", Err: fmt.Errorf("%s", resp.Error)}
	}
	return nil
}

// ExportCSV streams the backend's CSV export for a scenario into w and
// returns the byte count written.
func (c *Client) ExportCSV(ctx context.Context, scenarioID string, w io.Writer) (int64, error) {
	endpoint := "/api/export/" + url.PathEscape(scenarioID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return 0, &FetchError{Endpoint: "GET " + endpoint, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &FetchError{Endpoint: "GET " + endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &FetchError{Endpoint: "GET " + endpoint, StatusCode: resp.StatusCode, Err: decodeAPIError(resp.Body)}
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &FetchError{Endpoint: "GET " + endpoint, Err: err}
	}
	return n, nil
}

// Health checks whether the backend is reachable and has scenarios loaded.
func (c *Client) Health(ctx context.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, "/api/health", &payload); err != nil {
		return err
	}
	if payload.Status != "healthy" {
		return &FetchError{Endpoint: "GET /api/health", Err: fmt.Errorf("backend reports status %q", payload.Status)}
	}
	return nil
}

// ListTeams fetches the backend's team roster. Older backends may not serve
// this route; callers treat failure as best-effort.
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	var payload struct {
		Teams []models.Team `json:"teams"`
	}
	if err := c.getJSON(ctx, "/api/teams", &payload); err != nil {
		return nil, err
	}
	return payload.Teams, nil
}

// ListMechanics fetches the backend's mechanic roster, best-effort like
// ListTeams.
func (c *Client) ListMechanics(ctx context.Context) ([]models.Mechanic, error) {
	var payload struct {
		Mechanics []models.Mechanic `json:"mechanics"`
	}
	if err := c.getJSON(ctx, "/api/mechanics", &payload); err != nil {
		return nil, err
	}
	return payload.Mechanics, nil
}
