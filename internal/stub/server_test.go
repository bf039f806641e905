package stub

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/floorview/floorview/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(DefaultFixture()).Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestListScenarios(t *testing.T) {
	srv := newTestServer(t)

	var payload struct {
		Scenarios []models.ScenarioInfo `json:"scenarios"`
	}
	resp := getJSON(t, srv.URL+"/api/scenarios", &payload)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, payload.Scenarios, 4)
	assert.Equal(t, "baseline", payload.Scenarios[0].ID)
	assert.NotEmpty(t, payload.Scenarios[0].Description)
}

func TestGetScenario(t *testing.T) {
	srv := newTestServer(t)

	var sc models.Scenario
	resp := getJSON(t, srv.URL+"/api/scenario/baseline", &sc)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "baseline", sc.ID)
	assert.Equal(t, 18, sc.TotalWorkforce)
	assert.Len(t, sc.Tasks, 54) // 24 + 18 + 12 across the three lines
	assert.Len(t, sc.Products, 3)
	assert.NotEmpty(t, sc.TeamCapacities)

	// Generated dependency chains stay within known task ids.
	ids := make(map[string]bool, len(sc.Tasks))
	for _, task := range sc.Tasks {
		ids[task.ID] = true
	}
	for _, task := range sc.Tasks {
		for _, dep := range task.Dependencies {
			assert.True(t, ids[dep.TaskID], "dependency %s of %s unknown", dep.TaskID, task.ID)
		}
	}
}

func TestGetScenario_NotFound(t *testing.T) {
	srv := newTestServer(t)

	var payload map[string]string
	resp := getJSON(t, srv.URL+"/api/scenario/ghost", &payload)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Scenario not found", payload["error"])
}

func TestGetMechanicTasks(t *testing.T) {
	srv := newTestServer(t)

	var sched models.MechanicSchedule
	resp := getJSON(t, srv.URL+"/api/mechanic/mech1/tasks?scenario=baseline", &sched)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "mech1", sched.MechanicID)
	assert.LessOrEqual(t, len(sched.Tasks), 6)
	assert.Equal(t, len(sched.Tasks), sched.TotalAssigned)
}

func TestAssignTask(t *testing.T) {
	srv := newTestServer(t)

	body := strings.NewReader(`{"taskId": "baseline-LA-001", "mechanicId": "mech2", "scenario": "baseline"}`)
	resp, err := http.Post(srv.URL+"/api/assign_task", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Success)
	assert.Contains(t, payload.Message, "mech2")
}

func TestAssignTask_MissingFields(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/assign_task", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRefresh(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Success)
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/export/baseline")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, 55, len(lines)) // header + 54 tasks
	assert.True(t, strings.HasPrefix(lines[0], "taskId,"))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var payload struct {
		Status          string `json:"status"`
		ScenariosLoaded int    `json:"scenarios_loaded"`
	}
	resp := getJSON(t, srv.URL+"/api/health", &payload)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", payload.Status)
	assert.Equal(t, 4, payload.ScenariosLoaded)
}

func TestListTeamsAndMechanics(t *testing.T) {
	srv := newTestServer(t)

	var teams struct {
		Teams []models.Team `json:"teams"`
	}
	getJSON(t, srv.URL+"/api/teams", &teams)
	require.Len(t, teams.Teams, 3)
	assert.Equal(t, "quality", teams.Teams[2].Type)

	var mechanics struct {
		Mechanics []models.Mechanic `json:"mechanics"`
	}
	getJSON(t, srv.URL+"/api/mechanics", &mechanics)
	assert.NotEmpty(t, mechanics.Mechanics)
}
