package stub

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/floorview/floorview/pkg/models"
	"github.com/gin-gonic/gin"
)

// Server serves the backend API from generated fixture data.
type Server struct {
	mu          sync.RWMutex
	fixture     *Fixture
	scenarios   map[string]*models.Scenario
	order       []string
	assignments map[string]string // taskId -> mechanicId
	refreshedAt time.Time
}

// NewServer builds a Server from the fixture, generating scenario data
// anchored at the current time.
func NewServer(f *Fixture) *Server {
	s := &Server{
		fixture:     f,
		assignments: make(map[string]string),
	}
	s.rebuild()
	return s
}

func (s *Server) rebuild() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshedAt = time.Now()
	s.scenarios = s.fixture.Build(s.refreshedAt)
	s.order = s.order[:0]
	for _, sf := range s.fixture.Scenarios {
		s.order = append(s.order, sf.ID)
	}
}

func (s *Server) scenario(id string) *models.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenarios[id]
}

// Router builds the gin router with all backend routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/scenarios", s.listScenarios)
	r.GET("/api/scenario/:id", s.getScenario)
	r.GET("/api/mechanic/:id/tasks", s.getMechanicTasks)
	r.GET("/api/product/:name/tasks", s.getProductTasks)
	r.POST("/api/assign_task", s.assignTask)
	r.POST("/api/refresh", s.refresh)
	r.GET("/api/export/:id", s.exportCSV)
	r.GET("/api/health", s.health)
	r.GET("/api/teams", s.listTeams)
	r.GET("/api/mechanics", s.listMechanics)

	return r
}

func (s *Server) listScenarios(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]models.ScenarioInfo, 0, len(s.order))
	for _, sf := range s.fixture.Scenarios {
		infos = append(infos, models.ScenarioInfo{
			ID:          sf.ID,
			Name:        sf.Name,
			Description: fmt.Sprintf("%d day makespan, %d products", sf.Makespan, len(sf.Products)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": infos})
}

func (s *Server) getScenario(c *gin.Context) {
	sc := s.scenario(c.Param("id"))
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
		return
	}
	c.JSON(http.StatusOK, sc)
}

// getMechanicTasks replays the real backend's demo assignment: today's
// tasks are dealt round-robin across eight mechanics, six per head at most.
func (s *Server) getMechanicTasks(c *gin.Context) {
	mechanicID := c.Param("id")
	sc := s.scenario(c.Query("scenario"))
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
		return
	}

	mechanicNum := 1
	if digits := strings.Map(keepDigits, mechanicID); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil && n > 0 {
			mechanicNum = n
		}
	}

	now := time.Now()
	var daily []models.Task
	for _, t := range sc.Tasks {
		if t.Start.SameDay(now) {
			daily = append(daily, t)
		}
	}

	var assigned []models.Task
	for i, t := range daily {
		if i%8 == (mechanicNum-1)%8 {
			assigned = append(assigned, t)
			if len(assigned) >= 6 {
				break
			}
		}
	}
	sort.SliceStable(assigned, func(i, j int) bool {
		return assigned[i].Start.Before(assigned[j].Start.Time)
	})

	c.JSON(http.StatusOK, models.MechanicSchedule{
		MechanicID:    mechanicID,
		Shift:         "1st",
		Date:          now.Format("2006-01-02"),
		Tasks:         assigned,
		TotalAssigned: len(assigned),
	})
}

func (s *Server) getProductTasks(c *gin.Context) {
	name := c.Param("name")
	sc := s.scenario(c.Query("scenario"))
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
		return
	}

	var tasks []models.Task
	breakdown := make(map[models.TaskType]int)
	for _, t := range sc.Tasks {
		if t.Product == name {
			tasks = append(tasks, t)
			breakdown[t.Type]++
		}
	}

	c.JSON(http.StatusOK, models.ProductTaskDetail{
		ProductName: name,
		ProductInfo: sc.Product(name),
		Tasks:       tasks,
		Breakdown:   breakdown,
		TotalTasks:  len(tasks),
	})
}

func (s *Server) assignTask(c *gin.Context) {
	var body struct {
		TaskID     string `json:"taskId"`
		MechanicID string `json:"mechanicId"`
		Scenario   string `json:"scenario"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if body.TaskID == "" || body.MechanicID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "taskId and mechanicId are required"})
		return
	}

	s.mu.Lock()
	s.assignments[body.TaskID] = body.MechanicID
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"taskId":     body.TaskID,
		"mechanicId": body.MechanicID,
		"message":    fmt.Sprintf("Task %s assigned to %s", body.TaskID, body.MechanicID),
	})
}

func (s *Server) refresh(c *gin.Context) {
	s.rebuild()
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "All scenarios refreshed",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) exportCSV(c *gin.Context) {
	sc := s.scenario(c.Param("id"))
	if sc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scenario not found"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=export_%s_%s.csv", sc.ID, time.Now().Format("20060102_150405")))

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"taskId", "type", "product", "team", "shift", "priority", "startTime", "endTime", "duration", "mechanics"})
	for _, t := range sc.Tasks {
		_ = w.Write([]string{
			t.ID, string(t.Type), t.Product, t.Team, t.Shift,
			strconv.Itoa(t.Priority),
			t.Start.Format("2006-01-02T15:04:05"),
			t.End.Format("2006-01-02T15:04:05"),
			strconv.Itoa(t.DurationMin),
			strconv.Itoa(t.Mechanics),
		})
	}
	w.Flush()
}

func (s *Server) health(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"scenarios_loaded": len(s.scenarios),
		"timestamp":        s.refreshedAt.Format(time.RFC3339),
	})
}

func (s *Server) listTeams(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var teams []models.Team
	for _, sf := range s.fixture.Scenarios {
		for _, t := range sf.Teams {
			if seen[t.Name] {
				continue
			}
			seen[t.Name] = true
			kind := "mechanic"
			if strings.Contains(t.Name, "Quality") {
				kind = "quality"
			}
			teams = append(teams, models.Team{
				ID:       t.Name,
				Type:     kind,
				Capacity: t.Capacity,
				Shifts:   []string{t.Shift},
			})
		}
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) listMechanics(c *gin.Context) {
	mechanics := []models.Mechanic{
		{ID: "mech1", Name: "John Smith", Team: "Mechanic Team 1"},
		{ID: "mech2", Name: "Jane Doe", Team: "Mechanic Team 1"},
		{ID: "mech3", Name: "Bob Johnson", Team: "Mechanic Team 2"},
		{ID: "mech4", Name: "Alice Williams", Team: "Mechanic Team 2"},
		{ID: "qual1", Name: "Tom Wilson", Team: "Quality Team 1"},
	}
	c.JSON(http.StatusOK, gin.H{"mechanics": mechanics})
}

func keepDigits(r rune) rune {
	if r >= '0' && r <= '9' {
		return r
	}
	return -1
}
