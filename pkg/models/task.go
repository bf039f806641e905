package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskType classifies a scheduled unit of work.
type TaskType string

const (
	TypeProduction TaskType = "Production"
	TypeQuality    TaskType = "Quality Inspection"
	TypeLatePart   TaskType = "Late Part"
	TypeRework     TaskType = "Rework"
)

// TaskTypes lists all task types in display order.
var TaskTypes = []TaskType{TypeProduction, TypeQuality, TypeLatePart, TypeRework}

// Timestamp wraps time.Time to accept the backend's timestamp formats:
// Python isoformat() with or without a zone offset, plus bare dates
// (used for on-dock dates).
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// UnmarshalJSON parses a backend timestamp. Null and empty strings decode
// to the zero time.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

// MarshalJSON emits the timestamp in the backend's isoformat style.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format("2006-01-02T15:04:05"))
}

// SameDay reports whether the timestamp falls on the same calendar date
// as the given time.
func (t Timestamp) SameDay(other time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Dependency is a reference from one task to another task it depends on.
type Dependency struct {
	Type    string `json:"type"`
	TaskID  string `json:"task"`
	Product string `json:"product,omitempty"`
}

// Task is one scheduled unit of work in a scenario.
type Task struct {
	ID             string       `json:"taskId"`
	Type           TaskType     `json:"type"`
	DisplayName    string       `json:"displayName,omitempty"`
	Product        string       `json:"product"`
	Team           string       `json:"team"`
	Shift          string       `json:"shift"`
	Priority       int          `json:"priority"`
	Start          Timestamp    `json:"startTime"`
	End            Timestamp    `json:"endTime"`
	DurationMin    int          `json:"duration"`
	Mechanics      int          `json:"mechanics"`
	SlackHours     float64      `json:"slackHours,omitempty"`
	Dependencies   []Dependency `json:"dependencies,omitempty"`
	IsLatePartTask bool         `json:"isLatePartTask"`
	IsReworkTask   bool         `json:"isReworkTask"`
	IsCriticalPath bool         `json:"isCriticalPath,omitempty"`
	OnDockDate     *Timestamp   `json:"onDockDate,omitempty"`
}

// DependencyIDs renders the task's dependency ids comma-joined, the format
// the timeline chart consumes.
func (t Task) DependencyIDs() string {
	if len(t.Dependencies) == 0 {
		return ""
	}
	ids := make([]string, len(t.Dependencies))
	for i, d := range t.Dependencies {
		ids[i] = d.TaskID
	}
	return strings.Join(ids, ",")
}
