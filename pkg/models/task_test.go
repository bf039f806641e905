package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestamp_UnmarshalFormats(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			"python isoformat with microseconds",
			`"2026-08-01T09:30:00.123456"`,
			time.Date(2026, 8, 1, 9, 30, 0, 123456000, time.UTC),
		},
		{
			"isoformat without fraction",
			`"2026-08-01T09:30:00"`,
			time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			"rfc3339 with offset",
			`"2026-08-01T09:30:00Z"`,
			time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			"bare date",
			`"2026-07-28"`,
			time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.in), &ts); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.in, err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("got %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestTimestamp_NullAndEmpty(t *testing.T) {
	for _, in := range []string{`null`, `""`} {
		var ts Timestamp
		if err := json.Unmarshal([]byte(in), &ts); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if !ts.IsZero() {
			t.Errorf("%s must decode to the zero time, got %v", in, ts.Time)
		}
	}
}

func TestTimestamp_UnrecognizedFormat(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"01/08/2026"`), &ts); err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}

func TestTimestamp_MarshalRoundTrip(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)}
	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2026-08-01T09:30:00"` {
		t.Errorf("marshalled to %s", data)
	}

	zero := Timestamp{}
	data, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "null" {
		t.Errorf("zero time marshalled to %s, want null", data)
	}
}

func TestTimestamp_SameDay(t *testing.T) {
	ts := Timestamp{Time: time.Date(2026, 8, 1, 23, 59, 0, 0, time.UTC)}
	if !ts.SameDay(time.Date(2026, 8, 1, 0, 0, 1, 0, time.UTC)) {
		t.Error("same calendar date must match regardless of clock time")
	}
	if ts.SameDay(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)) {
		t.Error("next day must not match")
	}
	if (Timestamp{}).SameDay(time.Now()) {
		t.Error("zero timestamp never matches")
	}
}

func TestTask_DependencyIDs(t *testing.T) {
	task := Task{Dependencies: []Dependency{
		{Type: "Finish-Start", TaskID: "T-1"},
		{Type: "Finish-Start", TaskID: "T-2"},
	}}
	if got := task.DependencyIDs(); got != "T-1,T-2" {
		t.Errorf("DependencyIDs() = %q", got)
	}
	if got := (Task{}).DependencyIDs(); got != "" {
		t.Errorf("no dependencies must render empty, got %q", got)
	}
}

func TestFilterSelection_Matches(t *testing.T) {
	task := Task{Team: "Alpha", Shift: "1st", Product: "Line A"}

	sel := DefaultSelection("s")
	if !sel.Matches(task) {
		t.Error("open filters must match everything")
	}

	sel.Team = "Alpha"
	sel.Shift = "1st"
	sel.Product = "Line A"
	if !sel.Matches(task) {
		t.Error("exact filters must match")
	}

	sel.Shift = "2nd"
	if sel.Matches(task) {
		t.Error("one mismatched predicate must reject")
	}
}
