package view

import (
	"strings"
	"time"

	"github.com/floorview/floorview/internal/filter"
	"github.com/floorview/floorview/pkg/models"
)

// ChartRow is the generic timeline-chart input schema: the project view
// hands these rows to whatever chart widget renders them.
type ChartRow struct {
	ID           string
	Label        string
	Start        time.Time
	End          time.Time
	Progress     int    // always 100: scenarios describe planned work
	StyleClass   string // derived from product and the critical predicate
	Dependencies string // comma-joined dependency ids
}

// styleClass derives the chart row's style class from the task's product
// and criticality, e.g. "product-line-a critical".
func styleClass(t models.Task) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(t.Product), " ", "-"))
	if slug == "" {
		slug = "unassigned"
	}
	class := "product-" + slug
	if filter.Critical(t) {
		class += " critical"
	}
	return class
}

// Timeline maps the filtered task list into chart rows.
func Timeline(sc *models.Scenario, sel models.FilterSelection) []ChartRow {
	tasks := filter.Tasks(sc, sel)
	rows := make([]ChartRow, 0, len(tasks))
	for _, t := range tasks {
		label := t.DisplayName
		if label == "" {
			label = t.ID
		}
		rows = append(rows, ChartRow{
			ID:           t.ID,
			Label:        label,
			Start:        t.Start.Time,
			End:          t.End.Time,
			Progress:     100,
			StyleClass:   styleClass(t),
			Dependencies: t.DependencyIDs(),
		})
	}
	return rows
}
