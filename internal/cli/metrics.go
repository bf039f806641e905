package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/floorview/floorview/internal/observability"
	"github.com/spf13/cobra"
)

// MetricsCalc derives dashboard activity metrics from the event log.
// Set during application wiring; nil when observability is disabled.
var MetricsCalc observability.MetricsCalculator

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display dashboard activity metrics",
	Long: `Display aggregated metrics derived from the event log: scenario fetches,
fetch failures, refreshes, and task assignments.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (observability may be disabled)")
		}

		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		metrics, err := MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Metrics (since %s)\n\n", sinceTime.Format("2006-01-02"))
		fmt.Printf("  %-24s %d\n", "Events recorded:", metrics.EventCount)
		fmt.Printf("  %-24s %d\n", "Scenarios fetched:", metrics.ScenariosFetched)
		fmt.Printf("  %-24s %d\n", "Fetch failures:", metrics.FetchFailures)
		fmt.Printf("  %-24s %d\n", "Scenario switches:", metrics.ScenarioSwitches)
		fmt.Printf("  %-24s %d\n", "Refreshes:", metrics.Refreshes)
		fmt.Printf("  %-24s %d\n", "Refresh failures:", metrics.RefreshFailures)
		fmt.Printf("  %-24s %d\n", "Tasks assigned:", metrics.TasksAssigned)
		fmt.Printf("  %-24s %d\n", "Assign failures:", metrics.AssignFailures)
		return nil
	},
}

// parseSinceDuration parses "7d", "24h" style durations into a point in
// the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	var num int
	if _, err := fmt.Sscanf(s[:len(s)-1], "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window (e.g. 7d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
