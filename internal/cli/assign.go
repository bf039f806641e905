package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/floorview/floorview/internal/view"
	"github.com/floorview/floorview/pkg/models"
	"github.com/spf13/cobra"
)

var (
	assignScenario string
	assignTasks    []string
	assignVisible  int
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Auto-assign tasks round-robin over the worker pool",
	Long: `Distribute tasks over the configured worker pool, one assignment request
per task, round-robin in order: task i goes to worker i mod pool size.

Tasks come from --tasks, or with --visible N the first N tasks of the
current team-lead table are used. Individual failures are reported and
skipped; the batch always completes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		ctx := context.Background()
		if _, err := Controller.Startup(ctx); err != nil {
			return err
		}
		if assignScenario != "" {
			if !Controller.SwitchScenario(assignScenario) {
				return fmt.Errorf("scenario %q not found", assignScenario)
			}
		}

		ids := assignTasks
		if len(ids) == 0 {
			ids = visibleTaskIDs(assignVisible)
		}
		if len(ids) == 0 {
			fmt.Println("No tasks to assign.")
			return nil
		}

		result, err := Controller.AutoAssign(ctx, ids)
		if err != nil {
			return err
		}

		for _, a := range result.Assignments {
			fmt.Printf("  %-16s -> %s\n", a.TaskID, a.MechanicID)
		}
		for taskID, aerr := range result.Failures {
			fmt.Printf("  %-16s FAILED: %v\n", taskID, aerr)
		}
		fmt.Printf("\nAssigned %d of %d task(s).\n", result.Succeeded, result.Attempted)
		return nil
	},
}

// visibleTaskIDs returns the ids of the first n rows of the current
// team-lead table, matching what the dashboard shows as assignable.
func visibleTaskIDs(n int) []string {
	sc := Store.Selected()
	if sc == nil {
		return nil
	}
	all := teamLeadSnapshot(sc)
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

// teamLeadSnapshot returns the task ids of the current team-lead table.
func teamLeadSnapshot(sc *models.Scenario) []string {
	tl := view.TeamLead(sc, Store.Selection(), time.Now())
	ids := make([]string, len(tl.Rows))
	for i, row := range tl.Rows {
		ids[i] = row.ID
	}
	return ids
}

func init() {
	assignCmd.Flags().StringVar(&assignScenario, "scenario", "", "Scenario id (default: configured default)")
	assignCmd.Flags().StringSliceVar(&assignTasks, "tasks", nil, "Task ids to assign")
	assignCmd.Flags().IntVar(&assignVisible, "visible", 5, "Assign the first N visible team-lead tasks when --tasks is not given")
	rootCmd.AddCommand(assignCmd)
}
