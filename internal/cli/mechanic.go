package cli

import (
	"context"
	"fmt"

	"github.com/floorview/floorview/internal/view"
	"github.com/spf13/cobra"
)

var mechanicScenario string

var mechanicCmd = &cobra.Command{
	Use:   "mechanic <mechanic-id>",
	Short: "Show one mechanic's assigned tasks",
	Long: `Show the mechanic view: assigned tasks for the given mechanic id in the
selected scenario, with shift, estimated completion, and dependency and
on-dock annotations.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		ctx := context.Background()
		if _, err := Controller.Startup(ctx); err != nil {
			return err
		}
		if mechanicScenario != "" {
			if !Controller.SwitchScenario(mechanicScenario) {
				return fmt.Errorf("scenario %q not found", mechanicScenario)
			}
		}

		scenarioID := Store.Selection().ScenarioID
		sched, err := Backend.GetMechanicTasks(ctx, args[0], scenarioID)
		if err != nil {
			return fmt.Errorf("fetching mechanic tasks: %w", err)
		}

		mv := view.Mechanic(sched)

		fmt.Printf("Mechanic %s (shift %s) - scenario %s\n\n", mv.MechanicID, mv.Shift, scenarioID)
		fmt.Printf("  %-22s %d\n", "Assigned tasks:", mv.AssignedCount)
		if mv.HasWork {
			fmt.Printf("  %-22s %s\n", "Estimated completion:", mv.EstimatedDone.Format("15:04"))
		} else {
			fmt.Printf("  %-22s none\n", "Estimated completion:")
		}

		if len(mv.Rows) == 0 {
			return nil
		}
		fmt.Printf("\n  %-16s %-18s %-12s %-12s %s\n", "ID", "TYPE", "START", "END", "NOTES")
		for _, row := range mv.Rows {
			notes := ""
			if row.Dependencies != "" {
				notes = "after " + row.Dependencies
			}
			if row.OnDock != "" {
				if notes != "" {
					notes += "; "
				}
				notes += "on dock " + row.OnDock
			}
			fmt.Printf("  %-16s %-18s %-12s %-12s %s\n",
				row.ID, row.Type,
				row.Start.Format("01-02 15:04"), row.End.Format("01-02 15:04"),
				notes)
		}
		return nil
	},
}

func init() {
	mechanicCmd.Flags().StringVar(&mechanicScenario, "scenario", "", "Scenario id (default: configured default)")
	rootCmd.AddCommand(mechanicCmd)
}
