package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/floorview/floorview/internal/view"
	"github.com/spf13/cobra"
)

var summaryJSON bool

var summaryCmd = &cobra.Command{
	Use:   "summary [scenario-id]",
	Short: "Show the management view for a scenario",
	Long: `Show the management summary for a scenario: headline KPIs, per-product
delivery status (on-time, at-risk, or late), and per-team utilization.

With no argument the default scenario is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		if _, err := Controller.Startup(context.Background()); err != nil {
			return err
		}
		if len(args) == 1 {
			if !Controller.SwitchScenario(args[0]) {
				return fmt.Errorf("scenario %q not found", args[0])
			}
		}

		sc := Store.Selected()
		if sc == nil {
			return fmt.Errorf("no scenario loaded")
		}

		mgmt := view.Management(sc, Store.Selection())

		if summaryJSON {
			data, err := json.MarshalIndent(mgmt, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting summary as JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		fmt.Printf("Scenario %s\n\n", mgmt.ScenarioID)
		if mgmt.Degraded {
			fmt.Println("  (degraded: unresolved task or product references)")
		}
		fmt.Printf("  %-20s %d\n", "Workforce:", mgmt.Workforce)
		fmt.Printf("  %-20s %d days\n", "Makespan:", mgmt.Makespan)
		fmt.Printf("  %-20s %d%%\n", "On-time rate:", mgmt.OnTimeRate)
		fmt.Printf("  %-20s %d%%\n", "Avg utilization:", mgmt.AvgUtilization)
		fmt.Printf("  %-20s %d days\n", "Max lateness:", mgmt.MaxLateness)

		if len(mgmt.Products) > 0 {
			fmt.Println("\n  Products:")
			fmt.Printf("    %-16s %-8s %-9s %-6s %s\n", "NAME", "STATUS", "PROGRESS", "LATE", "TASKS")
			for _, p := range mgmt.Products {
				fmt.Printf("    %-16s %-8s %-9s %-6s %d\n",
					p.Name, p.Status,
					fmt.Sprintf("%d%%", p.Progress),
					fmt.Sprintf("%dd", p.LatenessDays),
					p.TotalTasks)
			}
		}

		if len(mgmt.Teams) > 0 {
			fmt.Println("\n  Team utilization:")
			for _, t := range mgmt.Teams {
				bar := strings.Repeat("#", t.Percent/5)
				fmt.Printf("    %-20s %3d%% %-20s [%s]\n", t.Team, t.Percent, bar, t.Band)
			}
		}
		return nil
	},
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(summaryCmd)
}
