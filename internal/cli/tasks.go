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
	tasksScenario string
	tasksTeam     string
	tasksShift    string
	tasksProduct  string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show the team-lead task table",
	Long: `Show the team-lead view: summary tiles and the filtered task table,
capped at 30 rows and sorted by start time.

Filters apply to team, shift, and product; omit a filter (or pass "all")
for no restriction.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		if _, err := Controller.Startup(context.Background()); err != nil {
			return err
		}
		if tasksScenario != "" {
			if !Controller.SwitchScenario(tasksScenario) {
				return fmt.Errorf("scenario %q not found", tasksScenario)
			}
		}
		Store.SetTeam(tasksTeam)
		Store.SetShift(tasksShift)
		Store.SetProduct(tasksProduct)

		sc := Store.Selected()
		if sc == nil {
			return fmt.Errorf("no scenario loaded")
		}

		tl := view.TeamLead(sc, Store.Selection(), time.Now())

		fmt.Printf("Scenario %s - %d task(s) match\n\n", tl.ScenarioID, tl.TotalFiltered)
		fmt.Printf("  %-12s %d\n", "Capacity:", tl.Capacity)
		fmt.Printf("  %-12s %d%%\n", "Utilization:", tl.Utilization)
		fmt.Printf("  %-12s %d\n", "Today:", tl.TodayCount)
		fmt.Printf("  %-12s %d\n", "Critical:", tl.CriticalCount)

		fmt.Println("\n  By type:")
		for _, tt := range models.TaskTypes {
			if count := tl.TypeBreakdown[tt]; count > 0 {
				fmt.Printf("    %-20s %d\n", tt, count)
			}
		}

		if len(tl.Rows) == 0 {
			fmt.Println("\nNo tasks match the current filters.")
			return nil
		}

		fmt.Printf("\n  %-16s %-18s %-10s %-18s %-6s %-5s %s\n",
			"ID", "TYPE", "PRODUCT", "TEAM", "SHIFT", "PRI", "START")
		for _, row := range tl.Rows {
			marker := " "
			if row.Critical {
				marker = "!"
			}
			fmt.Printf("%s %-16s %-18s %-10s %-18s %-6s %-5d %s\n",
				marker, row.ID, row.Type, row.Product, row.Team, row.Shift,
				row.Priority, row.Start.Format("01-02 15:04"))
		}
		if tl.TotalFiltered > len(tl.Rows) {
			fmt.Printf("\n  (showing %d of %d)\n", len(tl.Rows), tl.TotalFiltered)
		}
		return nil
	},
}

func init() {
	tasksCmd.Flags().StringVar(&tasksScenario, "scenario", "", "Scenario id (default: configured default)")
	tasksCmd.Flags().StringVar(&tasksTeam, "team", models.FilterAll, "Team filter")
	tasksCmd.Flags().StringVar(&tasksShift, "shift", models.FilterAll, "Shift filter")
	tasksCmd.Flags().StringVar(&tasksProduct, "product", models.FilterAll, "Product filter")
	rootCmd.AddCommand(tasksCmd)
}
