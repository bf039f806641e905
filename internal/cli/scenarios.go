package cli

import (
	"context"
	"fmt"

	"github.com/floorview/floorview/internal/api"
	"github.com/floorview/floorview/internal/store"
	schedsync "github.com/floorview/floorview/internal/sync"
	"github.com/spf13/cobra"
)

// Backend is the API client for the scheduling backend.
// Set during application wiring.
var Backend *api.Client

// Store is the session scenario cache. Set during application wiring.
var Store *store.Store

// Controller orchestrates fetches into the Store. Set during application
// wiring.
var Controller *schedsync.Controller

var scenariosStats bool

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List available scheduling scenarios",
	Long: `Fetch and list the backend's scheduling scenarios with headline numbers:
makespan, workforce, on-time rate, and average utilization.

With --stats, also print each scenario's workforce and makespan deltas
against the baseline scenario.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		ctx := context.Background()
		if err := Backend.Health(ctx); err != nil {
			return fmt.Errorf("backend unreachable at %s: %w", Cfg.BackendURL, err)
		}

		result, err := Controller.Startup(ctx)
		if err != nil {
			return err
		}
		for id, ferr := range result.Failed {
			fmt.Printf("warning: scenario %s failed to load: %v\n", id, ferr)
		}
		if len(result.Loaded) == 0 {
			fmt.Println("No scenarios loaded.")
			return nil
		}

		selected := Store.Selection().ScenarioID
		fmt.Printf("  %-12s %-10s %-10s %-9s %-6s\n", "ID", "MAKESPAN", "WORKFORCE", "ON-TIME", "UTIL")
		for _, id := range result.Loaded {
			sc := Store.Get(id)
			marker := " "
			if id == selected {
				marker = "*"
			}
			fmt.Printf("%s %-12s %-10s %-10d %-9s %-6s\n",
				marker, id,
				fmt.Sprintf("%dd", sc.Makespan),
				sc.TotalWorkforce,
				fmt.Sprintf("%d%%", sc.OnTimeRate),
				fmt.Sprintf("%d%%", sc.AvgUtilization))
		}

		if scenariosStats {
			printScenarioStats(result.Loaded)
		}
		return nil
	},
}

// printScenarioStats prints workforce/makespan deltas against the first
// loaded scenario, computed client-side so old backends without the stats
// route still work.
func printScenarioStats(ids []string) {
	if len(ids) < 2 {
		return
	}
	base := Store.Get(ids[0])
	if base == nil {
		return
	}

	fmt.Printf("\nCompared to %s:\n", base.ID)
	fmt.Printf("  %-12s %-12s %s\n", "ID", "WORKFORCE", "MAKESPAN")
	for _, id := range ids[1:] {
		sc := Store.Get(id)
		if sc == nil {
			continue
		}
		fmt.Printf("  %-12s %-12s %s\n", id,
			signed(sc.TotalWorkforce-base.TotalWorkforce),
			signed(sc.Makespan-base.Makespan)+"d")
	}
}

func signed(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func init() {
	scenariosCmd.Flags().BoolVar(&scenariosStats, "stats", false, "Show deltas against the baseline scenario")
	rootCmd.AddCommand(scenariosCmd)
}
