package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var refreshYes bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Trigger a backend recompute and reload all scenarios",
	Long: `Ask the backend to recompute every scheduling scenario, then reload them.

The recompute can take a while on large schedules, so the command asks for
confirmation first; pass --yes to skip the prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		if !refreshYes {
			fmt.Print("Recompute all scenarios? This may take a while. [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		fmt.Println("Refreshing...")
		result, err := Controller.RefreshAll(context.Background())
		if err != nil {
			return fmt.Errorf("refresh failed: %w", err)
		}

		fmt.Printf("Reloaded %d scenario(s).\n", len(result.Loaded))
		for id, ferr := range result.Failed {
			fmt.Printf("warning: scenario %s failed to load: %v\n", id, ferr)
		}
		return nil
	},
}

func init() {
	refreshCmd.Flags().BoolVarP(&refreshYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(refreshCmd)
}
