package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	fvmcp "github.com/floorview/floorview/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the floorview MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the floorview MCP server on stdio",
	Long: `Start the floorview MCP server on stdio transport.

The server loads scenarios from the backend and exposes them as MCP tools
that AI assistants can call: list_scenarios, get_scenario_summary,
filter_tasks, get_product_status, get_alerts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil {
			return fmt.Errorf("sync controller not initialized")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if _, err := Controller.Startup(ctx); err != nil {
			return err
		}

		srv := fvmcp.NewServer(Store, AlertEngine, appVersion)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}

		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
