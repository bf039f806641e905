// Package cli implements the floorview commands. Service dependencies are
// package-level variables assigned during application wiring.
package cli

import (
	"fmt"

	"github.com/floorview/floorview/pkg/models"
	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// Cfg is the loaded configuration. Set during application wiring.
var Cfg *models.Config

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "floorview",
	Short: "Terminal dashboard for production scheduling scenarios",
	Long: `floorview is a terminal client for the production-scheduling backend.

It fetches precomputed scheduling scenarios, caches them for the session,
and renders role-specific views: a team-lead task table, management KPIs,
per-mechanic timelines, and a project timeline. Filters on team, shift,
and product apply across all views.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("floorview %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
