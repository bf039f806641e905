package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/floorview/floorview/internal/observability"
	"github.com/spf13/cobra"
)

// AlertEngine evaluates alert conditions against the selected scenario.
// Notifier is nil unless Slack notifications are configured.
var (
	AlertEngine observability.AlertEngine
	Notifier    observability.Notifier
)

var (
	alertsScenario string
	alertsJSON     bool
	alertsNotify   bool
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Evaluate alert conditions on a scenario",
	Long: `Evaluate configured alert thresholds (team overload, product lateness,
on-time rate) against the selected scenario and print any triggered
alerts. With --notify the alerts are also posted to the configured
Slack webhook.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Controller == nil || AlertEngine == nil {
			return fmt.Errorf("alert engine not initialized")
		}

		ctx := context.Background()
		if _, err := Controller.Startup(ctx); err != nil {
			return err
		}
		if alertsScenario != "" {
			if !Controller.SwitchScenario(alertsScenario) {
				return fmt.Errorf("scenario %q not found", alertsScenario)
			}
		}

		sc := Store.Selected()
		if sc == nil {
			return fmt.Errorf("no scenario selected")
		}

		alerts := AlertEngine.Evaluate(sc)

		if alertsJSON {
			data, err := json.MarshalIndent(alerts, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting alerts as JSON: %w", err)
			}
			fmt.Println(string(data))
		} else if len(alerts) == 0 {
			fmt.Printf("No alerts for scenario %s.\n", sc.ID)
		} else {
			fmt.Printf("%d alert(s) for scenario %s:\n\n", len(alerts), sc.ID)
			for _, alert := range alerts {
				fmt.Printf("  [%-6s] %-18s %s\n", alert.Severity, alert.Condition, alert.Message)
			}
		}

		if alertsNotify && len(alerts) > 0 {
			if Notifier == nil {
				return fmt.Errorf("notifications not configured (set notifications.slack.webhook_url)")
			}
			if err := Notifier.Notify(alerts); err != nil {
				return fmt.Errorf("sending notification: %w", err)
			}
			fmt.Println("\nNotification sent.")
		}
		return nil
	},
}

func init() {
	alertsCmd.Flags().StringVar(&alertsScenario, "scenario", "", "Scenario id (default: configured default)")
	alertsCmd.Flags().BoolVar(&alertsJSON, "json", false, "Output as JSON")
	alertsCmd.Flags().BoolVar(&alertsNotify, "notify", false, "Also post alerts to the configured Slack webhook")
	rootCmd.AddCommand(alertsCmd)
}
