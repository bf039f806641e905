package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <scenario-id>",
	Short: "Download a scenario's CSV export",
	Long: `Download the backend's CSV export for a scenario and write it to a file
(or stdout with -o -).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if Backend == nil {
			return fmt.Errorf("backend client not initialized")
		}

		scenarioID := args[0]
		out := os.Stdout
		if exportOutput != "-" {
			name := exportOutput
			if name == "" {
				name = fmt.Sprintf("export_%s.csv", scenarioID)
			}
			f, err := os.Create(name)
			if err != nil {
				return fmt.Errorf("creating %s: %w", name, err)
			}
			defer f.Close()
			out = f
			defer fmt.Printf("Wrote %s\n", name)
		}

		if _, err := Backend.ExportCSV(context.Background(), scenarioID, out); err != nil {
			return fmt.Errorf("exporting scenario %s: %w", scenarioID, err)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default export_<id>.csv, - for stdout)")
	rootCmd.AddCommand(exportCmd)
}
