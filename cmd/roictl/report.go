package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/cli"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Show the full report for a saved calculation",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	report, err := newClient().Report(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}

	calc := report.Calculation
	fmt.Println()
	fmt.Println(cli.RenderTitle("ROI REPORT  " + cli.ShortID(calc.ID.String())))
	fmt.Println()
	fmt.Print(cli.RenderInputs(calc))
	fmt.Println()
	fmt.Print(cli.RenderResult(calc.Results))
	fmt.Println()
	fmt.Print(cli.RenderScenarios(report.Scenarios))
	fmt.Println()
	fmt.Print(cli.RenderCharts(report.Charts))
	if report.Summary != "" {
		fmt.Printf("\n  %s\n", report.Summary)
	}
	fmt.Println()
	return nil
}
