package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/cli"
	"invoicing-roi-api/internal/model"
)

var calcInput model.CalculationInput

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate and save the ROI of invoice automation",
	Args:  cobra.NoArgs,
	RunE:  runCalc,
}

func init() {
	f := calcCmd.Flags()
	f.Float64Var(&calcInput.MonthlyInvoices, "invoices", 100, "Invoices processed per month")
	f.Float64Var(&calcInput.TimePerInvoice, "minutes", 15, "Minutes spent per invoice")
	f.Float64Var(&calcInput.HourlyRate, "rate", 25, "Hourly labor rate")
	f.Float64Var(&calcInput.ErrorRate, "error-rate", 5, "Percentage of invoices with errors")
	f.Float64Var(&calcInput.ErrorCost, "error-cost", 50, "Cost of fixing one error")
	f.Float64Var(&calcInput.SolutionCost, "solution-cost", 500, "Annual cost of the automation solution")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, _ []string) error {
	resp, err := newClient().Calculate(cmd.Context(), calcInput)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INVOICE AUTOMATION ROI"))
	fmt.Println()
	fmt.Print(cli.RenderResult(resp.Results))
	fmt.Print(cli.RenderWarnings(resp.Warnings))
	fmt.Println()
	fmt.Print(cli.RenderScenarios(resp.Scenarios))
	fmt.Println()
	fmt.Printf("  Saved as %s\n\n", resp.ID)
	return nil
}
