package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/cli"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent calculations",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 5, "Number of calculations to show (max 100)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	records, err := newClient().ListCalculations(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	fmt.Println()
	fmt.Print(cli.RenderHistory(records))
	fmt.Println()
	return nil
}
