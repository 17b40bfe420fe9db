package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/cli"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the inputs and results of a saved calculation",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	calc, err := newClient().Calculation(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading calculation: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CALCULATION  " + cli.ShortID(calc.ID.String())))
	fmt.Println()
	fmt.Print(cli.RenderInputs(calc))
	fmt.Println()
	fmt.Print(cli.RenderResult(calc.Results))
	fmt.Println()
	return nil
}
