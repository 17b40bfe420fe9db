package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/cli"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the scenario multipliers configured on the server",
	Args:  cobra.NoArgs,
	RunE:  runScenarios,
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	scenarios, err := newClient().Scenarios(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading scenarios: %w", err)
	}

	fmt.Println()
	fmt.Print(cli.RenderScenarioSet(scenarios))
	fmt.Println()
	return nil
}
