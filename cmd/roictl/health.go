package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicing-roi-api/internal/cli"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show server health and database connectivity",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	c := newClient()

	health, err := c.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("server unreachable at %s: %w", flagAPIURL, err)
	}
	status, err := c.DBStatus(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading database status: %w", err)
	}

	fmt.Println()
	fmt.Print(cli.RenderStatus(health, status))
	fmt.Println()
	return nil
}
