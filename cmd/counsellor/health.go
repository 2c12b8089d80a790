package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the career-advice service is reachable",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	status, err := client.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("service at %s is unreachable: %w", client.BaseURL(), err)
	}
	if !status.Healthy() {
		return fmt.Errorf("service at %s reported unhealthy: %s", client.BaseURL(), status.Message)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is healthy (%s)\n", status.Data.Service, client.BaseURL())
	return nil
}
