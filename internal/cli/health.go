package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUpstreamUnhealthy = errors.New("pricing API is unhealthy")

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the pricing API answers",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if !s.dashboard.UpstreamHealthy(ctx) {
		return fmt.Errorf("%w: %s", errUpstreamUnhealthy, s.components.Pricing.BaseURL())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "OK %s\n", s.components.Pricing.BaseURL())
	return nil
}
