package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var vaultsChainID string

var vaultsCmd = &cobra.Command{
	Use:   "vaults",
	Short: "List the SuperVaults deployed on a chain",
	RunE:  runVaults,
}

func init() {
	vaultsCmd.Flags().StringVar(&vaultsChainID, "chain", "1", "chain id")
	rootCmd.AddCommand(vaultsCmd)
}

func runVaults(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	options, err := s.dashboard.VaultOptions(ctx, vaultsChainID)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No vaults found on chain %s\n", vaultsChainID)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VAULT\tADDRESS")
	for _, o := range options {
		fmt.Fprintf(w, "%s\t%s\n", o.Label, o.Value)
	}
	return w.Flush()
}
