package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var (
	vaultChainID string
	vaultBlock   uint64
	vaultRefresh bool
)

var vaultCmd = &cobra.Command{
	Use:   "vault <address>",
	Short: "Print the dashboard cards of one vault",
	Args:  cobra.ExactArgs(1),
	RunE:  runVault,
}

func init() {
	vaultCmd.Flags().StringVar(&vaultChainID, "chain", "1", "chain id")
	vaultCmd.Flags().Uint64Var(&vaultBlock, "block", 0, "block number, 0 for latest")
	vaultCmd.Flags().BoolVar(&vaultRefresh, "refresh", false, "bypass cached latest-block responses")
	rootCmd.AddCommand(vaultCmd)
}

func runVault(cmd *cobra.Command, args []string) error {
	address := args[0]
	if !common.IsHexAddress(address) {
		return fmt.Errorf("invalid vault address %q", address)
	}

	ctx := cmd.Context()
	s, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	var block *uint64
	if vaultBlock > 0 {
		block = &vaultBlock
	}

	cards, err := s.dashboard.VaultCards(ctx, vaultChainID, address, block, vaultRefresh)
	if err != nil {
		return err
	}
	return printCards(cmd.OutOrStdout(), cards)
}
