package port

import (
	"context"

	"supervault_dashboard/internal/domain/entity"
)

// ChainRegistry provides the chains the dashboard knows about.
type ChainRegistry interface {
	// All returns active chains ordered by configuration.
	All() []entity.ChainDefinition

	// Get returns an active chain by its ID.
	Get(chainID string) (entity.ChainDefinition, bool)

	// ExplorerAddressURL links an address on the chain's block explorer.
	// Unknown chains fall back to the Ethereum explorer.
	ExplorerAddressURL(chainID, address string) string
}

// ChainHeadProvider reads the latest block number of a chain.
type ChainHeadProvider interface {
	// LatestBlock returns ok=false when the chain has no RPC endpoint configured.
	LatestBlock(ctx context.Context, chainID string) (block uint64, ok bool, err error)
}

// WatchlistProvider defines the interface for fetching pinned vaults.
type WatchlistProvider interface {
	GetWatchedVaults() ([]entity.WatchedVault, error)
}
