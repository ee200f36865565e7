package port

import (
	"context"

	"supervault_dashboard/internal/domain/entity"
)

// PricingClient defines the interface for interacting with the SuperVault pricing API.
type PricingClient interface {
	// GetAllVaults lists the SuperVaults deployed on a chain.
	GetAllVaults(ctx context.Context, chainID string) (*entity.VaultList, error)

	// GetPPS returns the price-per-share of a vault, at block when non-nil.
	GetPPS(ctx context.Context, chainID, vault string, block *uint64) (*entity.PPSResponse, error)

	// GetVault returns everything known about a vault in a single call.
	GetVault(ctx context.Context, chainID, vault string, block *uint64) (*entity.VaultDetails, error)

	// HealthCheck reports whether the API answers its health endpoint.
	HealthCheck(ctx context.Context) bool

	// ClearCache drops every cached response.
	ClearCache(ctx context.Context)

	// ClearVaultCache drops the cached latest-block responses of one vault.
	ClearVaultCache(ctx context.Context, chainID, vault string)
}
