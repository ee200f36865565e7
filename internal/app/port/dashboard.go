package port

import (
	"context"

	"supervault_dashboard/internal/app/view"
	"supervault_dashboard/internal/domain/entity"
)

// Selection is the dashboard state chosen by the user.
type Selection struct {
	ChainID string
	Vault   string
	Block   *uint64
	Tab     string
	Refresh bool
}

// DashboardService builds the dashboard views.
type DashboardService interface {
	// Chains lists the selectable chains.
	Chains() []entity.ChainDefinition

	// VaultOptions lists the vault selector entries of a chain.
	VaultOptions(ctx context.Context, chainID string) ([]view.Option, error)

	// Dashboard builds the page model. Upstream failures are reported through
	// the error card; the returned error is reserved for invalid selections.
	Dashboard(ctx context.Context, sel Selection) (*view.Dashboard, error)

	// VaultCards fetches one vault and maps it onto the home tab cards.
	VaultCards(ctx context.Context, chainID, vault string, block *uint64, refresh bool) (*view.Cards, error)

	// PPS fetches the price-per-share card of a vault.
	PPS(ctx context.Context, chainID, vault string, block *uint64) (*view.PPSCard, error)

	// UpstreamHealthy reports whether the pricing API answers.
	UpstreamHealthy(ctx context.Context) bool

	// ClearCache drops every cached response.
	ClearCache(ctx context.Context)

	// ClearVaultCache drops the latest-block responses of one vault.
	ClearVaultCache(ctx context.Context, chainID, vault string)
}

// WarmupService pre-fetches responses into the cache.
type WarmupService interface {
	Warm(ctx context.Context) (entity.WarmupReport, error)
}
