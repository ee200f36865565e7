package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/app/view"
	"supervault_dashboard/internal/domain/entity"
	"supervault_dashboard/internal/domain/staleness"
	"supervault_dashboard/internal/pkg/metrics"
)

var (
	// ErrUnknownChain is returned for chains not in the registry.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrBlockAheadOfHead is returned when the requested block is not mined yet.
	ErrBlockAheadOfHead = errors.New("block number is ahead of the chain head")
)

// DashboardOptions configures DashboardServiceImpl.
type DashboardOptions struct {
	DefaultChainID     string
	AutoRefreshSeconds int
	Clock              clockwork.Clock
}

// DashboardServiceImpl implements port.DashboardService.
type DashboardServiceImpl struct {
	pricing port.PricingClient
	chains  port.ChainRegistry
	heads   port.ChainHeadProvider
	logger  port.Logger
	opts    DashboardOptions
}

// NewDashboardService creates a new instance of DashboardServiceImpl. heads may
// be nil when no chain has an RPC endpoint.
func NewDashboardService(
	pc port.PricingClient,
	cr port.ChainRegistry,
	hp port.ChainHeadProvider,
	l port.Logger,
	opts DashboardOptions,
) *DashboardServiceImpl {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.DefaultChainID == "" {
		opts.DefaultChainID = "1"
	}
	return &DashboardServiceImpl{
		pricing: pc,
		chains:  cr,
		heads:   hp,
		logger:  l,
		opts:    opts,
	}
}

// Chains implements port.DashboardService.
func (s *DashboardServiceImpl) Chains() []entity.ChainDefinition {
	return s.chains.All()
}

func (s *DashboardServiceImpl) resolveChain(chainID string) (string, error) {
	if chainID == "" {
		chainID = s.opts.DefaultChainID
	}
	if _, ok := s.chains.Get(chainID); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownChain, chainID)
	}
	return chainID, nil
}

// VaultOptions implements port.DashboardService.
func (s *DashboardServiceImpl) VaultOptions(ctx context.Context, chainID string) ([]view.Option, error) {
	chainID, err := s.resolveChain(chainID)
	if err != nil {
		return nil, err
	}
	list, err := s.pricing.GetAllVaults(ctx, chainID)
	if err != nil {
		s.logger.Error("Failed to fetch vault list", "chainID", chainID, "error", err)
		return nil, fmt.Errorf("failed to fetch vaults for chain %s: %w", chainID, err)
	}
	return view.VaultOptions(list), nil
}

// Dashboard implements port.DashboardService.
func (s *DashboardServiceImpl) Dashboard(ctx context.Context, sel port.Selection) (*view.Dashboard, error) {
	chainID, err := s.resolveChain(sel.ChainID)
	if err != nil {
		return nil, err
	}

	tab := view.NormalizeTab(sel.Tab)
	d := &view.Dashboard{
		ChainID:            chainID,
		BlockNumber:        sel.Block,
		Tab:                tab,
		Chains:             view.ChainOptions(s.chains.All(), chainID),
		Tabs:               view.Tabs(tab),
		GeneratedAt:        s.opts.Clock.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
		AutoRefreshSeconds: s.opts.AutoRefreshSeconds,
	}

	latest, err := s.checkBlock(ctx, chainID, sel.Block)
	if err != nil {
		return nil, err
	}
	d.LatestBlock = latest

	options, err := s.VaultOptions(ctx, chainID)
	if err != nil {
		card := view.NewErrorCard(err)
		d.Error = &card
		return d, nil
	}
	d.Vaults = options
	d.Vault = view.SelectOption(d.Vaults, sel.Vault)

	if placeholder, ok := view.PlaceholderFor(tab); ok {
		d.Placeholder = &placeholder
		return d, nil
	}
	if d.Vault == "" {
		s.logger.Debug("No vaults listed for chain", "chainID", chainID)
		return d, nil
	}

	cards, err := s.fetchCards(ctx, chainID, d.Vault, sel.Block, sel.Refresh)
	if err != nil {
		card := view.NewErrorCard(err)
		d.Error = &card
		return d, nil
	}
	d.Cards = cards
	return d, nil
}

// VaultCards implements port.DashboardService.
func (s *DashboardServiceImpl) VaultCards(ctx context.Context, chainID, vault string, block *uint64, refresh bool) (*view.Cards, error) {
	chainID, err := s.resolveChain(chainID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkBlock(ctx, chainID, block); err != nil {
		return nil, err
	}
	return s.fetchCards(ctx, chainID, vault, block, refresh)
}

func (s *DashboardServiceImpl) fetchCards(ctx context.Context, chainID, vault string, block *uint64, refresh bool) (*view.Cards, error) {
	if refresh {
		s.pricing.ClearVaultCache(ctx, chainID, vault)
	}

	details, err := s.pricing.GetVault(ctx, chainID, vault, block)
	if err != nil {
		s.logger.Error("Failed to fetch vault", "chainID", chainID, "vault", vault, "error", err)
		return nil, err
	}

	cards := view.BuildCards(details, chainID, s.chains, s.opts.Clock.Now())
	if block == nil {
		metrics.PPSHealth.WithLabelValues(chainID, vault).Set(cards.PPS.Health.Status.Gauge())
	}
	return &cards, nil
}

// PPS implements port.DashboardService.
func (s *DashboardServiceImpl) PPS(ctx context.Context, chainID, vault string, block *uint64) (*view.PPSCard, error) {
	chainID, err := s.resolveChain(chainID)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkBlock(ctx, chainID, block); err != nil {
		return nil, err
	}

	pps, err := s.pricing.GetPPS(ctx, chainID, vault, block)
	if err != nil {
		s.logger.Error("Failed to fetch PPS", "chainID", chainID, "vault", vault, "error", err)
		return nil, err
	}

	// The PPS endpoint carries neither the upstream stale flag nor the expiry.
	card := view.NewPPSCard(pps.PPSInfo, entity.StatusInfo{}, 0, s.opts.Clock.Now())
	if card.Health.Status == staleness.Stale {
		s.logger.Warn("PPS is stale", "chainID", chainID, "vault", vault, "lastUpdate", card.LastUpdated)
	}
	return &card, nil
}

// checkBlock rejects blocks above the chain head and returns the head when known.
func (s *DashboardServiceImpl) checkBlock(ctx context.Context, chainID string, block *uint64) (uint64, error) {
	if s.heads == nil {
		return 0, nil
	}
	head, ok, err := s.heads.LatestBlock(ctx, chainID)
	if err != nil {
		s.logger.Warn("Chain head unavailable, skipping block validation", "chainID", chainID, "error", err)
		return 0, nil
	}
	if !ok {
		return 0, nil
	}
	if block != nil && *block > head {
		return head, fmt.Errorf("%w: block %d, head %d", ErrBlockAheadOfHead, *block, head)
	}
	return head, nil
}

// UpstreamHealthy implements port.DashboardService.
func (s *DashboardServiceImpl) UpstreamHealthy(ctx context.Context) bool {
	return s.pricing.HealthCheck(ctx)
}

// ClearCache implements port.DashboardService.
func (s *DashboardServiceImpl) ClearCache(ctx context.Context) {
	s.pricing.ClearCache(ctx)
}

// ClearVaultCache implements port.DashboardService. An empty chainID means the
// default chain.
func (s *DashboardServiceImpl) ClearVaultCache(ctx context.Context, chainID, vault string) {
	if chainID == "" {
		chainID = s.opts.DefaultChainID
	}
	s.pricing.ClearVaultCache(ctx, chainID, vault)
}
