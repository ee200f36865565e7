package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/domain/entity"
)

// WarmupServiceImpl implements port.WarmupService. It fetches the vault list of
// every chain and the details of every watched vault so the first page loads
// are served from cache.
type WarmupServiceImpl struct {
	pricing     port.PricingClient
	chains      port.ChainRegistry
	watchlist   port.WatchlistProvider
	logger      port.Logger
	concurrency int
}

// NewWarmupService creates a new instance of WarmupServiceImpl.
func NewWarmupService(
	pc port.PricingClient,
	cr port.ChainRegistry,
	wp port.WatchlistProvider,
	l port.Logger,
	concurrency int,
) *WarmupServiceImpl {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &WarmupServiceImpl{
		pricing:     pc,
		chains:      cr,
		watchlist:   wp,
		logger:      l,
		concurrency: concurrency,
	}
}

// Warm implements port.WarmupService. Individual fetch failures are counted,
// not returned; an error means the watchlist could not be read.
func (s *WarmupServiceImpl) Warm(ctx context.Context) (entity.WarmupReport, error) {
	s.logger.Info("Starting cache warm-up...")

	var watched []entity.WatchedVault
	var watchErr error
	if s.watchlist != nil {
		watched, watchErr = s.watchlist.GetWatchedVaults()
		if watchErr != nil {
			s.logger.Error("Failed to load watchlist, warming vault lists only", "error", watchErr)
			watchErr = fmt.Errorf("failed to load watchlist: %w", watchErr)
		}
	}

	var chainsOK, vaultsOK, failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, chain := range s.chains.All() {
		chainID := chain.ChainID
		g.Go(func() error {
			if _, err := s.pricing.GetAllVaults(gctx, chainID); err != nil {
				failed.Add(1)
				s.logger.Warn("Warm-up failed for vault list", "chainID", chainID, "error", err)
				return nil
			}
			chainsOK.Add(1)
			return nil
		})
	}

	for _, wv := range watched {
		wv := wv
		if _, ok := s.chains.Get(wv.ChainID); !ok {
			s.logger.Warn("Watchlist entry on inactive chain, skipping", "chainID", wv.ChainID, "vault", wv.Address)
			continue
		}
		g.Go(func() error {
			if _, err := s.pricing.GetVault(gctx, wv.ChainID, wv.Address, nil); err != nil {
				failed.Add(1)
				s.logger.Warn("Warm-up failed for vault", "chainID", wv.ChainID, "vault", wv.Address, "error", err)
				return nil
			}
			vaultsOK.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return entity.WarmupReport{}, err
	}

	report := entity.WarmupReport{
		Chains: int(chainsOK.Load()),
		Vaults: int(vaultsOK.Load()),
		Failed: int(failed.Load()),
	}
	s.logger.Info(fmt.Sprintf("Cache warm-up finished. Chains: %d, vaults: %d, failed: %d", report.Chains, report.Vaults, report.Failed))
	return report, watchErr
}
