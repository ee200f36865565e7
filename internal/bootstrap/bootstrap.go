// Package bootstrap assembles the pricing client and its collaborators from
// the loaded configuration. The dashboard server and vaultctl share it.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/app/service"
	"supervault_dashboard/internal/infrastructure/cache"
	"supervault_dashboard/internal/infrastructure/configloader"
	"supervault_dashboard/internal/infrastructure/httpclient"
	networkclient "supervault_dashboard/internal/infrastructure/network/client"
	networkdefinition "supervault_dashboard/internal/infrastructure/network/definition"
)

const rpcCallTimeout = 5 * time.Second

// Components are the long lived collaborators built from the configuration.
type Components struct {
	Cache   port.ResponseCache
	Pricing *httpclient.PricingClient
	Chains  *networkdefinition.ChainRegistry

	// Heads is nil when no chain has an RPC endpoint.
	Heads port.ChainHeadProvider

	closers []func()
}

// Build creates the response cache, the chain registry, the optional chain
// head client and the pricing client.
func Build(ctx context.Context, cfg *configloader.Config, zapLogger *zap.Logger, appLogger port.Logger) (*Components, error) {
	c := &Components{}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	switch cfg.Cache.Backend {
	case configloader.CacheBackendRedis:
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.KeyPrefix, ttl, zapLogger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis cache: %w", err)
		}
		c.Cache = redisCache
		c.closers = append(c.closers, func() { _ = redisCache.Close() })
		appLogger.Info("Using redis response cache", "ttl", ttl)
	default:
		cleanup := time.Duration(cfg.Cache.CleanupIntervalSeconds) * time.Second
		c.Cache = cache.NewMemoryCache(ttl, cleanup, nil)
		appLogger.Info("Using in-memory response cache", "ttl", ttl)
	}

	c.Chains = networkdefinition.NewChainRegistry(appLogger, cfg.Chains)

	for _, def := range c.Chains.All() {
		if def.RPCURL == "" {
			continue
		}
		headTTL := time.Duration(cfg.Dashboard.HeadCacheSeconds) * time.Second
		heads := networkclient.NewHeadClient(c.Chains, appLogger, headTTL, rpcCallTimeout)
		c.Heads = heads
		c.closers = append(c.closers, heads.Close)
		appLogger.Info("Chain head lookup enabled")
		break
	}

	c.Pricing = httpclient.NewPricingClient(httpclient.PricingClientOptions{
		BaseURL:    cfg.PricingAPI.BaseURL,
		Timeout:    time.Duration(cfg.PricingAPI.RequestTimeoutMillis) * time.Millisecond,
		MaxRetries: cfg.PricingAPI.MaxRetries,
		RetryDelay: time.Duration(cfg.PricingAPI.RetryDelayMillis) * time.Millisecond,
		RateLimit:  cfg.PricingAPI.RateLimit,
		Burst:      cfg.PricingAPI.Burst,
	}, c.Cache, zapLogger)
	appLogger.Info("Pricing API client initialized", "baseURL", c.Pricing.BaseURL(), "env", cfg.Env)

	return c, nil
}

// DashboardService wires the dashboard service over the components.
func (c *Components) DashboardService(cfg *configloader.Config, appLogger port.Logger) *service.DashboardServiceImpl {
	autoRefresh := 0
	if cfg.Dashboard.AutoRefresh {
		autoRefresh = cfg.Dashboard.RefreshIntervalSeconds
	}
	return service.NewDashboardService(c.Pricing, c.Chains, c.Heads, appLogger, service.DashboardOptions{
		DefaultChainID:     cfg.Dashboard.DefaultChainID,
		AutoRefreshSeconds: autoRefresh,
	})
}

// Close releases network resources in reverse creation order.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
