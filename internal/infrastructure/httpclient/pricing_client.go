package httpclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/domain/entity"
	"supervault_dashboard/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	endpointVaults = "vaults"
	endpointPPS    = "pps"
	endpointVault  = "vault"
	endpointHealth = "health"

	latestBlockKey = "latest"
)

// PricingClientOptions configures a PricingClient.
type PricingClientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// RateLimit is requests per second; zero disables the limiter.
	RateLimit float64
	Burst     int

	Clock clockwork.Clock
}

// PricingClient talks to the SuperVault pricing API. Successful response
// bodies are kept in the shared response cache.
type PricingClient struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	cache   port.ResponseCache
	retry   RetryPolicy
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewPricingClient creates a new PricingClient.
func NewPricingClient(opts PricingClientOptions, cache port.ResponseCache, logger *zap.Logger) *PricingClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("PricingClient")

	c := &PricingClient{
		client:  &fasthttp.Client{Name: "supervault-dashboard"},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		cache:   cache,
		logger:  logger,
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	c.retry = RetryPolicy{
		MaxRetries: opts.MaxRetries,
		Delay:      opts.RetryDelay,
		Clock:      opts.Clock,
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *PricingClient) BaseURL() string {
	return c.baseURL
}

func blockKey(block *uint64) string {
	if block == nil || *block == 0 {
		return latestBlockKey
	}
	return strconv.FormatUint(*block, 10)
}

func vaultsCacheKey(chainID string) string {
	return fmt.Sprintf("vaults_%s", chainID)
}

func ppsCacheKey(chainID, vault string, block *uint64) string {
	return fmt.Sprintf("pps_%s_%s_%s", chainID, vault, blockKey(block))
}

func vaultCacheKey(chainID, vault string, block *uint64) string {
	return fmt.Sprintf("vault_%s_%s_%s", chainID, vault, blockKey(block))
}

// GetAllVaults lists the SuperVaults deployed on a chain.
func (c *PricingClient) GetAllVaults(ctx context.Context, chainID string) (*entity.VaultList, error) {
	return fetch[entity.VaultList](ctx, c, endpointVaults, "/api/v1/vaults",
		map[string]string{"chain_id": chainID}, vaultsCacheKey(chainID))
}

// GetPPS returns the price-per-share data of a vault.
func (c *PricingClient) GetPPS(ctx context.Context, chainID, vault string, block *uint64) (*entity.PPSResponse, error) {
	args := map[string]string{"chain_id": chainID, "vault": vault}
	if block != nil && *block > 0 {
		args["block_number"] = strconv.FormatUint(*block, 10)
	}
	return fetch[entity.PPSResponse](ctx, c, endpointPPS, "/api/v1/pps", args, ppsCacheKey(chainID, vault, block))
}

// GetVault returns the comprehensive details of a vault.
func (c *PricingClient) GetVault(ctx context.Context, chainID, vault string, block *uint64) (*entity.VaultDetails, error) {
	args := map[string]string{"chain_id": chainID}
	if block != nil && *block > 0 {
		args["block_number"] = strconv.FormatUint(*block, 10)
	}
	return fetch[entity.VaultDetails](ctx, c, endpointVault, "/api/v1/vault/"+vault, args, vaultCacheKey(chainID, vault, block))
}

// HealthCheck performs a single uncached request against /health.
func (c *PricingClient) HealthCheck(ctx context.Context) bool {
	status, _, err := c.do(ctx, endpointHealth, "/health", nil)
	if err != nil {
		c.logger.Warn("Pricing API health check failed", zap.Error(err))
		return false
	}
	return status >= 200 && status < 300
}

// ClearCache drops every cached response.
func (c *PricingClient) ClearCache(ctx context.Context) {
	c.cache.Flush(ctx)
	c.logger.Info("Cleared response cache")
}

// ClearVaultCache drops the latest-block vault and PPS responses of one vault.
func (c *PricingClient) ClearVaultCache(ctx context.Context, chainID, vault string) {
	c.cache.Delete(ctx, vaultCacheKey(chainID, vault, nil), ppsCacheKey(chainID, vault, nil))
	c.logger.Debug("Cleared vault cache", zap.String("chainID", chainID), zap.String("vault", vault))
}

// fetch serves key from the cache, or requests path with retries and caches the
// raw body once it decodes into T.
func fetch[T any](ctx context.Context, c *PricingClient, endpoint, path string, args map[string]string, key string) (*T, error) {
	if body, ok := c.cache.Get(ctx, key); ok {
		var cached T
		if err := json.Unmarshal(body, &cached); err == nil {
			return &cached, nil
		}
		c.logger.Warn("Dropping undecodable cache entry", zap.String("key", key))
		c.cache.Delete(ctx, key)
	}

	var (
		result T
		raw    []byte
	)
	retry := c.retry
	retry.OnRetry = func(attempt int, err error) {
		metrics.UpstreamRetriesTotal.WithLabelValues(endpoint).Inc()
		c.logger.Warn("Pricing API request failed, retrying",
			zap.String("endpoint", endpoint),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", retry.Backoff(attempt)),
			zap.Error(err))
	}

	err := retry.Do(ctx, func(ctx context.Context, attempt int) error {
		status, body, err := c.do(ctx, endpoint, path, args)
		if err != nil {
			return err
		}
		if status < 200 || status >= 300 {
			return &StatusError{Code: status, URL: c.baseURL + path, Body: string(body)}
		}
		var decoded T
		if err := json.Unmarshal(body, &decoded); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
		}
		result = decoded
		raw = body
		return nil
	})
	if err != nil {
		c.logger.Error("Pricing API request failed",
			zap.String("endpoint", endpoint),
			zap.String("key", key),
			zap.Error(err))
		return nil, err
	}

	c.cache.Set(ctx, key, raw)
	return &result, nil
}

// do executes one GET and returns the status code with a copy of the body.
func (c *PricingClient) do(ctx context.Context, endpoint, path string, args map[string]string) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	for k, v := range args {
		req.URI().QueryArgs().Add(k, v)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	requestURL := req.URI().String()
	c.logger.Debug("Requesting pricing API", zap.String("url", requestURL))

	start := time.Now()
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	err := c.client.DoDeadline(req, resp, deadline)
	metrics.UpstreamLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return 0, nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
	}

	status := resp.StatusCode()
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()

	// resp is released on return; keep our own copy of the body.
	body := append([]byte(nil), resp.Body()...)
	return status, body, nil
}
