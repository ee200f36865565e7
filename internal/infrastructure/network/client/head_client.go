package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	gocache "github.com/patrickmn/go-cache"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/domain/entity"
)

const defaultConnectionTimeout = 10 * time.Second

// HeadClient reads chain head block numbers over JSON-RPC. Clients are dialled
// lazily per chain and block numbers are cached briefly.
type HeadClient struct {
	chains            port.ChainRegistry
	logger            port.Logger
	connectionTimeout time.Duration
	rpcCallTimeout    time.Duration

	mu      sync.Mutex
	clients map[string]*ethclient.Client
	heads   *gocache.Cache
}

// NewHeadClient creates a HeadClient. headTTL controls how long a block number is reused.
func NewHeadClient(chains port.ChainRegistry, log port.Logger, headTTL, rpcCallTimeout time.Duration) *HeadClient {
	return &HeadClient{
		chains:            chains,
		logger:            log,
		connectionTimeout: defaultConnectionTimeout,
		rpcCallTimeout:    rpcCallTimeout,
		clients:           make(map[string]*ethclient.Client),
		heads:             gocache.New(headTTL, 10*headTTL),
	}
}

// LatestBlock returns the head block of chainID. ok is false when the chain
// has no RPC endpoint.
func (h *HeadClient) LatestBlock(ctx context.Context, chainID string) (uint64, bool, error) {
	def, found := h.chains.Get(chainID)
	if !found || def.RPCURL == "" {
		return 0, false, nil
	}

	if cached, hit := h.heads.Get(chainID); hit {
		return cached.(uint64), true, nil
	}

	ec, err := h.client(ctx, def)
	if err != nil {
		return 0, true, err
	}

	if h.rpcCallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.rpcCallTimeout)
		defer cancel()
	}
	block, err := ec.BlockNumber(ctx)
	if err != nil {
		h.logger.Warn("Failed to read chain head", "chainID", chainID, "error", err)
		return 0, true, fmt.Errorf("eth_blockNumber on chain %s: %w", chainID, err)
	}

	h.heads.SetDefault(chainID, block)
	return block, true, nil
}

func (h *HeadClient) client(ctx context.Context, def entity.ChainDefinition) (*ethclient.Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ec, exists := h.clients[def.ChainID]; exists {
		return ec, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, h.connectionTimeout)
	defer cancel()

	h.logger.Info("Creating new EVM client", "chain", def.Name, "chainID", def.ChainID)
	ec, err := ethclient.DialContext(dialCtx, def.RPCURL)
	if err != nil {
		h.logger.Error("Failed to create EVM client", "chain", def.Name, "error", err)
		return nil, fmt.Errorf("failed to connect to RPC for chain %s: %w", def.ChainID, err)
	}
	h.clients[def.ChainID] = ec
	return ec, nil
}

// Close closes every dialled client.
func (h *HeadClient) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ec := range h.clients {
		ec.Close()
		delete(h.clients, id)
	}
}
