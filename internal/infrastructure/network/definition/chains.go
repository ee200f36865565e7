package networkdefinition

import (
	"fmt"
	"strings"

	"supervault_dashboard/internal/app/port"
	"supervault_dashboard/internal/domain/entity"
)

// DefaultChainID is always active and is the explorer fallback.
const DefaultChainID = "1"

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDefinition{
		ChainID:          "1",
		Name:             "Ethereum",
		ShortName:        "ETH",
		BlockExplorerURL: "https://etherscan.io",
	}
	Base = entity.ChainDefinition{
		ChainID:          "8453",
		Name:             "Base",
		ShortName:        "BASE",
		BlockExplorerURL: "https://basescan.org",
	}
	Arbitrum = entity.ChainDefinition{
		ChainID:          "42161",
		Name:             "Arbitrum One",
		ShortName:        "ARB",
		BlockExplorerURL: "https://arbiscan.io",
	}
	Optimism = entity.ChainDefinition{
		ChainID:          "10",
		Name:             "OP Mainnet",
		ShortName:        "OP",
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
)

var allKnownDefinitions = map[string]entity.ChainDefinition{
	Ethereum.ChainID: Ethereum,
	Base.ChainID:     Base,
	Arbitrum.ChainID: Arbitrum,
	Optimism.ChainID: Optimism,
}

// ChainRegistry holds the chains shown in the dashboard.
type ChainRegistry struct {
	logger port.Logger
	active []entity.ChainDefinition
	byID   map[string]entity.ChainDefinition
}

// NewChainRegistry activates Ethereum plus every configured chain. Configured
// entries for known chains only need to override the fields they set.
func NewChainRegistry(log port.Logger, configured []entity.ChainDefinition) *ChainRegistry {
	r := &ChainRegistry{
		logger: log,
		byID:   make(map[string]entity.ChainDefinition),
	}
	r.add(Ethereum)

	for _, c := range configured {
		def, known := allKnownDefinitions[c.ChainID]
		if existing, ok := r.byID[c.ChainID]; ok {
			def, known = existing, true
		}
		if !known {
			def = entity.ChainDefinition{ChainID: c.ChainID}
		}
		def = merge(def, c)
		if def.Name == "" {
			def.Name = "Chain " + def.ChainID
		}
		if def.ShortName == "" {
			def.ShortName = def.ChainID
		}
		if def.BlockExplorerURL == "" {
			r.logger.Warn(fmt.Sprintf("Chain %s has no block explorer URL, links will use %s", def.ChainID, Ethereum.BlockExplorerURL))
		}
		r.add(def)
	}

	r.logger.Info(fmt.Sprintf("ChainRegistry initialized. Active chains: %d", len(r.active)))
	for _, def := range r.active {
		r.logger.Debug(fmt.Sprintf("  - Active chain: %s (ChainID: %s, RPC: %t)", def.Name, def.ChainID, def.RPCURL != ""))
	}
	return r
}

func merge(base, override entity.ChainDefinition) entity.ChainDefinition {
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.ShortName != "" {
		base.ShortName = override.ShortName
	}
	if override.BlockExplorerURL != "" {
		base.BlockExplorerURL = override.BlockExplorerURL
	}
	if override.RPCURL != "" {
		base.RPCURL = override.RPCURL
	}
	return base
}

func (r *ChainRegistry) add(def entity.ChainDefinition) {
	def.BlockExplorerURL = strings.TrimRight(def.BlockExplorerURL, "/")
	if _, exists := r.byID[def.ChainID]; exists {
		for i := range r.active {
			if r.active[i].ChainID == def.ChainID {
				r.active[i] = def
			}
		}
	} else {
		r.active = append(r.active, def)
	}
	r.byID[def.ChainID] = def
}

// All returns a copy of the active chains in configuration order.
func (r *ChainRegistry) All() []entity.ChainDefinition {
	out := make([]entity.ChainDefinition, len(r.active))
	copy(out, r.active)
	return out
}

// Get returns an active chain by ID.
func (r *ChainRegistry) Get(chainID string) (entity.ChainDefinition, bool) {
	def, ok := r.byID[chainID]
	return def, ok
}

// ExplorerAddressURL returns {explorer}/address/{address}. Chains without an
// explorer use Etherscan.
func (r *ChainRegistry) ExplorerAddressURL(chainID, address string) string {
	explorer := Ethereum.BlockExplorerURL
	if def, ok := r.byID[chainID]; ok && def.BlockExplorerURL != "" {
		explorer = def.BlockExplorerURL
	} else if def, ok := r.byID[DefaultChainID]; ok && def.BlockExplorerURL != "" {
		explorer = def.BlockExplorerURL
	}
	return fmt.Sprintf("%s/address/%s", explorer, address)
}
