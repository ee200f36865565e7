package entity

// DefaultAssetDecimals is used when the API omits the underlying asset decimals.
const DefaultAssetDecimals int32 = 18

// VaultList is the /api/v1/vaults response. The slices are index-aligned.
type VaultList struct {
	Vaults     []string `json:"vaults"`
	Names      []string `json:"names"`
	Symbols    []string `json:"symbols"`
	Strategies []string `json:"strategies,omitempty"`
	Escrows    []string `json:"escrows,omitempty"`
}

// AssetInfo describes the vault's underlying asset.
type AssetInfo struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals *int32 `json:"decimals,omitempty"`
}

// DecimalsOrDefault returns the asset decimals, falling back to DefaultAssetDecimals.
func (a AssetInfo) DecimalsOrDefault() int32 {
	if a.Decimals == nil {
		return DefaultAssetDecimals
	}
	return *a.Decimals
}

// VaultInfo holds the static and balance data of a SuperVault.
type VaultInfo struct {
	Address        string    `json:"address"`
	Name           string    `json:"name"`
	Symbol         string    `json:"symbol"`
	Strategy       string    `json:"strategy"`
	Escrow         string    `json:"escrow"`
	EscrowedAssets Amount    `json:"escrowed_assets"`
	TotalAssets    Amount    `json:"total_assets"`
	TotalSupply    Amount    `json:"total_supply"`
	Asset          AssetInfo `json:"asset"`
}

// PPSInfo is the price-per-share state reported by the strategy.
type PPSInfo struct {
	CurrentPPS          Amount `json:"current_pps"`
	CalculatedPPS       Amount `json:"calculated_pps"`
	LastUpdateTimestamp *int64 `json:"last_update_timestamp,omitempty"`
	MinUpdateInterval   int64  `json:"min_update_interval"`
	MaxStaleness        int64  `json:"max_staleness"`
}

// LastUpdateOr returns the last PPS update time, or fallback when the API
// omitted it. An explicit zero is returned as zero.
func (p PPSInfo) LastUpdateOr(fallback int64) int64 {
	if p.LastUpdateTimestamp == nil {
		return fallback
	}
	return *p.LastUpdateTimestamp
}

// StatusInfo carries the vault's operational flags.
type StatusInfo struct {
	IsPaused   bool `json:"is_paused"`
	IsPPSStale bool `json:"is_pps_stale"`
}

// ConfigInfo is the strategy configuration. DeviationThreshold is 1e18-scaled.
type ConfigInfo struct {
	DeviationThreshold Amount `json:"deviation_threshold"`
	PPSExpiration      int64  `json:"pps_expiration"`
}

// FeesInfo describes fee configuration and accrued profit.
type FeesInfo struct {
	PerformanceFeeBps int64  `json:"performance_fee_bps"`
	ManagementFeeBps  int64  `json:"management_fee_bps"`
	Recipient         string `json:"recipient"`
	VaultHWMPPS       Amount `json:"vault_hwm_pps"`
	UnrealizedProfit  Amount `json:"unrealized_profit"`
}

// ManagersInfo lists the vault managers.
type ManagersInfo struct {
	Main      string   `json:"main"`
	Secondary []string `json:"secondary"`
}

// UpkeepInfo holds the upkeep balance in wei (18 decimals).
type UpkeepInfo struct {
	Balance Amount `json:"balance"`
}

// TVLSource is one allocation target of the vault.
type TVLSource struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Oracle     string  `json:"oracle"`
	Assets     Amount  `json:"assets"`
	Percentage float64 `json:"percentage"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// TVLInfo is the allocation breakdown.
type TVLInfo struct {
	Total   Amount      `json:"total"`
	Sources []TVLSource `json:"sources"`
}

// VaultDetails is the /api/v1/vault/{address} response.
type VaultDetails struct {
	Vault       VaultInfo    `json:"vault"`
	PPS         PPSInfo      `json:"pps"`
	Status      StatusInfo   `json:"status"`
	Config      ConfigInfo   `json:"config"`
	Fees        FeesInfo     `json:"fees"`
	Managers    ManagersInfo `json:"managers"`
	Upkeep      UpkeepInfo   `json:"upkeep"`
	TVL         TVLInfo      `json:"tvl"`
	Timestamp   int64        `json:"timestamp"`
	BlockNumber uint64       `json:"block_number"`
}

// PPSResponse is the /api/v1/pps response.
type PPSResponse struct {
	ChainID string `json:"chain_id"`
	Vault   string `json:"vault"`
	PPSInfo
	Timestamp   int64  `json:"timestamp"`
	BlockNumber uint64 `json:"block_number"`
}
