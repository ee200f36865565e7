package entity

// ChainDefinition describes a network the dashboard can display vaults for.
type ChainDefinition struct {
	ChainID          string `json:"chainId" yaml:"chainId"`
	Name             string `json:"name" yaml:"name"`
	ShortName        string `json:"shortName" yaml:"shortName"`
	BlockExplorerURL string `json:"blockExplorerUrl" yaml:"blockExplorerUrl"`
	RPCURL           string `json:"-" yaml:"rpcURL"`
}

// Label is the selector text, e.g. "Ethereum (ETH)".
func (c ChainDefinition) Label() string {
	return c.Name + " (" + c.ShortName + ")"
}

// WatchedVault is a vault pinned for cache warm-up.
type WatchedVault struct {
	ChainID string
	Address string
}

// WarmupReport summarises a cache warm-up run.
type WarmupReport struct {
	Chains int `json:"chains"`
	Vaults int `json:"vaults"`
	Failed int `json:"failed"`
}
