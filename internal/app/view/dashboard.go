package view

import (
	"net/url"
	"strconv"
	"time"

	"supervault_dashboard/internal/domain/entity"
)

// Tab identifiers.
const (
	TabHome        = "home"
	TabOperations  = "operations"
	TabSimulations = "simulations"
	TabHistory     = "history"
)

var tabOrder = []Tab{
	{ID: TabHome, Label: "Home"},
	{ID: TabOperations, Label: "Operations"},
	{ID: TabSimulations, Label: "Simulations"},
	{ID: TabHistory, Label: "History"},
}

var placeholders = map[string]Placeholder{
	TabOperations:  {Title: "Operations", Message: "Vault operations will be available here."},
	TabSimulations: {Title: "Simulations", Message: "Simulation tools will be available here."},
	TabHistory:     {Title: "History", Message: "Historical data and charts will be available here."},
}

// Tab is one navigation tab.
type Tab struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Placeholder is the content of a tab that has no data yet.
type Placeholder struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NormalizeTab maps unknown tab names onto the home tab.
func NormalizeTab(tab string) string {
	for _, t := range tabOrder {
		if t.ID == tab {
			return tab
		}
	}
	return TabHome
}

// Tabs returns the navigation with active marked.
func Tabs(active string) []Tab {
	active = NormalizeTab(active)
	out := make([]Tab, len(tabOrder))
	for i, t := range tabOrder {
		t.Active = t.ID == active
		out[i] = t
	}
	return out
}

// PlaceholderFor returns the placeholder of a non-home tab.
func PlaceholderFor(tab string) (Placeholder, bool) {
	p, ok := placeholders[tab]
	return p, ok
}

// Option is a selector entry.
type Option struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// ChainOptions lists the chain selector entries, labelled "Name (SHORT)".
func ChainOptions(chains []entity.ChainDefinition, selected string) []Option {
	out := make([]Option, 0, len(chains))
	for _, c := range chains {
		out = append(out, Option{Label: c.Label(), Value: c.ChainID, Selected: c.ChainID == selected})
	}
	return out
}

// VaultOptions lists the vault selector entries labelled "name (symbol)".
// Missing names and symbols fall back to "Unknown" and "???".
func VaultOptions(list *entity.VaultList) []Option {
	if list == nil {
		return nil
	}
	out := make([]Option, 0, len(list.Vaults))
	for i, addr := range list.Vaults {
		name, symbol := "Unknown", "???"
		if i < len(list.Names) {
			name = list.Names[i]
		}
		if i < len(list.Symbols) {
			symbol = list.Symbols[i]
		}
		out = append(out, Option{Label: name + " (" + symbol + ")", Value: addr})
	}
	return out
}

// SelectOption marks value as selected, or the first option when value is
// absent. It returns the selected value, empty when there are no options.
func SelectOption(options []Option, value string) string {
	if len(options) == 0 {
		return ""
	}
	idx := 0
	for i, o := range options {
		if o.Value == value {
			idx = i
			break
		}
	}
	for i := range options {
		options[i].Selected = i == idx
	}
	return options[idx].Value
}

// Cards is everything shown on the home tab for one vault.
type Cards struct {
	Details  VaultDetailsCard `json:"details"`
	PPS      PPSCard          `json:"pps"`
	TVL      TVLCard          `json:"tvl"`
	Fees     FeesCard         `json:"fees"`
	Upkeep   UpkeepCard       `json:"upkeep"`
	Managers ManagersCard     `json:"managers"`
	Config   ConfigCard       `json:"config"`
}

// BuildCards maps a vault details response onto the home tab cards.
func BuildCards(d *entity.VaultDetails, chainID string, links Linker, now time.Time) Cards {
	decimals := d.Vault.Asset.DecimalsOrDefault()
	return Cards{
		Details:  NewVaultDetailsCard(d, chainID, links),
		PPS:      NewPPSCard(d.PPS, d.Status, d.Config.PPSExpiration, now),
		TVL:      NewTVLCard(d.TVL, decimals, chainID, links),
		Fees:     NewFeesCard(d.Fees, decimals, chainID, links),
		Upkeep:   NewUpkeepCard(d.Upkeep),
		Managers: NewManagersCard(d.Managers, chainID, links),
		Config:   NewConfigCard(d.Config),
	}
}

// Dashboard is the full page model.
type Dashboard struct {
	ChainID     string       `json:"chainId"`
	Vault       string       `json:"vault"`
	BlockNumber *uint64      `json:"blockNumber,omitempty"`
	LatestBlock uint64       `json:"latestBlock,omitempty"`
	Tab         string       `json:"tab"`
	Chains      []Option     `json:"chains"`
	Vaults      []Option     `json:"vaults"`
	Tabs        []Tab        `json:"tabs"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
	Cards       *Cards       `json:"cards,omitempty"`
	Error       *ErrorCard   `json:"error,omitempty"`
	GeneratedAt string       `json:"generatedAt"`

	// AutoRefreshSeconds is zero when the page should not reload itself.
	AutoRefreshSeconds int `json:"autoRefreshSeconds,omitempty"`
}

// BlockParam is the selected block as a query value, empty for latest.
func (d *Dashboard) BlockParam() string {
	if d.BlockNumber == nil {
		return ""
	}
	return strconv.FormatUint(*d.BlockNumber, 10)
}

// AutoRefreshURL is the page the meta refresh reloads: the current selection
// without the refresh flag, so a reload is served from cache.
func (d *Dashboard) AutoRefreshURL() string {
	q := url.Values{}
	q.Set("chain", d.ChainID)
	q.Set("vault", d.Vault)
	q.Set("tab", d.Tab)
	if block := d.BlockParam(); block != "" {
		q.Set("block", block)
	}
	return "/?" + q.Encode()
}
