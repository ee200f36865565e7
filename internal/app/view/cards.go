// Package view maps pricing API responses onto the cards rendered by the
// dashboard page, the JSON API and the terminal client.
package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"supervault_dashboard/internal/domain/entity"
	"supervault_dashboard/internal/domain/staleness"
	"supervault_dashboard/internal/pkg/utils"
)

const (
	notAvailable = "N/A"
	timeLayout   = "2006-01-02 15:04:05 UTC"

	pausedColor = "#FFC107"
	activeColor = "#28A745"

	deltaAlertPercent = 1.0
	idlePrefix        = "Idle "
)

var (
	upkeepLowWei    = decimal.New(1, 17)
	upkeepMediumWei = decimal.New(1, 18)
)

// Linker builds block explorer links. port.ChainRegistry satisfies it.
type Linker interface {
	ExplorerAddressURL(chainID, address string) string
}

// AddressLink is an address rendered as an explorer link.
type AddressLink struct {
	Address string `json:"address"`
	Display string `json:"display"`
	URL     string `json:"url,omitempty"`
}

func newAddressLink(links Linker, chainID, address string, display func(string) string) AddressLink {
	if address == "" || address == notAvailable {
		return AddressLink{Address: notAvailable, Display: notAvailable}
	}
	return AddressLink{
		Address: address,
		Display: display(address),
		URL:     links.ExplorerAddressURL(chainID, address),
	}
}

func fullAddress(address string) string { return address }

func formatUnix(ts int64) string {
	if ts == 0 {
		return notAvailable
	}
	return time.Unix(ts, 0).UTC().Format(timeLayout)
}

// VaultDetailsCard summarises the vault's identity and balances.
type VaultDetailsCard struct {
	Name           string      `json:"name"`
	Symbol         string      `json:"symbol"`
	Vault          AddressLink `json:"vault"`
	Strategy       AddressLink `json:"strategy"`
	Escrow         AddressLink `json:"escrow"`
	MainManager    AddressLink `json:"mainManager"`
	AssetSymbol    string      `json:"assetSymbol"`
	Asset          AddressLink `json:"asset"`
	TotalAssets    string      `json:"totalAssets"`
	TotalSupply    string      `json:"totalSupply"`
	EscrowedAssets string      `json:"escrowedAssets"`
	Fetched        string      `json:"fetched"`
	BlockNumber    uint64      `json:"blockNumber,omitempty"`
	Paused         bool        `json:"paused"`
	StatusText     string      `json:"statusText"`
	StatusColor    string      `json:"statusColor"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func tokenAmount(wei entity.Amount, decimals int32) string {
	return utils.FormatAmount(utils.WeiToUnits(wei, decimals), 6)
}

// NewVaultDetailsCard builds the vault details card.
func NewVaultDetailsCard(d *entity.VaultDetails, chainID string, links Linker) VaultDetailsCard {
	v := d.Vault
	decimals := v.Asset.DecimalsOrDefault()

	card := VaultDetailsCard{
		Name:           orDefault(v.Name, "Unknown Vault"),
		Symbol:         orDefault(v.Symbol, notAvailable),
		Vault:          newAddressLink(links, chainID, v.Address, fullAddress),
		Strategy:       newAddressLink(links, chainID, v.Strategy, fullAddress),
		Escrow:         newAddressLink(links, chainID, v.Escrow, fullAddress),
		MainManager:    newAddressLink(links, chainID, d.Managers.Main, fullAddress),
		AssetSymbol:    orDefault(v.Asset.Symbol, notAvailable),
		Asset:          newAddressLink(links, chainID, v.Asset.Address, fullAddress),
		TotalAssets:    tokenAmount(v.TotalAssets, decimals),
		TotalSupply:    tokenAmount(v.TotalSupply, decimals),
		EscrowedAssets: tokenAmount(v.EscrowedAssets, decimals),
		Fetched:        formatUnix(d.Timestamp),
		BlockNumber:    d.BlockNumber,
		Paused:         d.Status.IsPaused,
		StatusText:     "Active",
		StatusColor:    activeColor,
	}
	if card.Paused {
		card.StatusText = "Paused"
		card.StatusColor = pausedColor
	}
	return card
}

// ChartPoint is one marker of the PPS chart.
type ChartPoint struct {
	Series string  `json:"series"`
	Time   string  `json:"time"`
	Value  float64 `json:"value"`
}

// PPSCard shows the current and calculated price-per-share and its health.
type PPSCard struct {
	CurrentPPS        string           `json:"currentPps"`
	CalculatedPPS     string           `json:"calculatedPps"`
	Delta             float64          `json:"delta"`
	DeltaText         string           `json:"deltaText"`
	DeltaAlert        bool             `json:"deltaAlert"`
	DeltaClass        string           `json:"deltaClass"`
	MinUpdateInterval string           `json:"minUpdateInterval"`
	MaxStaleness      string           `json:"maxStaleness"`
	Health            staleness.Health `json:"health"`
	LastUpdated       string           `json:"lastUpdated"`
	Expires           string           `json:"expires"`
	Chart             []ChartPoint     `json:"chart"`
}

// PPSDelta is the relative gap between calculated and current PPS in percent.
// It is zero when current is not positive.
func PPSDelta(current, calculated float64) float64 {
	if current <= 0 {
		return 0
	}
	return (calculated - current) / current * 100
}

// NewPPSCard builds the PPS card. ppsExpiration comes from the vault config and
// may be zero when unknown.
func NewPPSCard(pps entity.PPSInfo, status entity.StatusInfo, ppsExpiration int64, now time.Time) PPSCard {
	current := pps.CurrentPPS.Float64()
	calculated := pps.CalculatedPPS.Float64()

	lastUpdate := pps.LastUpdateOr(now.Unix())

	delta := PPSDelta(current, calculated)
	card := PPSCard{
		CurrentPPS:        fmt.Sprintf("%.6f", current),
		CalculatedPPS:     fmt.Sprintf("%.6f", calculated),
		Delta:             delta,
		DeltaText:         utils.FormatPercentage(delta, 2),
		DeltaAlert:        delta > deltaAlertPercent || delta < -deltaAlertPercent,
		DeltaClass:        "text-muted",
		MinUpdateInterval: fmt.Sprintf("%ds", pps.MinUpdateInterval),
		MaxStaleness:      fmt.Sprintf("%ds", pps.MaxStaleness),
		Health: staleness.Classify(staleness.Input{
			LastUpdate:    lastUpdate,
			MaxStaleness:  pps.MaxStaleness,
			UpstreamStale: status.IsPPSStale,
		}, now),
		LastUpdated: formatUnix(lastUpdate),
		Expires:     notAvailable,
	}
	if card.DeltaAlert {
		card.DeltaClass = "text-danger"
	}
	if ppsExpiration != 0 && lastUpdate != 0 {
		card.Expires = formatUnix(lastUpdate + ppsExpiration)
	}

	sampled := now.UTC().Format(timeLayout)
	card.Chart = []ChartPoint{
		{Series: "Current PPS", Time: sampled, Value: current},
		{Series: "Calculated PPS", Time: sampled, Value: calculated},
	}
	return card
}

// Badge is a coloured status label.
type Badge struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// AllocationRow is one TVL source.
type AllocationRow struct {
	Name       string      `json:"name"`
	Address    AddressLink `json:"address"`
	Oracle     AddressLink `json:"oracle"`
	Assets     string      `json:"assets"`
	Percentage string      `json:"percentage"`
	Idle       bool        `json:"idle"`
	Active     bool        `json:"active"`
	Badge      Badge       `json:"badge"`
}

// PieSlice is one segment of the allocation chart.
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TVLCard is the allocation breakdown.
type TVLCard struct {
	Empty         bool            `json:"empty"`
	Message       string          `json:"message,omitempty"`
	Total         string          `json:"total,omitempty"`
	SourceCount   int             `json:"sourceCount"`
	ActiveCount   int             `json:"activeCount"`
	IdleCount     int             `json:"idleCount"`
	InactiveCount int             `json:"inactiveCount"`
	Rows          []AllocationRow `json:"rows,omitempty"`
	Pie           []PieSlice      `json:"pie,omitempty"`
}

// NewTVLCard builds the allocation card with sources ordered by assets, largest first.
func NewTVLCard(tvl entity.TVLInfo, decimals int32, chainID string, links Linker) TVLCard {
	if len(tvl.Sources) == 0 {
		return TVLCard{Empty: true, Message: "No allocation data available for this vault."}
	}

	sources := make([]entity.TVLSource, len(tvl.Sources))
	copy(sources, tvl.Sources)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Assets.Decimal().GreaterThan(sources[j].Assets.Decimal())
	})

	card := TVLCard{
		Total:       utils.WeiToUnits(tvl.Total, decimals).StringFixed(4),
		SourceCount: len(sources),
		Rows:        make([]AllocationRow, 0, len(sources)),
		Pie:         make([]PieSlice, 0, len(sources)),
	}
	for i, src := range sources {
		name := src.Name
		if name == "" {
			name = fmt.Sprintf("Source %d", i)
		}
		idle := strings.HasPrefix(src.Name, idlePrefix)
		active := (src.IsActive == nil || *src.IsActive) && !idle

		row := AllocationRow{
			Name:       name,
			Address:    newAddressLink(links, chainID, src.Address, utils.ShortAddress),
			Oracle:     newAddressLink(links, chainID, src.Oracle, utils.ShortAddress),
			Assets:     utils.WeiToUnits(src.Assets, decimals).StringFixed(4),
			Percentage: utils.FormatPercentage(src.Percentage, 2),
			Idle:       idle,
			Active:     active,
		}
		switch {
		case idle:
			row.Badge = Badge{Text: "Idle", Color: "secondary"}
			card.IdleCount++
		case active:
			row.Badge = Badge{Text: "Active", Color: "success"}
			card.ActiveCount++
		default:
			row.Badge = Badge{Text: "Inactive", Color: "danger"}
			card.InactiveCount++
		}
		card.Rows = append(card.Rows, row)
		card.Pie = append(card.Pie, PieSlice{Label: name, Value: src.Percentage})
	}
	return card
}

// FeesCard shows fee configuration and accrued profit.
type FeesCard struct {
	Performance      string      `json:"performance"`
	Management       string      `json:"management"`
	HWMPPS           string      `json:"hwmPps"`
	UnrealizedProfit string      `json:"unrealizedProfit"`
	Recipient        AddressLink `json:"recipient"`
}

// NewFeesCard builds the fees card. Fees are given in basis points.
func NewFeesCard(fees entity.FeesInfo, decimals int32, chainID string, links Linker) FeesCard {
	return FeesCard{
		Performance:      fmt.Sprintf("%.1f%%", float64(fees.PerformanceFeeBps)/100),
		Management:       fmt.Sprintf("%.2f%%", float64(fees.ManagementFeeBps)/100),
		HWMPPS:           fees.VaultHWMPPS.Decimal().StringFixed(6),
		UnrealizedProfit: utils.FormatUnits(fees.UnrealizedProfit, decimals, 4),
		Recipient:        newAddressLink(links, chainID, fees.Recipient, utils.ShortAddress),
	}
}

// UpkeepCard shows the upkeep balance with a traffic-light status.
type UpkeepCard struct {
	Balance string `json:"balance"`
	Status  string `json:"status"`
	Class   string `json:"class"`
}

// NewUpkeepCard builds the upkeep card. The balance is always 18 decimals.
func NewUpkeepCard(upkeep entity.UpkeepInfo) UpkeepCard {
	wei := upkeep.Balance.Decimal()
	card := UpkeepCard{Balance: utils.FormatUnits(upkeep.Balance, 18, 4) + " UP"}
	switch {
	case wei.LessThan(upkeepLowWei):
		card.Status, card.Class = "Low", "text-danger"
	case wei.LessThan(upkeepMediumWei):
		card.Status, card.Class = "Medium", "text-warning"
	default:
		card.Status, card.Class = "Good", "text-success"
	}
	return card
}

// ManagersCard lists the vault managers.
type ManagersCard struct {
	Main      AddressLink   `json:"main"`
	Secondary []AddressLink `json:"secondary"`
}

// NewManagersCard builds the managers card.
func NewManagersCard(m entity.ManagersInfo, chainID string, links Linker) ManagersCard {
	card := ManagersCard{
		Main:      newAddressLink(links, chainID, m.Main, utils.ShortAddress),
		Secondary: make([]AddressLink, 0, len(m.Secondary)),
	}
	for _, addr := range m.Secondary {
		card.Secondary = append(card.Secondary, newAddressLink(links, chainID, addr, utils.ShortAddress))
	}
	return card
}

// ConfigCard shows the strategy configuration.
type ConfigCard struct {
	DeviationThreshold string `json:"deviationThreshold"`
	PPSExpiration      string `json:"ppsExpiration"`
}

// NewConfigCard builds the config card. The deviation threshold is 1e18-scaled.
func NewConfigCard(cfg entity.ConfigInfo) ConfigCard {
	return ConfigCard{
		DeviationThreshold: cfg.DeviationThreshold.Decimal().Shift(-16).StringFixed(1) + "%",
		PPSExpiration:      fmt.Sprintf("%.1fh", float64(cfg.PPSExpiration)/3600),
	}
}

// ErrorCard replaces the dashboard content when a fetch fails.
type ErrorCard struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Hint    string `json:"hint"`
}

// NewErrorCard wraps err for display.
func NewErrorCard(err error) ErrorCard {
	return ErrorCard{
		Title:   "Error Fetching Data",
		Message: fmt.Sprintf("An error occurred: %v", err),
		Hint:    "Please try again later or select a different vault.",
	}
}
