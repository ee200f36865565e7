package view

import (
	"errors"
	"strings"
	"testing"
	"time"

	"supervault_dashboard/internal/domain/entity"
	"supervault_dashboard/internal/domain/staleness"
)

type testLinker struct{}

func (testLinker) ExplorerAddressURL(chainID, address string) string {
	return "https://explorer/" + chainID + "/address/" + address
}

const longAddr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func boolPtr(b bool) *bool    { return &b }
func int32Ptr(v int32) *int32 { return &v }
func unixTime(v int64) *int64 { return &v }

func TestNewVaultDetailsCardDefaults(t *testing.T) {
	card := NewVaultDetailsCard(&entity.VaultDetails{}, "1", testLinker{})

	if card.Name != "Unknown Vault" || card.Symbol != "N/A" {
		t.Errorf("name/symbol = %q/%q", card.Name, card.Symbol)
	}
	if card.Vault.Display != "N/A" || card.Vault.URL != "" {
		t.Errorf("vault link = %+v", card.Vault)
	}
	if card.StatusText != "Active" || card.StatusColor != "#28A745" {
		t.Errorf("status = %s %s", card.StatusText, card.StatusColor)
	}
	if card.Fetched != "N/A" {
		t.Errorf("Fetched = %q", card.Fetched)
	}
}

func TestNewVaultDetailsCard(t *testing.T) {
	d := &entity.VaultDetails{
		Vault: entity.VaultInfo{
			Address:     longAddr,
			Name:        "USDC SuperVault",
			Symbol:      "svUSDC",
			TotalAssets: "1234567890000",
			TotalSupply: "1000000",
			Asset:       entity.AssetInfo{Address: longAddr, Symbol: "USDC", Decimals: int32Ptr(6)},
		},
		Status:      entity.StatusInfo{IsPaused: true},
		Timestamp:   1700000000,
		BlockNumber: 19000000,
	}

	card := NewVaultDetailsCard(d, "8453", testLinker{})
	if card.Vault.URL != "https://explorer/8453/address/"+longAddr || card.Vault.Display != longAddr {
		t.Errorf("vault link = %+v", card.Vault)
	}
	if card.TotalAssets != "1,234,567.890000" {
		t.Errorf("TotalAssets = %q", card.TotalAssets)
	}
	if card.TotalSupply != "1.000000" {
		t.Errorf("TotalSupply = %q", card.TotalSupply)
	}
	if card.StatusText != "Paused" || card.StatusColor != "#FFC107" {
		t.Errorf("status = %s %s", card.StatusText, card.StatusColor)
	}
	if card.Fetched != "2023-11-14 22:13:20 UTC" {
		t.Errorf("Fetched = %q", card.Fetched)
	}
}

func TestNewVaultDetailsCardLargeAmounts(t *testing.T) {
	d := &entity.VaultDetails{
		Vault: entity.VaultInfo{
			TotalAssets: "12345000000000000000000000",
			TotalSupply: "2e25",
			Asset:       entity.AssetInfo{Decimals: int32Ptr(6)},
		},
	}

	card := NewVaultDetailsCard(d, "1", testLinker{})
	if card.TotalAssets != "12,345,000,000,000,000,000.000000" {
		t.Errorf("TotalAssets = %q", card.TotalAssets)
	}
	if card.TotalSupply != "20,000,000,000,000,000,000.000000" {
		t.Errorf("TotalSupply = %q", card.TotalSupply)
	}
}

func TestNewPPSCard(t *testing.T) {
	now := time.Unix(1700000100, 0)
	pps := entity.PPSInfo{
		CurrentPPS:          "1.0",
		CalculatedPPS:       "1.02",
		LastUpdateTimestamp: unixTime(1700000000),
		MinUpdateInterval:   60,
		MaxStaleness:        1000,
	}

	card := NewPPSCard(pps, entity.StatusInfo{}, 3600, now)
	if card.CurrentPPS != "1.000000" || card.CalculatedPPS != "1.020000" {
		t.Errorf("pps = %s / %s", card.CurrentPPS, card.CalculatedPPS)
	}
	if card.DeltaText != "2.00%" || !card.DeltaAlert || card.DeltaClass != "text-danger" {
		t.Errorf("delta = %s alert=%v class=%s", card.DeltaText, card.DeltaAlert, card.DeltaClass)
	}
	if card.Health.Status != staleness.Fresh {
		t.Errorf("health = %s", card.Health.Status)
	}
	if card.Expires != "2023-11-14 23:13:20 UTC" {
		t.Errorf("Expires = %q", card.Expires)
	}
	if card.MinUpdateInterval != "60s" || card.MaxStaleness != "1000s" {
		t.Errorf("intervals = %s %s", card.MinUpdateInterval, card.MaxStaleness)
	}
	if len(card.Chart) != 2 || card.Chart[1].Value != 1.02 {
		t.Errorf("chart = %+v", card.Chart)
	}
}

func TestNewPPSCardEdgeCases(t *testing.T) {
	now := time.Unix(1700000000, 0)

	card := NewPPSCard(entity.PPSInfo{CalculatedPPS: "5"}, entity.StatusInfo{IsPPSStale: true}, 0, now)
	if card.Delta != 0 || card.DeltaAlert {
		t.Errorf("zero current pps: delta = %v alert = %v", card.Delta, card.DeltaAlert)
	}
	if card.Expires != "N/A" {
		t.Errorf("Expires = %q", card.Expires)
	}
	if card.Health.Status != staleness.Stale {
		t.Errorf("upstream stale flag ignored: %s", card.Health.Status)
	}
	if card.LastUpdated != "2023-11-14 22:13:20 UTC" {
		t.Errorf("missing last update should read as now, got %q", card.LastUpdated)
	}

	small := NewPPSCard(entity.PPSInfo{CurrentPPS: "1", CalculatedPPS: "0.995"}, entity.StatusInfo{}, 0, now)
	if small.DeltaAlert || small.DeltaText != "-0.50%" {
		t.Errorf("small delta = %s alert=%v", small.DeltaText, small.DeltaAlert)
	}
}

func TestNewPPSCardLastUpdate(t *testing.T) {
	now := time.Unix(1700000000, 0)

	absent := NewPPSCard(entity.PPSInfo{CurrentPPS: "1", CalculatedPPS: "1", MaxStaleness: 3600}, entity.StatusInfo{}, 3600, now)
	if absent.Health.Status != staleness.Fresh {
		t.Errorf("absent timestamp: health = %s", absent.Health.Status)
	}
	if absent.LastUpdated != "2023-11-14 22:13:20 UTC" {
		t.Errorf("absent timestamp: LastUpdated = %q", absent.LastUpdated)
	}

	never := NewPPSCard(entity.PPSInfo{
		CurrentPPS:          "1",
		CalculatedPPS:       "1",
		LastUpdateTimestamp: unixTime(0),
		MaxStaleness:        3600,
	}, entity.StatusInfo{}, 3600, now)
	if never.Health.Status != staleness.Stale {
		t.Errorf("zero timestamp: health = %s", never.Health.Status)
	}
	if never.LastUpdated != "N/A" || never.Expires != "N/A" {
		t.Errorf("zero timestamp: LastUpdated = %q Expires = %q", never.LastUpdated, never.Expires)
	}
}

func TestNewTVLCard(t *testing.T) {
	tvl := entity.TVLInfo{
		Total: "3000000",
		Sources: []entity.TVLSource{
			{Name: "Idle USDC", Address: longAddr, Assets: "500000", Percentage: 16.666},
			{Name: "Morpho", Address: longAddr, Oracle: longAddr, Assets: "2000000", Percentage: 66.667},
			{Name: "Aave", Assets: "500000", Percentage: 16.667, IsActive: boolPtr(false)},
		},
	}

	card := NewTVLCard(tvl, 6, "1", testLinker{})
	if card.Empty {
		t.Fatal("card should not be empty")
	}
	if card.Total != "3.0000" {
		t.Errorf("Total = %q", card.Total)
	}
	names := []string{card.Rows[0].Name, card.Rows[1].Name, card.Rows[2].Name}
	if strings.Join(names, ",") != "Morpho,Idle USDC,Aave" {
		t.Errorf("order = %v", names)
	}
	if card.ActiveCount != 1 || card.IdleCount != 1 || card.InactiveCount != 1 || card.SourceCount != 3 {
		t.Errorf("counts = %+v", card)
	}
	if card.Rows[0].Badge.Text != "Active" || card.Rows[1].Badge.Text != "Idle" || card.Rows[2].Badge.Text != "Inactive" {
		t.Errorf("badges = %v %v %v", card.Rows[0].Badge, card.Rows[1].Badge, card.Rows[2].Badge)
	}
	if card.Rows[0].Assets != "2.0000" || card.Rows[0].Percentage != "66.67%" {
		t.Errorf("row0 = %+v", card.Rows[0])
	}
	if card.Rows[0].Oracle.Display != "0x5aAe...eAed" {
		t.Errorf("oracle display = %q", card.Rows[0].Oracle.Display)
	}
	if card.Rows[2].Oracle.Display != "N/A" {
		t.Errorf("missing oracle = %q", card.Rows[2].Oracle.Display)
	}
	if len(card.Pie) != 3 || card.Pie[0].Label != "Morpho" {
		t.Errorf("pie = %+v", card.Pie)
	}
}

func TestNewTVLCardEmpty(t *testing.T) {
	card := NewTVLCard(entity.TVLInfo{}, 18, "1", testLinker{})
	if !card.Empty || card.Message != "No allocation data available for this vault." {
		t.Errorf("card = %+v", card)
	}
}

func TestNewFeesCard(t *testing.T) {
	card := NewFeesCard(entity.FeesInfo{
		PerformanceFeeBps: 2000,
		ManagementFeeBps:  150,
		VaultHWMPPS:       "1.5",
		UnrealizedProfit:  "2500000",
	}, 6, "1", testLinker{})

	if card.Performance != "20.0%" || card.Management != "1.50%" {
		t.Errorf("fees = %s / %s", card.Performance, card.Management)
	}
	if card.HWMPPS != "1.500000" || card.UnrealizedProfit != "2.5000" {
		t.Errorf("hwm/profit = %s / %s", card.HWMPPS, card.UnrealizedProfit)
	}
}

func TestNewUpkeepCard(t *testing.T) {
	tests := []struct {
		balance entity.Amount
		status  string
		class   string
		text    string
	}{
		{"", "Low", "text-danger", "0.0000 UP"},
		{"99999999999999999", "Low", "text-danger", "0.1000 UP"},
		{"100000000000000000", "Medium", "text-warning", "0.1000 UP"},
		{"999999999999999999", "Medium", "text-warning", "1.0000 UP"},
		{"1000000000000000000", "Good", "text-success", "1.0000 UP"},
		{"25000000000000000000", "Good", "text-success", "25.0000 UP"},
	}
	for _, tt := range tests {
		card := NewUpkeepCard(entity.UpkeepInfo{Balance: tt.balance})
		if card.Status != tt.status || card.Class != tt.class || card.Balance != tt.text {
			t.Errorf("balance %q: got %+v", tt.balance, card)
		}
	}
}

func TestNewManagersCard(t *testing.T) {
	card := NewManagersCard(entity.ManagersInfo{Main: longAddr, Secondary: []string{"0xshort", longAddr}}, "1", testLinker{})

	if card.Main.Display != "0x5aAe...eAed" || card.Main.Address != longAddr {
		t.Errorf("main = %+v", card.Main)
	}
	if len(card.Secondary) != 2 || card.Secondary[0].Display != "0xshort" {
		t.Errorf("secondary = %+v", card.Secondary)
	}

	empty := NewManagersCard(entity.ManagersInfo{}, "1", testLinker{})
	if empty.Main.Display != "N/A" || len(empty.Secondary) != 0 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestNewConfigCard(t *testing.T) {
	card := NewConfigCard(entity.ConfigInfo{DeviationThreshold: "50000000000000000", PPSExpiration: 86400})
	if card.DeviationThreshold != "5.0%" || card.PPSExpiration != "24.0h" {
		t.Errorf("card = %+v", card)
	}
	zero := NewConfigCard(entity.ConfigInfo{DeviationThreshold: "garbage"})
	if zero.DeviationThreshold != "0.0%" || zero.PPSExpiration != "0.0h" {
		t.Errorf("zero = %+v", zero)
	}
}

func TestNewErrorCard(t *testing.T) {
	card := NewErrorCard(errors.New("upstream down"))
	if card.Title != "Error Fetching Data" || card.Message != "An error occurred: upstream down" {
		t.Errorf("card = %+v", card)
	}
}
