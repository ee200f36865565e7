package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"supervault_dashboard/internal/app/view"
)

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

// printCards writes the home tab cards as aligned key/value sections.
func printCards(out io.Writer, cards *view.Cards) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	d := cards.Details
	fmt.Fprintf(w, "%s (%s)\t%s\n", d.Name, d.Symbol, d.StatusText)
	fmt.Fprintf(w, "Vault\t%s\n", d.Vault.Address)
	fmt.Fprintf(w, "Strategy\t%s\n", d.Strategy.Display)
	fmt.Fprintf(w, "Escrow\t%s\n", d.Escrow.Display)
	fmt.Fprintf(w, "Asset\t%s %s\n", d.AssetSymbol, d.Asset.Display)
	fmt.Fprintf(w, "Total assets\t%s\n", d.TotalAssets)
	fmt.Fprintf(w, "Total supply\t%s\n", d.TotalSupply)
	fmt.Fprintf(w, "Escrowed assets\t%s\n", d.EscrowedAssets)
	fmt.Fprintf(w, "Fetched\t%s\n", d.Fetched)
	if d.BlockNumber > 0 {
		fmt.Fprintf(w, "Block\t%d\n", d.BlockNumber)
	}

	p := cards.PPS
	section(w, "Price per share")
	fmt.Fprintf(w, "Health\t%s\n", p.Health.Status)
	fmt.Fprintf(w, "Current PPS\t%s\n", p.CurrentPPS)
	fmt.Fprintf(w, "Calculated PPS\t%s\n", p.CalculatedPPS)
	delta := p.DeltaText
	if p.DeltaAlert {
		delta += " (!)"
	}
	fmt.Fprintf(w, "Delta\t%s\n", delta)
	fmt.Fprintf(w, "Min update interval\t%s\n", p.MinUpdateInterval)
	fmt.Fprintf(w, "Max staleness\t%s\n", p.MaxStaleness)
	fmt.Fprintf(w, "Last update\t%s\n", p.LastUpdated)
	fmt.Fprintf(w, "Expires\t%s\n", p.Expires)

	t := cards.TVL
	section(w, "Allocations")
	if t.Empty {
		fmt.Fprintln(w, t.Message)
	} else {
		fmt.Fprintf(w, "Total\t%s\n", t.Total)
		fmt.Fprintf(w, "Sources\t%d (%d active, %d idle, %d inactive)\n", t.SourceCount, t.ActiveCount, t.IdleCount, t.InactiveCount)
		for _, r := range t.Rows {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.Name, r.Assets, r.Percentage, r.Badge.Text)
		}
	}

	f := cards.Fees
	section(w, "Fees")
	fmt.Fprintf(w, "Performance\t%s\n", f.Performance)
	fmt.Fprintf(w, "Management\t%s\n", f.Management)
	fmt.Fprintf(w, "High water mark PPS\t%s\n", f.HWMPPS)
	fmt.Fprintf(w, "Unrealized profit\t%s\n", f.UnrealizedProfit)

	section(w, "Upkeep")
	fmt.Fprintf(w, "Balance\t%s\t%s\n", cards.Upkeep.Balance, cards.Upkeep.Status)

	m := cards.Managers
	section(w, "Managers")
	fmt.Fprintf(w, "Main\t%s\n", m.Main.Display)
	for _, sm := range m.Secondary {
		fmt.Fprintf(w, "Secondary\t%s\n", sm.Display)
	}

	section(w, "Configuration")
	fmt.Fprintf(w, "Deviation threshold\t%s\n", cards.Config.DeviationThreshold)
	fmt.Fprintf(w, "PPS expiration\t%s\n", cards.Config.PPSExpiration)

	return w.Flush()
}
