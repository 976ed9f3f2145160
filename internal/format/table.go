package format

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// maxColumnWidth caps every table column; overlong values are truncated
// rather than wrapped.
const maxColumnWidth = 30

type column struct {
	header string
	value  func(models.AssetRecord) string
}

// Table renders the snapshot as a fixed-width text table with a header
// block. Sell/Buy columns appear only when at least one asset carries a
// live quote; assets without one get an empty cell.
func Table(snap models.PortfolioSnapshot) string {
	var out []string

	out = append(out, fmt.Sprintf("Portfolio for: %s", snap.Username))
	out = append(out, fmt.Sprintf("Total Assets: %d", snap.TotalAssets))
	if snap.LastUpdated != "" {
		out = append(out, fmt.Sprintf("Last Updated: %s", snap.LastUpdated))
	}
	out = append(out, strings.Repeat("-", 80))

	if len(snap.Assets) == 0 {
		out = append(out, "No assets found in portfolio.")
		return strings.Join(out, "\n")
	}

	columns := []column{
		{"Asset Name", func(a models.AssetRecord) string { return a.Name }},
		{"Allocation %", func(a models.AssetRecord) string { return a.InvestedPercentage }},
		{"Value %", func(a models.AssetRecord) string { return a.ValuePercentage }},
		{"P&L", func(a models.AssetRecord) string { return a.ProfitLossPercentage }},
	}
	if hasQuotes(snap.Assets) {
		columns = append(columns,
			column{"Sell", func(a models.AssetRecord) string { return a.SellPrice }},
			column{"Buy", func(a models.AssetRecord) string { return a.BuyPrice }},
		)
	}

	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.header)
		for _, asset := range snap.Assets {
			if w := len(col.value(asset)); w > widths[i] {
				widths[i] = w
			}
		}
		if widths[i] += 2; widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}

	headerCells := make([]string, len(columns))
	for i, col := range columns {
		headerCells[i] = pad(col.header, widths[i])
	}
	headerRow := strings.Join(headerCells, " | ")
	out = append(out, headerRow, strings.Repeat("-", len(headerRow)))

	for _, asset := range snap.Assets {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = pad(col.value(asset), widths[i])
		}
		out = append(out, strings.Join(cells, " | "))
	}

	return strings.Join(out, "\n")
}

func hasQuotes(assets []models.AssetRecord) bool {
	for _, a := range assets {
		if a.SellPrice != "" || a.BuyPrice != "" {
			return true
		}
	}
	return false
}

// pad left-justifies value into width, truncating with "..." when it does
// not fit.
func pad(value string, width int) string {
	if len(value) > width {
		value = value[:width-3] + "..."
	}
	return value + strings.Repeat(" ", width-len(value))
}
