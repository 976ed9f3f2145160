package main

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// formatExtractResult renders an extraction result as markdown for LLM
// consumption. Non-success outcomes get the outcome message and no table.
func formatExtractResult(result *models.ExtractResult) string {
	var sb strings.Builder

	snap := result.Snapshot
	sb.WriteString(fmt.Sprintf("# Portfolio: %s\n\n", snap.Username))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", result.Status))
	if result.ProfileURL != "" {
		sb.WriteString(fmt.Sprintf("**Profile:** %s\n", result.ProfileURL))
	}

	if !result.OK() {
		sb.WriteString(fmt.Sprintf("\n%s\n", result.Status.Message()))
		return sb.String()
	}

	if snap.LastUpdated != "" {
		sb.WriteString(fmt.Sprintf("**Last Updated:** %s\n", snap.LastUpdated))
	}
	sb.WriteString(fmt.Sprintf("**Total Assets:** %d\n", snap.TotalAssets))
	if snap.BalancePercentage != "" {
		sb.WriteString(fmt.Sprintf("**Balance:** %s\n", snap.BalancePercentage))
	}
	sb.WriteString("\n")

	if len(snap.Assets) == 0 {
		sb.WriteString("No assets found in portfolio.\n")
	} else {
		sb.WriteString("| Asset | Direction | Invested | P/L | Value |\n")
		sb.WriteString("|-------|-----------|----------|-----|-------|\n")
		for _, a := range snap.Assets {
			pl := a.ProfitLossPercentage
			if a.ProfitLossStatus == models.ProfitLossNegative {
				pl = "▼ " + pl
			} else if a.ProfitLossStatus == models.ProfitLossPositive {
				pl = "▲ " + pl
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				truncate(a.Name, 40), a.Direction, a.InvestedPercentage, pl, a.ValuePercentage))
		}
	}

	if len(result.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range result.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return sb.String()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
