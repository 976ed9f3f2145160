package format

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// csvHeader is the fixed column set for asset rows.
var csvHeader = []string{"name", "percentage", "value", "profit_loss"}

// CSV renders one row per asset followed by exactly one trailing
// balance_percentage row — present even when the balance is absent, with an
// empty value, so consumers can rely on the shape.
func CSV(snap models.PortfolioSnapshot) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, asset := range snap.Assets {
		row := []string{
			asset.Name,
			asset.InvestedPercentage,
			asset.ValuePercentage,
			asset.ProfitLossPercentage,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row for %s: %w", asset.Name, err)
		}
	}
	if err := w.Write([]string{"balance_percentage", snap.BalancePercentage}); err != nil {
		return "", fmt.Errorf("write balance row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}
