// Package parse translates a captured DOM snapshot into a PortfolioSnapshot.
// It is a pure function of the markup: no network, no driver, no mutation.
// Each row is parsed independently with skip-and-warn semantics so one
// malformed entry never aborts the rest.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// Parse converts rendered profile markup into a snapshot plus the warnings
// collected along the way. The returned TotalAssets is always the count of
// rows that parsed, never a number read off the page. The error is non-nil
// only when the markup cannot be tokenized at all.
func Parse(html, username string) (models.PortfolioSnapshot, []models.ParseWarning, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.EmptySnapshot(username), nil, fmt.Errorf("parse document: %w", err)
	}

	snap := models.EmptySnapshot(username)
	var warnings []models.ParseWarning

	// Header fields are independent of the asset list; absence is not a
	// failure.
	if el := doc.Find(selLastUpdated).First(); el.Length() > 0 {
		text := strings.TrimSpace(el.Text())
		if strings.Contains(text, lastUpdatedPrefix) {
			snap.LastUpdated = strings.TrimSpace(strings.Replace(text, lastUpdatedPrefix, "", 1))
		}
	}
	if label := doc.Find(selBalanceLabel).First(); label.Length() > 0 {
		if value := label.Parent().Find(selBalanceValue).First(); value.Length() > 0 {
			snap.BalancePercentage = strings.TrimSpace(value.Text())
		}
	}

	doc.Find(selRow).Each(func(i int, row *goquery.Selection) {
		rec, rowWarnings, ok := parseRow(i, row)
		warnings = append(warnings, rowWarnings...)
		if ok {
			snap.Assets = append(snap.Assets, rec)
		}
	})

	snap.TotalAssets = len(snap.Assets)
	return snap, warnings, nil
}

// parseRow extracts one asset record. A row without a name is unusable: it
// is skipped with a single warning and ok=false.
func parseRow(index int, row *goquery.Selection) (models.AssetRecord, []models.ParseWarning, bool) {
	var rec models.AssetRecord
	var warnings []models.ParseWarning

	name := firstText(row, selName)
	if name == "" {
		name = firstText(row, selNameFallback)
	}
	if name == "" {
		return rec, []models.ParseWarning{{
			Field:  "name",
			Detail: fmt.Sprintf("row %d: missing asset name, row skipped", index+1),
		}}, false
	}
	rec.Name = name
	rec.Description = firstText(row, selDescription)

	warn := func(field, detail string) {
		warnings = append(warnings, models.ParseWarning{
			Field:  field,
			Detail: fmt.Sprintf("row %d (%s): %s", index+1, name, detail),
		})
	}

	cells := row.Find(selCell)

	// Direction only appears for tradable instruments; copied traders and
	// strategies leave the cell blank or reuse it for something else.
	if raw := cellText(cells, cellDirection, selCellValue); raw != "" {
		if dir, ok := models.ParseDirection(raw); ok {
			rec.Direction = dir
		}
	}

	rec.InvestedPercentage = normalizeCell(cells, cellInvested, "invested_percentage", warn)

	if raw := cellText(cells, cellProfit, selCellValue); raw != "" {
		formatted, value, ok := normalizePercent(raw)
		rec.ProfitLossPercentage = formatted
		if ok {
			rec.ProfitLossStatus = models.ProfitLossStatusOf(value)
		} else {
			warn("profit_loss_percentage", fmt.Sprintf("unparseable percentage %q kept verbatim", raw))
		}
	}

	rec.ValuePercentage = normalizeCell(cells, cellValue, "value_percentage", warn)

	// Live quotes occupy two extra cells; their absence just means the
	// instrument has none.
	if cells.Length() > cellBuy {
		rec.SellPrice = cellText(cells, cellSell, selRateValue)
		rec.BuyPrice = cellText(cells, cellBuy, selRateValue)
	}

	if avatar := row.Find(selAvatar).First(); avatar.Length() > 0 {
		if src, ok := avatar.Attr("src"); ok && src != "" {
			rec.AvatarURL = src
			rec.AltText, _ = avatar.Attr("alt")
		}
	}

	return rec, warnings, true
}

// normalizeCell reads one percentage cell and normalizes it, warning when
// the text is present but not numeric.
func normalizeCell(cells *goquery.Selection, index int, field string, warn func(field, detail string)) string {
	raw := cellText(cells, index, selCellValue)
	if raw == "" {
		return ""
	}
	formatted, _, ok := normalizePercent(raw)
	if !ok {
		warn(field, fmt.Sprintf("unparseable percentage %q kept verbatim", raw))
	}
	return formatted
}

// normalizePercent renders a percentage as %.2f with a trailing %. Text that
// does not parse as a number is returned verbatim with ok=false — keeping
// the source beats inventing a value.
func normalizePercent(raw string) (string, float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "%")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, "−", "-") // unicode minus
	cleaned = strings.TrimSpace(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return strings.TrimSpace(raw), 0, false
	}
	return fmt.Sprintf("%.2f%%", value), value, true
}

// cellText returns the trimmed text of the value element inside the nth
// cell, or "" when the cell or value is missing.
func cellText(cells *goquery.Selection, index int, valueSelector string) string {
	if cells.Length() <= index {
		return ""
	}
	return strings.TrimSpace(cells.Eq(index).Find(valueSelector).First().Text())
}

// firstText returns the trimmed text of the first match, or "".
func firstText(root *goquery.Selection, selector string) string {
	return strings.TrimSpace(root.Find(selector).First().Text())
}
