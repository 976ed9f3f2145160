// Package format renders a PortfolioSnapshot as table, JSON, or CSV text.
// Every renderer is a pure function over an immutable snapshot: no parsing,
// no network, no mutation.
package format

import (
	"fmt"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// Output formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Render dispatches to the renderer for the named format.
func Render(snap models.PortfolioSnapshot, format string) (string, error) {
	switch format {
	case FormatTable:
		return Table(snap), nil
	case FormatJSON:
		return JSON(snap)
	case FormatCSV:
		return CSV(snap)
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json, or csv)", format)
	}
}
