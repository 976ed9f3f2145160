package format

import (
	"encoding/json"
	"fmt"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

// JSON renders the snapshot as two-space-indented JSON, a full structural
// mirror of the model. Optional fields are omitted rather than emitted as
// empty strings.
func JSON(snap models.PortfolioSnapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(data), nil
}
