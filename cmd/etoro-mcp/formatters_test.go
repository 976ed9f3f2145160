package main

import (
	"strings"
	"testing"

	"github.com/bobmcallan/etoro-extractor/internal/models"
)

func TestFormatExtractResult_Success(t *testing.T) {
	result := &models.ExtractResult{
		Status: models.FetchStatusSuccess,
		Snapshot: models.PortfolioSnapshot{
			Username:          "investor1",
			LastUpdated:       "15/08/2026",
			TotalAssets:       2,
			BalancePercentage: "30.95%",
			Assets: []models.AssetRecord{
				{
					Name:                 "AAPL",
					Direction:            models.DirectionLong,
					InvestedPercentage:   "25.10%",
					ProfitLossPercentage: "8.30%",
					ProfitLossStatus:     models.ProfitLossPositive,
					ValuePercentage:      "27.94%",
				},
				{
					Name:                 "TSLA",
					Direction:            models.DirectionShort,
					InvestedPercentage:   "10.00%",
					ProfitLossPercentage: "-4.27%",
					ProfitLossStatus:     models.ProfitLossNegative,
					ValuePercentage:      "9.57%",
				},
			},
		},
	}

	md := formatExtractResult(result)

	for _, want := range []string{
		"# Portfolio: investor1",
		"**Last Updated:** 15/08/2026",
		"**Total Assets:** 2",
		"**Balance:** 30.95%",
		"| AAPL | Long | 25.10% | ▲ 8.30% | 27.94% |",
		"| TSLA | Short | 10.00% | ▼ -4.27% | 9.57% |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatExtractResult_NonSuccessHasNoTable(t *testing.T) {
	result := &models.ExtractResult{
		Status:   models.FetchStatusProfilePrivate,
		Snapshot: models.EmptySnapshot("investor1"),
	}

	md := formatExtractResult(result)
	if !strings.Contains(md, "profile is private") {
		t.Errorf("missing outcome message:\n%s", md)
	}
	if strings.Contains(md, "| Asset |") {
		t.Errorf("non-success rendering must not include a table:\n%s", md)
	}
}

func TestFormatExtractResult_EmptyPortfolio(t *testing.T) {
	result := &models.ExtractResult{
		Status:   models.FetchStatusSuccess,
		Snapshot: models.EmptySnapshot("investor1"),
	}

	md := formatExtractResult(result)
	if !strings.Contains(md, "No assets found in portfolio.") {
		t.Errorf("missing empty-portfolio line:\n%s", md)
	}
}

func TestFormatExtractResult_WarningsSection(t *testing.T) {
	result := successResult()
	result.Warnings = []models.ParseWarning{
		{Field: "asset[1].name", Detail: "row skipped: no asset name"},
	}

	md := formatExtractResult(result)
	if !strings.Contains(md, "## Warnings") || !strings.Contains(md, "row skipped") {
		t.Errorf("missing warnings section:\n%s", md)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 40)
	if len([]rune(got)) != 40 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate(long) = %q", got)
	}
}
