// Package models defines the data structures produced by an extraction run.
package models

import "strings"

// FetchStatus identifies the terminal state of a profile page fetch.
// CAPTCHA, not-found, and private are legitimate outcomes of talking to a
// bot-hostile site, not failures.
type FetchStatus string

const (
	FetchStatusSuccess          FetchStatus = "success"
	FetchStatusCaptchaDetected  FetchStatus = "captcha_detected"
	FetchStatusProfileNotFound  FetchStatus = "profile_not_found"
	FetchStatusProfilePrivate   FetchStatus = "profile_private"
	FetchStatusTimeout          FetchStatus = "timeout"
	FetchStatusNavigationFailed FetchStatus = "navigation_failed"
)

// Message returns the operator-facing summary for a terminal state.
func (s FetchStatus) Message() string {
	switch s {
	case FetchStatusSuccess:
		return "portfolio extracted"
	case FetchStatusCaptchaDetected:
		return "CAPTCHA detected — the site is challenging automated access; retry later or run headful and solve it"
	case FetchStatusProfileNotFound:
		return "profile not found"
	case FetchStatusProfilePrivate:
		return "profile is private"
	case FetchStatusTimeout:
		return "timed out waiting for portfolio content"
	case FetchStatusNavigationFailed:
		return "navigation to the profile page failed"
	default:
		return string(s)
	}
}

// ProfitLossStatus classifies the sign of an asset's profit/loss percentage.
type ProfitLossStatus string

const (
	ProfitLossPositive ProfitLossStatus = "positive"
	ProfitLossNegative ProfitLossStatus = "negative"
)

// ProfitLossStatusOf derives the status from a parsed P/L value.
// Zero counts as positive.
func ProfitLossStatusOf(pct float64) ProfitLossStatus {
	if pct >= 0 {
		return ProfitLossPositive
	}
	return ProfitLossNegative
}

// Direction is the trade direction of a position. Only tradable instruments
// carry one; copied traders and strategies show nothing in that cell.
type Direction string

const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// ParseDirection maps raw cell text to a Direction. Anything other than
// Long/Short (case-insensitive) is not a direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long":
		return DirectionLong, true
	case "short":
		return DirectionShort, true
	default:
		return "", false
	}
}

// AssetRecord is one row of a public portfolio table, in page display order.
type AssetRecord struct {
	Name                 string           `json:"name"`
	Description          string           `json:"description,omitempty"`
	Direction            Direction        `json:"direction,omitempty"`
	InvestedPercentage   string           `json:"invested_percentage"`
	ProfitLossPercentage string           `json:"profit_loss_percentage"`
	ProfitLossStatus     ProfitLossStatus `json:"profit_loss_status,omitempty"`
	ValuePercentage      string           `json:"value_percentage"`
	SellPrice            string           `json:"sell_price,omitempty"`
	BuyPrice             string           `json:"buy_price,omitempty"`
	AvatarURL            string           `json:"avatar_url,omitempty"`
	AltText              string           `json:"alt_text,omitempty"`
}

// PortfolioSnapshot is the structured result of one extraction. It is built
// once per fetch and never mutated afterwards; TotalAssets is always the
// count of parsed records, never a number read off the page.
type PortfolioSnapshot struct {
	Username          string        `json:"username"`
	LastUpdated       string        `json:"last_updated,omitempty"`
	TotalAssets       int           `json:"total_assets"`
	BalancePercentage string        `json:"balance_percentage,omitempty"`
	Assets            []AssetRecord `json:"assets"`
}

// EmptySnapshot returns a snapshot with no assets for runs that terminated
// before any portfolio content was captured. Assets is non-nil so the JSON
// rendering stays `[]`.
func EmptySnapshot(username string) PortfolioSnapshot {
	return PortfolioSnapshot{Username: username, Assets: []AssetRecord{}}
}

// ParseWarning records one locally-recovered parse failure. A warning never
// aborts the run; it travels with the result so callers can surface it.
type ParseWarning struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

func (w ParseWarning) String() string {
	return w.Field + ": " + w.Detail
}

// ExtractResult carries everything one pipeline run produced: the terminal
// state, the snapshot (possibly empty), and any parse warnings.
type ExtractResult struct {
	Status     FetchStatus       `json:"status"`
	Snapshot   PortfolioSnapshot `json:"snapshot"`
	Warnings   []ParseWarning    `json:"warnings,omitempty"`
	ProfileURL string            `json:"profile_url,omitempty"`
	RunID      string            `json:"run_id,omitempty"`
	ElapsedMS  int64             `json:"elapsed_ms,omitempty"`
}

// OK reports whether the run captured portfolio content.
func (r *ExtractResult) OK() bool {
	return r.Status == FetchStatusSuccess
}
