// Package models defines the core data structures used throughout feedwatch.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrackedTicker is an investment the user follows in the news.
type TrackedTicker struct {
	Symbol      string `json:"symbol"`                 // e.g., "AAPL"
	CompanyName string `json:"company_name,omitempty"` // e.g., "Apple", used for substring matching
}

// Display returns "SYMBOL (Company)" or just the symbol when no name is set.
func (t TrackedTicker) Display() string {
	if t.CompanyName == "" {
		return t.Symbol
	}
	return t.Symbol + " (" + t.CompanyName + ")"
}

// Quote represents the latest price snapshot for a ticker.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Currency  string          `json:"currency,omitempty"`
	Price     decimal.Decimal `json:"price"`
	PrevClose decimal.Decimal `json:"prev_close"`
	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"change_pct"`
	AsOf      time.Time       `json:"as_of"`
}

// DailyPrice is a single daily close.
type DailyPrice struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Close decimal.Decimal `json:"close"`
}

// PriceHistory holds daily closes in chronological order.
type PriceHistory struct {
	Symbol string       `json:"symbol"`
	Prices []DailyPrice `json:"prices"`
}
