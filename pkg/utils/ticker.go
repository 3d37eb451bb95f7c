// Package utils holds small helpers shared by the CLI and data sources.
package utils

import (
	"strings"
)

// Yahoo Finance symbols for common index names.
var indexTickers = map[string]string{
	"SPX":    "^GSPC",
	"SP500":  "^GSPC",
	"S&P500": "^GSPC",
	"DJI":    "^DJI",
	"DOW":    "^DJI",
	"NASDAQ": "^IXIC",
	"IXIC":   "^IXIC",
	"VIX":    "^VIX",
}

// NormalizeTicker normalizes user input to the canonical symbol form.
// It uppercases, trims whitespace and drops a leading "$" (cashtag).
func NormalizeTicker(ticker string) string {
	ticker = strings.TrimSpace(strings.ToUpper(ticker))
	return strings.TrimPrefix(ticker, "$")
}

// ToYFinanceTicker converts a symbol to Yahoo Finance format.
// Share classes use a dash on Yahoo ("BRK.B" → "BRK-B"); known indices map to their caret symbol.
func ToYFinanceTicker(ticker string) string {
	ticker = NormalizeTicker(ticker)
	if idx, ok := indexTickers[ticker]; ok {
		return idx
	}
	// Exchange suffixes (".L", ".NS", ".TO") are kept as-is.
	if i := strings.LastIndexByte(ticker, '.'); i > 0 && len(ticker)-i == 2 && isShareClass(ticker[i+1]) {
		return ticker[:i] + "-" + ticker[i+1:]
	}
	return ticker
}

// FromYFinanceTicker reverses the share-class rewrite done by ToYFinanceTicker.
func FromYFinanceTicker(yfTicker string) string {
	if i := strings.LastIndexByte(yfTicker, '-'); i > 0 && len(yfTicker)-i == 2 && isShareClass(yfTicker[i+1]) {
		return yfTicker[:i] + "." + yfTicker[i+1:]
	}
	return yfTicker
}

func isShareClass(c byte) bool {
	return c == 'A' || c == 'B' || c == 'C'
}
