package utils

import "time"

const (
	// DateLayout is the day key used to join articles with daily prices.
	DateLayout = "2006-01-02"
	// DateTimeLayout is used when listing articles.
	DateTimeLayout = "2006-01-02 15:04"
)

// FormatDate formats t as YYYY-MM-DD, or "" for a nil time.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateTime formats t for article listings, falling back to "No date".
func FormatDateTime(t *time.Time) string {
	if t == nil {
		return "No date"
	}
	return t.Format(DateTimeLayout)
}

// RangeForDays picks the smallest Yahoo chart range covering the requested days.
func RangeForDays(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	default:
		return "6mo"
	}
}
