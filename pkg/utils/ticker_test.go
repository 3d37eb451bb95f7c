package utils

import "testing"

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"aapl", "AAPL"},
		{" tsla ", "TSLA"},
		{"$MSFT", "MSFT"},
		{"brk.b", "BRK.B"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeTicker(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToYFinanceTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"brk.b", "BRK-B"},
		{"BF.A", "BF-A"},
		{"VOD.L", "VOD.L"},
		{"SPX", "^GSPC"},
		{"dow", "^DJI"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToYFinanceTicker(tt.input)
			if result != tt.expected {
				t.Errorf("ToYFinanceTicker(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromYFinanceTicker(t *testing.T) {
	if got := FromYFinanceTicker("BRK-B"); got != "BRK.B" {
		t.Errorf("FromYFinanceTicker(BRK-B) = %q", got)
	}
	if got := FromYFinanceTicker("AAPL"); got != "AAPL" {
		t.Errorf("FromYFinanceTicker(AAPL) = %q", got)
	}
}
