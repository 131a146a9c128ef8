package cli

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{60, "+60"},
		{0, "+0"},
		{-1234, "-1,234"},
		{2000, "+2,000"},
	}
	for _, tt := range tests {
		if got := FormatSigned(tt.in); got != tt.want {
			t.Errorf("FormatSigned(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTokensAndCost(t *testing.T) {
	if got := FormatTokens(1234567); got != "1.2M" {
		t.Errorf("FormatTokens = %q", got)
	}
	costs := []struct {
		in   float64
		want string
	}{
		{12.34, "$12.3"},
		{1234.4, "$1,234"},
		{2.5, "$2.50"},
		{0.01234, "$0.0123"},
		{0, "$0.00"},
	}
	for _, tt := range costs {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatDelta(0.5, 0.25); got != "+$0.2500" {
		t.Errorf("FormatDelta small = %q", got)
	}
	if got := FormatDelta(1, 3); got != "-$2.00" {
		t.Errorf("FormatDelta = %q", got)
	}
}
