package cli

import (
	"testing"

	"invoicing-roi-api/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   model.Number
		want string
	}{
		{10500, "$10,500"},
		{0, "$0"},
		{-1500, "-$1,500"},
		{1234567, "$1,234,567"},
		{model.Undefined(), "n/a"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentAndMonths(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"roi", FormatPercent(1700), "1,700%"},
		{"negative roi", FormatPercent(-45.5), "-45.5%"},
		{"undefined roi", FormatPercent(model.Undefined()), "n/a"},
		{"months", FormatMonths(0.7), "0.7 months"},
		{"one month", FormatMonths(1), "1 month"},
		{"undefined months", FormatMonths(model.Undefined()), "n/a"},
		{"share", FormatShare(0.7142857), "71.4%"},
		{"whole share", FormatShare(0.25), "25%"},
		{"multiplier", FormatMultiplier(1.3), "×1.3"},
		{"count", FormatCount(12000), "12,000"},
		{"short id", ShortID("7f1c2a3e-0d4b-4e5f-9a6b-1c2d3e4f5a6b"), "7f1c2a3e"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
