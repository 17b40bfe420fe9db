// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"invoicing-roi-api/internal/model"
)

// NotAvailable is printed for metrics that are undefined for the inputs.
const NotAvailable = "n/a"

// FormatCurrency formats a dollar amount with thousands separators.
// e.g., 10500 -> "$10,500", -1500 -> "-$1,500"
func FormatCurrency(n model.Number) string {
	if !n.Defined() {
		return NotAvailable
	}
	v := float64(n)
	if v < 0 {
		return "-$" + humanize.Commaf(-v)
	}
	return "$" + humanize.Commaf(v)
}

// FormatPercent formats an ROI percentage, e.g. 1700 -> "1,700%".
func FormatPercent(n model.Number) string {
	if !n.Defined() {
		return NotAvailable
	}
	return humanize.Commaf(float64(n)) + "%"
}

// FormatShare formats a 0-1 fraction as a percentage with one decimal.
func FormatShare(n model.Number) string {
	if !n.Defined() {
		return NotAvailable
	}
	return humanize.FtoaWithDigits(math.Round(float64(n)*1000)/10, 1) + "%"
}

// FormatMonths formats a payback period, e.g. 0.7 -> "0.7 months".
func FormatMonths(n model.Number) string {
	if !n.Defined() {
		return NotAvailable
	}
	s := humanize.Commaf(float64(n))
	if s == "1" {
		return s + " month"
	}
	return s + " months"
}

// FormatCount formats a plain quantity with thousands separators.
func FormatCount(v float64) string {
	return humanize.Commaf(v)
}

// FormatMultiplier formats a scenario multiplier, e.g. 1.3 -> "×1.3".
func FormatMultiplier(m float64) string {
	return "×" + humanize.Ftoa(m)
}

// ShortID returns the first segment of a UUID for compact tables.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
