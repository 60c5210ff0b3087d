package format

import "strings"

// ============================================================================
// CURRENCY FORMATTERS
// ============================================================================

// Currency describes a configured currency for a metric.
type Currency struct {
	Symbol         string `json:"symbol" yaml:"symbol"`
	SymbolPosition string `json:"symbolPosition" yaml:"symbolPosition"` // "prefix" or "suffix"
}

// IsSet reports whether a currency symbol is configured.
func (c Currency) IsSet() bool { return c.Symbol != "" }

// Formatter wraps a numeric formatter with the currency symbol.
// The base formatter supplies grouping/precision; when nil a grouped
// integer format is used, matching "$1,234" style output.
func (c Currency) Formatter(base ValueFormatter) ValueFormatter {
	if base == nil {
		base = Number(",d")
	}
	symbol := c.Symbol
	suffix := strings.EqualFold(c.SymbolPosition, "suffix")
	return func(v float64) string {
		s := base(v)
		if s == "" {
			return s
		}
		if suffix {
			return s + " " + symbol
		}
		neg := strings.HasPrefix(s, "-")
		if neg {
			return "-" + symbol + s[1:]
		}
		return symbol + s
	}
}
