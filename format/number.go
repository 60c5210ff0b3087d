package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// NUMBER FORMATTERS — D3-style format strings
// ============================================================================
// The transform resolves one ValueFormatter per metric. Format strings
// follow the D3 convention the form data carries:
//
//   "SMART_NUMBER"  adaptive SI abbreviation (default)
//   ",d"            grouped integer            → 1,234
//   ",.2f"          grouped fixed precision    → 1,234.57
//   ".1%"           percentage                 → 12.3%
//   ".3s"           SI prefix                  → 1.23M
//   "$,.2f"         currency-prefixed fixed    → $1,234.57
//
// Only the subset the chart controls emit is supported; anything
// unparseable falls back to SmartNumber.
// ============================================================================

// ValueFormatter renders a numeric value for display.
type ValueFormatter func(float64) string

// SmartNumberFormat is the default format key.
const SmartNumberFormat = "SMART_NUMBER"

// Number builds a ValueFormatter from a D3-style format string.
func Number(format string) ValueFormatter {
	format = strings.TrimSpace(format)
	if format == "" || format == SmartNumberFormat {
		return SmartNumber
	}

	spec, ok := parseFormat(format)
	if !ok {
		return SmartNumber
	}

	return func(v float64) string {
		if math.IsNaN(v) {
			return ""
		}
		var s string
		switch spec.verb {
		case 'd':
			s = strconv.FormatFloat(math.Round(v), 'f', 0, 64)
		case '%':
			s = strconv.FormatFloat(v*100, 'f', spec.precision, 64) + "%"
		case 's':
			s = siPrefix(v, spec.precision)
		default: // 'f'
			s = strconv.FormatFloat(v, 'f', spec.precision, 64)
		}
		if spec.grouped {
			s = groupThousands(s)
		}
		if spec.currency {
			s = dollarSign + s
		}
		return s
	}
}

const dollarSign = "$"

type formatSpec struct {
	currency  bool
	grouped   bool
	precision int
	verb      byte
}

func parseFormat(format string) (formatSpec, bool) {
	spec := formatSpec{precision: -1, verb: 'f'}
	rest := format

	if strings.HasPrefix(rest, "$") {
		spec.currency = true
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, ",") {
		spec.grouped = true
		rest = rest[1:]
	}
	if strings.HasPrefix(rest, ".") {
		rest = rest[1:]
		i := 0
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		if i == 0 {
			return spec, false
		}
		p, err := strconv.Atoi(rest[:i])
		if err != nil {
			return spec, false
		}
		spec.precision = p
		rest = rest[i:]
	}
	if len(rest) > 1 {
		return spec, false
	}
	if len(rest) == 1 {
		switch rest[0] {
		case 'd', 'f', '%', 's':
			spec.verb = rest[0]
		default:
			return spec, false
		}
	}
	if spec.precision < 0 {
		switch spec.verb {
		case 'd':
			spec.precision = 0
		case 's':
			spec.precision = 3
		default:
			spec.precision = 2
		}
	}
	return spec, true
}

// SmartNumber abbreviates with SI suffixes and trims trailing zeros.
func SmartNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	abs := math.Abs(v)
	if abs >= 1000 {
		return trimZeros(siPrefix(v, 4))
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return trimZeros(strconv.FormatFloat(v, 'f', 4, 64))
}

var siSuffixes = []struct {
	limit  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "k"},
}

func siPrefix(v float64, sig int) string {
	abs := math.Abs(v)
	for _, s := range siSuffixes {
		if abs >= s.limit {
			scaled := v / s.limit
			digits := sig - intDigits(math.Abs(scaled))
			if digits < 0 {
				digits = 0
			}
			return strconv.FormatFloat(scaled, 'f', digits, 64) + s.suffix
		}
	}
	digits := sig - intDigits(abs)
	if digits < 0 {
		digits = 0
	}
	return strconv.FormatFloat(v, 'f', digits, 64)
}

func intDigits(abs float64) int {
	if abs < 1 {
		return 1
	}
	return int(math.Floor(math.Log10(abs))) + 1
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	// SI strings carry a suffix letter after the digits
	suffix := ""
	if last := s[len(s)-1]; last < '0' || last > '9' {
		suffix = string(last)
		s = s[:len(s)-1]
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + suffix
}

// groupThousands inserts comma separators into the integer part.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	rest := ""
	if idx := strings.IndexAny(s, ".%"); idx >= 0 {
		intPart, rest = s[:idx], s[idx:]
	}
	if len(intPart) > 3 {
		var parts []string
		for len(intPart) > 3 {
			parts = append([]string{intPart[len(intPart)-3:]}, parts...)
			intPart = intPart[:len(intPart)-3]
		}
		parts = append([]string{intPart}, parts...)
		intPart = strings.Join(parts, ",")
	}
	out := intPart + rest
	if neg {
		out = "-" + out
	}
	return out
}

// Percent renders a 0–1 fraction as a percentage with the given
// number of decimal places.
func Percent(precision int) ValueFormatter {
	if precision < 0 {
		precision = 1
	}
	return func(v float64) string {
		if math.IsNaN(v) {
			return ""
		}
		return fmt.Sprintf("%.*f%%", precision, v*100)
	}
}
