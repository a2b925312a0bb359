package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	rxCurrencySign = regexp.MustCompile(`R\$`)
	rxLeadingNum   = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d+)?|\.\d+)`)
)

// ParseBRL parses "R$ 1.234,56", "41,50", "1234.5" and the like into a float.
// Numbers pass through untouched. Whatever cannot be read is 0.
func ParseBRL(v any) float64 {
	var s string
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case decimal.Decimal:
		return x.InexactFloat64()
	case string:
		s = x
	default:
		return 0
	}

	s = rxCurrencySign.ReplaceAllString(s, "")
	// all whitespace goes, NBSP and narrow NBSP included
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" || s == "-" || s == "0" {
		return 0
	}

	if i := strings.LastIndex(s, ","); i >= 0 {
		// comma is the decimal separator, dots before it group thousands
		s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
	} else if strings.Contains(s, ".") {
		parts := strings.Split(s, ".")
		if len(parts) != 2 || len(parts[1]) > 2 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	num := rxLeadingNum.FindString(s)
	if num == "" {
		return 0
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// FormatBRL renders v as "R$ 1.234,56".
func FormatBRL(v float64) string {
	fixed := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Money keeps cents exact when adding and subtracting parsed amounts.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
