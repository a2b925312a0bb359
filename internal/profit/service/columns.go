package service

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"profit-service/internal/profit/model"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey: lower case, no accents, punctuation and repeated spaces
// collapsed. "Comissão (R$)" -> "comissao r".
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = nonWord.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// OrderColumns holds the real header names behind the canonical order fields.
type OrderColumns struct {
	SKU        string
	Name       string
	Price      string
	Coupon     string
	Commission string
	Revenue    string
}

// ResolveOrderColumns maps every required order column onto a header of the
// sheet. Any column that cannot be found makes the whole sheet invalid.
func ResolveOrderColumns(headers []string) (OrderColumns, error) {
	var (
		cols    OrderColumns
		missing []string
	)
	targets := []struct {
		want string
		dst  *string
	}{
		{model.ColSKU, &cols.SKU},
		{model.ColName, &cols.Name},
		{model.ColPrice, &cols.Price},
		{model.ColCoupon, &cols.Coupon},
		{model.ColCommission, &cols.Commission},
		{model.ColRevenue, &cols.Revenue},
	}
	for _, t := range targets {
		h := resolveColumn(headers, []string{t.want}, false)
		if h == "" {
			missing = append(missing, t.want)
			continue
		}
		*t.dst = h
	}
	if len(missing) > 0 {
		return cols, &MissingColumnsError{Columns: missing}
	}
	return cols, nil
}

func resolveColumn(headers, aliases []string, loose bool) string {
	return findColumn(headers, aliases, loose, "")
}

func resolveColumnExcept(headers, aliases []string, except string) string {
	return findColumn(headers, aliases, true, except)
}

// findColumn looks for the first alias present among headers: verbatim first,
// then by normalized key. With loose set, a header that contains an alias
// (or is contained by one) is accepted too, longest alias wins.
func findColumn(headers, aliases []string, loose bool, except string) string {
	for _, a := range aliases {
		for _, h := range headers {
			if h != except && strings.TrimSpace(h) == a {
				return h
			}
		}
	}

	normAliases := make([]string, len(aliases))
	for i, a := range aliases {
		normAliases[i] = normHeaderKey(a)
	}
	for _, na := range normAliases {
		for _, h := range headers {
			if h != except && normHeaderKey(h) == na {
				return h
			}
		}
	}
	if !loose {
		return ""
	}

	best, bestScore := "", 0
	for _, h := range headers {
		if h == except {
			continue
		}
		nh := normHeaderKey(h)
		if nh == "" {
			continue
		}
		for _, na := range normAliases {
			if len(na) < 3 {
				continue
			}
			if strings.Contains(nh, na) || strings.Contains(na, nh) {
				if len(na) > bestScore {
					best, bestScore = h, len(na)
				}
			}
		}
	}
	return best
}
