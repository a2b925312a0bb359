package service

import (
	"regexp"
	"strings"
)

// everything but ASCII letters, digits, '_' and '-'
var skuJunk = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// NormalizeSKU canonicalizes a product code for comparison:
// trim, upper-case, whitespace runs become a single '-', then anything that is
// not alphanumeric, '_' or '-' is dropped.
//
//	" vestido agua viva " -> "VESTIDO-AGUA-VIVA"
//	"Conj. Baddie/P"      -> "CONJ-BADDIEP"
func NormalizeSKU(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.Join(strings.Fields(s), "-")
	return skuJunk.ReplaceAllString(s, "")
}
