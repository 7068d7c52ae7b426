package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ASCIIAlias folds a formula to plain text so it can be searched without
// typing subscript glyphs: NFKC maps "₂" to "2", then anything outside
// printable ASCII is dropped.
func ASCIIAlias(formula string) string {
	normed := norm.NFKC.String(strings.TrimSpace(formula))
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, normed)
}
