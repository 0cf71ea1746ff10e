package ingredient

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// staples are ingredients assumed to always be on hand. They never count
// toward a recipe's match score.
var staples = []string{
	"salt",
	"pepper",
	"black pepper",
	"olive oil",
	"vegetable oil",
	"oil",
	"water",
	"sugar",
	"flour",
	"butter",
}

var stapleSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(staples))
	for _, s := range staples {
		m[Normalize(s)] = struct{}{}
	}
	return m
}()

// Normalize canonicalizes an ingredient name for comparison. Accents are
// folded to their base letter, the result is lower-cased, everything outside
// [a-z0-9 ] is dropped and runs of whitespace collapse to a single space.
// Normalize is idempotent.
func Normalize(name string) string {
	folded, _, err := transform.String(diacritics(), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
	}
	return b.String()
}

// diacritics returns a fresh transformer; transform.Chain values are stateful
// and must not be shared between goroutines.
func diacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// IsPantryStaple reports whether name is one of the always-available staples.
func IsPantryStaple(name string) bool {
	_, ok := stapleSet[Normalize(name)]
	return ok
}

// Staples returns the staple list in its canonical order.
func Staples() []string {
	out := make([]string, len(staples))
	copy(out, staples)
	return out
}
