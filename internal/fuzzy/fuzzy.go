// Package fuzzy decides whether an ingredient named in a recipe is present
// in the pantry, tolerating plurals and small misspellings.
package fuzzy

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/dukerupert/supper/internal/ingredient"
	"github.com/dukerupert/supper/internal/model"
)

// DefaultThreshold is the largest edit distance, relative to the longer of
// the two strings, that still counts as a match. 0.3 accepts "tomato" for
// "tomatoes" (0.25) and rejects "chicken" for "chickpeas" (0.33).
const DefaultThreshold = 0.3

// minTokenRunes is the shortest word the overlap pass matches with typos.
// Shorter words have to match exactly, or "ice" would stand in for "rice".
const minTokenRunes = 4

// Hit is one indexed name that matched a query. Distance is the relative
// edit distance, 0 being an exact match.
type Hit struct {
	Index    int
	Distance float64
}

type entry struct {
	name   string
	tokens []string
}

// Index is a search index over a fixed list of names, usually the pantry.
// An Index is immutable once built.
type Index struct {
	entries   []entry
	threshold float64
}

// NewIndex builds an index over names. A threshold <= 0 selects
// DefaultThreshold.
func NewIndex(names []string, threshold float64) *Index {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	ix := &Index{
		entries:   make([]entry, len(names)),
		threshold: threshold,
	}
	for i, n := range names {
		norm := ingredient.Normalize(n)
		ix.entries[i] = entry{name: norm, tokens: strings.Fields(norm)}
	}
	return ix
}

// PantryIndex indexes the names of the given pantry items, keeping their order.
func PantryIndex(pantry []model.PantryItem, threshold float64) *Index {
	names := make([]string, len(pantry))
	for i, p := range pantry {
		names[i] = p.Name
	}
	return NewIndex(names, threshold)
}

// Search returns every indexed name matching query, best first. Ties keep
// index order.
func (ix *Index) Search(query string) []Hit {
	q := ingredient.Normalize(query)
	if q == "" {
		return nil
	}
	qTokens := strings.Fields(q)

	var hits []Hit
	for i, e := range ix.entries {
		if d, ok := ix.match(q, qTokens, e); ok {
			hits = append(hits, Hit{Index: i, Distance: d})
		}
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}

// Contains reports whether any indexed name matches query.
func (ix *Index) Contains(query string) bool {
	return len(ix.Search(query)) > 0
}

func (ix *Index) match(q string, qTokens []string, e entry) (float64, bool) {
	if e.name == "" {
		return 0, false
	}
	if q == e.name {
		return 0, true
	}
	if d := relative(q, e.name); d <= ix.threshold {
		return d, true
	}

	// Partial overlap: every word of the shorter name has to appear, give or
	// take a typo, in the longer one ("chicken" in "boneless chicken thighs").
	// Short words get no typo allowance.
	short, long := qTokens, e.tokens
	if len(long) < len(short) {
		short, long = long, short
	}
	var total float64
	for _, s := range short {
		best := 1.0
		for _, l := range long {
			if d := tokenDistance(s, l); d < best {
				best = d
			}
		}
		if best > ix.threshold {
			return 0, false
		}
		total += best
	}
	return total / float64(len(short)), true
}

// tokenDistance is the relative distance between two words, or 1 when either
// is too short to compare loosely and they differ.
func tokenDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	if utf8.RuneCountInString(a) < minTokenRunes || utf8.RuneCountInString(b) < minTokenRunes {
		return 1
	}
	return relative(a, b)
}

// relative is the Levenshtein distance between a and b divided by the length
// of the longer one.
func relative(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(longest)
}

// IsAvailable reports whether name matches any pantry item at the default
// threshold. It rebuilds the index on every call; callers checking many
// ingredients against one pantry should build a PantryIndex once.
func IsAvailable(name string, pantry []model.PantryItem) bool {
	return PantryIndex(pantry, DefaultThreshold).Contains(name)
}
