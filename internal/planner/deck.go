package planner

import (
	"cmp"
	"slices"

	"github.com/dukerupert/supper/internal/model"
)

// deck deals recipes without replacement. When it runs out it reshuffles the
// whole pool, so within one pass through the deck every recipe is dealt once.
type deck struct {
	pool  []model.Recipe
	cards []model.Recipe
	rng   Rand
	quick bool
	last  string
}

func newDeck(pool []model.Recipe, rng Rand, quick bool, last string) *deck {
	return &deck{pool: pool, rng: rng, quick: quick, last: last}
}

// draw returns the next recipe ID, or "" when the pool is empty.
func (d *deck) draw() string {
	if len(d.pool) == 0 {
		return ""
	}
	if len(d.cards) == 0 {
		d.refill()
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	d.last = card.ID
	return card.ID
}

func (d *deck) refill() {
	d.cards = slices.Clone(d.pool)
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	if d.quick {
		slices.SortStableFunc(d.cards, func(a, b model.Recipe) int {
			return cmp.Compare(a.EffectivePrepTime(), b.EffectivePrepTime())
		})
	}
	// Never deal the same recipe twice in a row across a reshuffle.
	if len(d.cards) > 1 && d.cards[0].ID == d.last {
		d.cards = append(d.cards[1:], d.cards[0])
	}
}

// eligible returns the recipes not excluded by prefs, in input order.
func eligible(recipes []model.Recipe, prefs model.Preferences) []model.Recipe {
	excluded := make(map[string]struct{}, len(prefs.ExcludedMealIDs))
	for _, id := range prefs.ExcludedMealIDs {
		excluded[id] = struct{}{}
	}
	pool := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if _, ok := excluded[r.ID]; ok {
			continue
		}
		pool = append(pool, r)
	}
	if prefs.PreferQuickMeals {
		slices.SortStableFunc(pool, func(a, b model.Recipe) int {
			return cmp.Compare(a.EffectivePrepTime(), b.EffectivePrepTime())
		})
	}
	return pool
}
