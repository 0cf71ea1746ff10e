package recommend

import (
	"cmp"
	"slices"
	"time"

	"github.com/dukerupert/supper/internal/fuzzy"
	"github.com/dukerupert/supper/internal/model"
)

// Rank scores every recipe and orders the results: recipes using soon to
// expire items first, then by match score descending, then quickest first
// with unknown prep times last. Remaining ties keep input order.
func Rank(recipes []model.Recipe, pantry []model.PantryItem, today time.Time) []model.MatchResult {
	return RankWithThreshold(recipes, pantry, today, fuzzy.DefaultThreshold)
}

// RankWithThreshold is Rank with a custom fuzzy match threshold.
func RankWithThreshold(recipes []model.Recipe, pantry []model.PantryItem, today time.Time, threshold float64) []model.MatchResult {
	ix := fuzzy.PantryIndex(pantry, threshold)
	today = startOfDay(today)

	results := make([]model.MatchResult, 0, len(recipes))
	for _, r := range recipes {
		results = append(results, score(ix, r, pantry, today))
	}

	slices.SortStableFunc(results, compareResults)
	return results
}

func compareResults(a, b model.MatchResult) int {
	if a.HasExpiringIngredients != b.HasExpiringIngredients {
		if a.HasExpiringIngredients {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(b.MatchScore, a.MatchScore); c != 0 {
		return c
	}
	return cmp.Compare(a.Recipe.EffectivePrepTime(), b.Recipe.EffectivePrepTime())
}

// Categories buckets ranked results by how close they are to cookable.
type Categories struct {
	CanMakeNow     []model.MatchResult `json:"can_make_now"`
	AlmostThere    []model.MatchResult `json:"almost_there"`
	MissingSeveral []model.MatchResult `json:"missing_several"`
	NotFeasible    []model.MatchResult `json:"not_feasible"`
}

// Categorize places each result in exactly one bucket: 100, 80-99, 50-79
// and below 50. Order within a bucket follows the input.
func Categorize(results []model.MatchResult) Categories {
	c := Categories{
		CanMakeNow:     []model.MatchResult{},
		AlmostThere:    []model.MatchResult{},
		MissingSeveral: []model.MatchResult{},
		NotFeasible:    []model.MatchResult{},
	}
	for _, r := range results {
		switch {
		case r.MatchScore >= 100:
			c.CanMakeNow = append(c.CanMakeNow, r)
		case r.MatchScore >= 80:
			c.AlmostThere = append(c.AlmostThere, r)
		case r.MatchScore >= 50:
			c.MissingSeveral = append(c.MissingSeveral, r)
		default:
			c.NotFeasible = append(c.NotFeasible, r)
		}
	}
	return c
}
