// Package recommend scores recipes against the pantry and ranks what can be
// cooked now.
package recommend

import (
	"time"

	"github.com/dukerupert/supper/internal/fuzzy"
	"github.com/dukerupert/supper/internal/ingredient"
	"github.com/dukerupert/supper/internal/model"
)

// ExpiringWithinDays is how close to its expiry date a pantry item has to be
// for a recipe using it to be flagged.
const ExpiringWithinDays = 3

// Score matches one recipe against the pantry as of today.
func Score(recipe model.Recipe, pantry []model.PantryItem, today time.Time) model.MatchResult {
	return score(fuzzy.PantryIndex(pantry, fuzzy.DefaultThreshold), recipe, pantry, startOfDay(today))
}

func score(ix *fuzzy.Index, recipe model.Recipe, pantry []model.PantryItem, today time.Time) model.MatchResult {
	required := ingredient.Names(recipe.Ingredients)
	result := model.MatchResult{
		Recipe:               recipe,
		AvailableIngredients: []string{},
		MissingIngredients:   []string{},
	}
	if len(required) == 0 {
		result.MatchScore = 100
		return result
	}

	for _, name := range required {
		hits := ix.Search(name)
		if len(hits) == 0 {
			result.MissingIngredients = append(result.MissingIngredients, name)
			continue
		}
		result.AvailableIngredients = append(result.AvailableIngredients, name)
		for _, h := range hits {
			if expiringSoon(pantry[h.Index], today) {
				result.HasExpiringIngredients = true
				break
			}
		}
	}

	result.MatchScore = percent(len(result.AvailableIngredients), len(required))
	return result
}

// percent returns 100*n/d rounded half up.
func percent(n, d int) int {
	return (200*n + d) / (2 * d)
}

func expiringSoon(item model.PantryItem, today time.Time) bool {
	if item.ExpiresOn == nil {
		return false
	}
	days := daysBetween(today, *item.ExpiresOn)
	return days >= 0 && days <= ExpiringWithinDays
}

// daysBetween counts calendar days from a to b, ignoring time of day.
func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
