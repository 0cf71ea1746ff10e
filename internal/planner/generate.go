package planner

import (
	"slices"
	"time"

	"github.com/dukerupert/supper/internal/model"
)

// Generate builds a new plan anchored at anchor.
//
// prefs.EatingOutDays days are picked at random to eat out; a request for
// more eating-out days than the plan has makes every day an eating-out day.
// The remaining days are dealt recipes from the eligible pool. Finally up to
// prefs.LeftoverDays cooking days are turned into leftovers of the most
// recent earlier cooking day. With an empty pool the cooking days are left
// without a recipe for the caller to resolve.
func (g *Generator) Generate(recipes []model.Recipe, anchor time.Time, prefs model.Preferences) *model.Plan {
	start, total := Window(anchor, prefs.DurationUnit, prefs.DurationCount)

	days := make([]model.DaySlot, total)
	open := make([]int, total)
	for i := range days {
		days[i] = model.DaySlot{Date: start.AddDate(0, 0, i), Kind: model.SlotMeal}
		open[i] = i
	}

	pool := eligible(recipes, prefs)
	g.fill(days, open, pool, prefs.PreferQuickMeals, prefs.EatingOutDays, prefs.LeftoverDays)

	unit := prefs.DurationUnit
	if unit != model.DurationMonth {
		unit = model.DurationWeek
	}
	now := g.now()
	return &model.Plan{
		ID:            g.newID(),
		WeekStartDate: start,
		Days:          days,
		DurationUnit:  unit,
		DurationCount: total / unitDays(unit),
		CreatedAt:     now,
		ModifiedAt:    now,
	}
}

func unitDays(unit model.DurationUnit) int {
	if unit == model.DurationMonth {
		return DaysPerMonth
	}
	return 7
}

// fill assigns the days at the open indices (ascending) in place: eating
// out first, then recipes from the deck, then leftover conversion. Days not
// listed in open are read but never written.
func (g *Generator) fill(days []model.DaySlot, open []int, pool []model.Recipe, quick bool, eatingOut, leftovers int) {
	if len(open) == 0 {
		return
	}
	for _, i := range open {
		days[i].Kind = model.SlotMeal
		days[i].RecipeID = ""
		days[i].LeftoverFrom = nil
	}

	g.placeEatingOut(days, open, eatingOut)

	d := newDeck(pool, g.rng, quick, precedingRecipe(days, open[0]))
	for _, i := range open {
		if days[i].Kind == model.SlotMeal {
			days[i].RecipeID = d.draw()
		}
	}

	g.placeLeftovers(days, open, leftovers)
}

// placeEatingOut marks count distinct open days, chosen uniformly, as eating
// out. A day directly before a leftovers day that is not being filled is
// never chosen.
func (g *Generator) placeEatingOut(days []model.DaySlot, open []int, count int) {
	candidates := make([]int, 0, len(open))
	for _, i := range open {
		next := i + 1
		if next < len(days) && !isOpen(open, next) && days[next].Kind == model.SlotLeftovers {
			continue
		}
		candidates = append(candidates, i)
	}

	count = min(max(count, 0), len(candidates))
	g.rng.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})
	for _, i := range candidates[:count] {
		days[i].Kind = model.SlotEatingOut
		days[i].RecipeID = ""
	}
}

// placeLeftovers picks up to count of the leftover candidates at random and
// converts them in date order, each copying the latest earlier cooking day.
// Candidates are chosen once, before any conversion. The first two cooking
// days are never candidates, so every converted day still finds a source.
func (g *Generator) placeLeftovers(days []model.DaySlot, open []int, count int) {
	candidates := leftoverCandidates(days, open)
	count = min(max(count, 0), len(candidates))
	if count == 0 {
		return
	}

	g.rng.Shuffle(len(candidates), func(a, b int) {
		candidates[a], candidates[b] = candidates[b], candidates[a]
	})
	picked := candidates[:count]
	slices.Sort(picked)

	for _, i := range picked {
		src := latestMeal(days, i)
		date := days[src].Date
		days[i].Kind = model.SlotLeftovers
		days[i].RecipeID = days[src].RecipeID
		days[i].LeftoverFrom = &date
	}
}

// leftoverCandidates returns the open days that may become leftovers: a
// cooking day, not right after eating out, with at least two cooking days
// before it and a cooking day with a recipe to copy from.
func leftoverCandidates(days []model.DaySlot, open []int) []int {
	var out []int
	for _, i := range open {
		if i == 0 || days[i].Kind != model.SlotMeal || days[i-1].Kind == model.SlotEatingOut {
			continue
		}
		if countMeals(days[:i]) < 2 || latestMeal(days, i) < 0 {
			continue
		}
		out = append(out, i)
	}
	return out
}

func countMeals(days []model.DaySlot) int {
	n := 0
	for _, d := range days {
		if d.Kind == model.SlotMeal {
			n++
		}
	}
	return n
}

// latestMeal returns the index of the last cooking day with a recipe before
// index i, or -1.
func latestMeal(days []model.DaySlot, i int) int {
	for j := i - 1; j >= 0; j-- {
		if days[j].Kind == model.SlotMeal && days[j].RecipeID != "" {
			return j
		}
	}
	return -1
}

// precedingRecipe is the recipe eaten the day before index i, if any.
func precedingRecipe(days []model.DaySlot, i int) string {
	if i <= 0 || i > len(days) {
		return ""
	}
	return days[i-1].RecipeID
}

func isOpen(open []int, i int) bool {
	_, ok := slices.BinarySearch(open, i)
	return ok
}
