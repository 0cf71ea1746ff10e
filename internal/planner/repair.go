package planner

import (
	"errors"
	"fmt"

	"github.com/dukerupert/supper/internal/model"
)

// Validate checks the structural invariants of a plan: days are contiguous
// and ascending from WeekStartDate, kinds are known, eating-out days carry no
// recipe, and every leftovers day points back to an earlier cooking day with
// the same recipe.
func Validate(plan *model.Plan) error {
	var errs []error
	if want := plan.DurationCount * unitDays(plan.DurationUnit); len(plan.Days) != want {
		errs = append(errs, fmt.Errorf("plan has %d days, want %d", len(plan.Days), want))
	}

	start := Date(plan.WeekStartDate)
	for i, d := range plan.Days {
		if want := start.AddDate(0, 0, i); dayKey(d.Date) != dayKey(want) {
			errs = append(errs, fmt.Errorf("day %d: date %s, want %s", i, d.Date.Format("2006-01-02"), want.Format("2006-01-02")))
		}
		switch d.Kind {
		case model.SlotMeal:
		case model.SlotEatingOut:
			if d.RecipeID != "" {
				errs = append(errs, fmt.Errorf("day %d: eating out with recipe %q", i, d.RecipeID))
			}
		case model.SlotLeftovers:
			if !validLeftover(plan.Days, i) {
				errs = append(errs, fmt.Errorf("day %d: dangling leftovers", i))
			}
		default:
			errs = append(errs, fmt.Errorf("day %d: unknown kind %q", i, d.Kind))
		}
	}
	return errors.Join(errs...)
}

func validLeftover(days []model.DaySlot, i int) bool {
	d := days[i]
	if d.LeftoverFrom == nil || d.RecipeID == "" {
		return false
	}
	key := dayKey(*d.LeftoverFrom)
	for j := i - 1; j >= 0; j-- {
		if dayKey(days[j].Date) != key {
			continue
		}
		return days[j].Kind == model.SlotMeal && days[j].RecipeID == d.RecipeID
	}
	return false
}

// RepairLeftovers returns a copy of plan in which every leftovers day points
// back to a valid earlier cooking day, along with the indices it changed.
// A dangling day is re-linked to the latest earlier cooking day of the same
// recipe, else to the latest earlier cooking day of any recipe. If there is
// none it becomes a cooking day; one without a recipe is left for the user
// to resolve.
func RepairLeftovers(plan *model.Plan) (*model.Plan, []int) {
	out := plan.Clone()
	var changed []int
	for i := range out.Days {
		d := &out.Days[i]
		if d.Kind != model.SlotLeftovers || validLeftover(out.Days, i) {
			continue
		}
		changed = append(changed, i)

		src := latestMealWith(out.Days, i, d.RecipeID)
		if src < 0 {
			src = latestMeal(out.Days, i)
		}
		if src < 0 {
			d.Kind = model.SlotMeal
			d.LeftoverFrom = nil
			continue
		}
		date := out.Days[src].Date
		d.RecipeID = out.Days[src].RecipeID
		d.LeftoverFrom = &date
	}
	return out, changed
}

func latestMealWith(days []model.DaySlot, i int, recipeID string) int {
	if recipeID == "" {
		return -1
	}
	for j := i - 1; j >= 0; j-- {
		if days[j].Kind == model.SlotMeal && days[j].RecipeID == recipeID {
			return j
		}
	}
	return -1
}
