package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/supper/internal/model"
)

var ErrDayOutOfRange = errors.New("day index out of range")

// DayEdit changes the fields of one day that are set.
type DayEdit struct {
	Kind     *model.SlotKind
	RecipeID *string
	Note     *string
	Locked   *bool
}

// EditDay applies e to day i of a copy of plan, then repairs any leftovers
// the edit left dangling. It returns the new plan and the repaired indices.
func EditDay(plan *model.Plan, i int, e DayEdit, now time.Time) (*model.Plan, []int, error) {
	if i < 0 || i >= len(plan.Days) {
		return nil, nil, fmt.Errorf("edit day %d: %w", i, ErrDayOutOfRange)
	}
	if e.Kind != nil && !e.Kind.Valid() {
		return nil, nil, fmt.Errorf("edit day %d: unknown kind %q", i, *e.Kind)
	}

	out := plan.Clone()
	d := &out.Days[i]
	if e.Kind != nil && *e.Kind != d.Kind {
		d.Kind = *e.Kind
		d.LeftoverFrom = nil
	}
	if e.RecipeID != nil {
		d.RecipeID = *e.RecipeID
		if d.Kind == model.SlotLeftovers {
			d.LeftoverFrom = nil
		}
	}
	if d.Kind == model.SlotEatingOut {
		d.RecipeID = ""
	}
	if e.Note != nil {
		d.Note = *e.Note
	}
	if e.Locked != nil {
		d.Locked = *e.Locked
	}

	repaired, changed := RepairLeftovers(out)
	repaired.ModifiedAt = now
	return repaired, changed, nil
}

// SwapDays exchanges the contents of days i and j, keeping their dates,
// then repairs any leftovers the move left dangling.
func SwapDays(plan *model.Plan, i, j int, now time.Time) (*model.Plan, []int, error) {
	n := len(plan.Days)
	if i < 0 || i >= n || j < 0 || j >= n {
		return nil, nil, fmt.Errorf("swap days %d and %d: %w", i, j, ErrDayOutOfRange)
	}

	out := plan.Clone()
	a, b := out.Days[i], out.Days[j]
	a.Date, b.Date = b.Date, a.Date
	out.Days[i], out.Days[j] = b, a

	repaired, changed := RepairLeftovers(out)
	repaired.ModifiedAt = now
	return repaired, changed, nil
}
