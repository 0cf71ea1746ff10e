package planner

import (
	"github.com/dukerupert/supper/internal/model"
)

// RegenerateRange returns a copy of plan with the days in [start, end)
// dealt afresh. The slice keeps as many eating-out and leftover days as it
// had before. Locked days are kept as they are, and so is every cooking day
// that a kept leftovers day (locked, or outside the range) points back to.
// Days outside the range are never changed. Out of range bounds are clamped.
func (g *Generator) RegenerateRange(plan *model.Plan, start, end int, recipes []model.Recipe, prefs model.Preferences) *model.Plan {
	out := plan.Clone()
	start = min(max(start, 0), len(out.Days))
	end = min(max(end, start), len(out.Days))

	pinned := pinnedDays(out.Days, start, end)
	var open []int
	eatingOut, leftovers := 0, 0
	for i := start; i < end; i++ {
		if pinned[i] {
			continue
		}
		open = append(open, i)
		switch out.Days[i].Kind {
		case model.SlotEatingOut:
			eatingOut++
		case model.SlotLeftovers:
			leftovers++
		}
	}
	if len(open) == 0 {
		return out
	}

	g.fill(out.Days, open, eligible(recipes, prefs), prefs.PreferQuickMeals, eatingOut, leftovers)
	out.ModifiedAt = g.now()
	return out
}

// RegenerateWeek regenerates the week-th block of seven days (0-based).
func (g *Generator) RegenerateWeek(plan *model.Plan, week int, recipes []model.Recipe, prefs model.Preferences) *model.Plan {
	return g.RegenerateRange(plan, week*7, week*7+7, recipes, prefs)
}

// pinnedDays returns the indices in [start, end) that must not change.
func pinnedDays(days []model.DaySlot, start, end int) map[int]bool {
	pinned := make(map[int]bool)
	for i := start; i < end; i++ {
		if days[i].Locked {
			pinned[i] = true
		}
	}

	byDate := indexByDate(days)
	for j, d := range days {
		if d.Kind != model.SlotLeftovers || d.LeftoverFrom == nil {
			continue
		}
		kept := j < start || j >= end || d.Locked
		if !kept {
			continue
		}
		if src, ok := byDate[dayKey(*d.LeftoverFrom)]; ok && src >= start && src < end {
			pinned[src] = true
		}
	}
	return pinned
}

func indexByDate(days []model.DaySlot) map[int64]int {
	m := make(map[int64]int, len(days))
	for i, d := range days {
		m[dayKey(d.Date)] = i
	}
	return m
}
