package model

import (
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type SlotKind string

const (
	SlotMeal      SlotKind = "meal"
	SlotEatingOut SlotKind = "eating_out"
	SlotLeftovers SlotKind = "leftovers"
)

func (k SlotKind) Valid() bool {
	return k == SlotMeal || k == SlotEatingOut || k == SlotLeftovers
}

type DurationUnit string

const (
	DurationWeek  DurationUnit = "week"
	DurationMonth DurationUnit = "month"
)

// DaySlot is one calendar day of a plan. RecipeID is empty for eating-out
// days and for meal days that could not be filled.
type DaySlot struct {
	Date         time.Time  `json:"date"`
	Kind         SlotKind   `json:"kind"`
	RecipeID     string     `json:"recipe_id,omitempty"`
	LeftoverFrom *time.Time `json:"leftover_from,omitempty"`
	Note         string     `json:"note"`
	Locked       bool       `json:"locked"`
}

type Plan struct {
	ID            string       `json:"id"`
	WeekStartDate time.Time    `json:"week_start_date"`
	Days          []DaySlot    `json:"days"`
	DurationUnit  DurationUnit `json:"duration_unit"`
	DurationCount int          `json:"duration_count"`
	CreatedAt     time.Time    `json:"created_at"`
	ModifiedAt    time.Time    `json:"modified_at"`
}

// Clone returns a deep copy of the plan. Plans are treated as values: every
// edit works on a clone and the caller swaps it in.
func (p *Plan) Clone() *Plan {
	c := *p
	c.Days = slices.Clone(p.Days)
	for i := range c.Days {
		if from := c.Days[i].LeftoverFrom; from != nil {
			t := *from
			c.Days[i].LeftoverFrom = &t
		}
	}
	return &c
}

// IndexOf returns the index of the slot for date, or -1.
func (p *Plan) IndexOf(date time.Time) int {
	for i, d := range p.Days {
		if d.Date.Equal(date) {
			return i
		}
	}
	return -1
}

type Preferences struct {
	DurationUnit         DurationUnit `json:"duration_unit" yaml:"duration_unit"`
	DurationCount        int          `json:"duration_count" yaml:"duration_count"`
	EatingOutDays        int          `json:"eating_out_days" yaml:"eating_out_days"`
	LeftoverDays         int          `json:"leftover_days" yaml:"leftover_days"`
	ExcludedMealIDs      []string     `json:"excluded_meal_ids" yaml:"excluded_meal_ids"`
	PreferQuickMeals     bool         `json:"prefer_quick_meals" yaml:"prefer_quick_meals"`
	UsePantryIngredients bool         `json:"use_pantry_ingredients" yaml:"use_pantry_ingredients"`
}

// Validate checks the ranges of the preferences.
func (p *Preferences) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.DurationUnit, validation.Required, validation.In(DurationWeek, DurationMonth)),
		validation.Field(&p.DurationCount, validation.Required, validation.Min(1), validation.Max(12)),
		validation.Field(&p.EatingOutDays, validation.Min(0)),
		validation.Field(&p.LeftoverDays, validation.Min(0)),
	)
}
