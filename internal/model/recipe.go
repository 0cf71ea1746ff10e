package model

import (
	"time"

	"github.com/dukerupert/supper/internal/ingredient"
)

// UnknownPrepTime stands in for a recipe's prep time when none was recorded,
// so that unknown recipes sort after every timed one.
const UnknownPrepTime = 999

type Recipe struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Ingredients  []ingredient.Ingredient `json:"ingredients"`
	Instructions string                  `json:"instructions"`
	Links        []string                `json:"links"`
	Tags         []string                `json:"tags"`
	PrepTime     int                     `json:"prep_time"`
	ImageRef     string                  `json:"image_ref"`
	Notes        string                  `json:"notes"`
	CreatedAt    time.Time               `json:"created_at"`
	LastCookedAt *time.Time              `json:"last_cooked_at"`
}

// EffectivePrepTime returns PrepTime, or UnknownPrepTime when it is unset.
func (r Recipe) EffectivePrepTime() int {
	if r.PrepTime <= 0 {
		return UnknownPrepTime
	}
	return r.PrepTime
}
