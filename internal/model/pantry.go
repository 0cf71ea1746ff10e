package model

import "time"

type PantryCategory string

const (
	CategoryProduce PantryCategory = "produce"
	CategoryMeat    PantryCategory = "meat"
	CategoryDairy   PantryCategory = "dairy"
	CategoryPantry  PantryCategory = "pantry"
	CategoryFrozen  PantryCategory = "frozen"
	CategoryOther   PantryCategory = "other"
)

// PantryCategories lists every category in display order.
var PantryCategories = []PantryCategory{
	CategoryProduce,
	CategoryMeat,
	CategoryDairy,
	CategoryPantry,
	CategoryFrozen,
	CategoryOther,
}

func (c PantryCategory) Valid() bool {
	for _, v := range PantryCategories {
		if c == v {
			return true
		}
	}
	return false
}

type PantryItem struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Quantity  string         `json:"quantity"`
	Unit      string         `json:"unit"`
	Category  PantryCategory `json:"category"`
	ExpiresOn *time.Time     `json:"expires_on"`
	AddedAt   time.Time      `json:"added_at"`
	Notes     string         `json:"notes"`
}
