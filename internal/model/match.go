package model

// MatchResult is a recipe scored against the pantry. It is computed per
// request and never stored.
type MatchResult struct {
	Recipe                 Recipe   `json:"recipe"`
	MatchScore             int      `json:"match_score"`
	AvailableIngredients   []string `json:"available_ingredients"`
	MissingIngredients     []string `json:"missing_ingredients"`
	HasExpiringIngredients bool     `json:"has_expiring_ingredients"`
}
