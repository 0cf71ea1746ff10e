package pantry

import (
	"testing"

	"github.com/dukerupert/supper/internal/model"
)

func TestSuggestCategoryExactMatch(t *testing.T) {
	tests := []struct {
		input string
		want  model.PantryCategory
	}{
		{"apples", model.CategoryProduce},
		{"eggs", model.CategoryDairy},
		{"ham", model.CategoryMeat},
		{"salt", model.CategoryPantry},
		{"Half-and-Half", model.CategoryDairy},
		{"Jalapeño", model.CategoryProduce},
	}
	for _, tt := range tests {
		got := SuggestCategory(tt.input)
		if got != tt.want {
			t.Errorf("SuggestCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestCategoryKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  model.PantryCategory
	}{
		{"boneless chicken thighs", model.CategoryMeat},
		{"ground beef", model.CategoryMeat},
		{"chicken broth", model.CategoryPantry},
		{"frozen chicken nuggets", model.CategoryFrozen},
		{"frozen peas", model.CategoryFrozen},
		{"vanilla ice cream", model.CategoryFrozen},
		{"peanut butter", model.CategoryPantry},
		{"shredded mozzarella", model.CategoryDairy},
		{"whole milk", model.CategoryDairy},
		{"red bell pepper", model.CategoryProduce},
		{"cherry tomatoes", model.CategoryProduce},
		{"canned tomatoes", model.CategoryPantry},
		{"jasmine rice", model.CategoryPantry},
		{"extra virgin olive oil", model.CategoryPantry},
		{"black beans", model.CategoryPantry},
	}
	for _, tt := range tests {
		got := SuggestCategory(tt.input)
		if got != tt.want {
			t.Errorf("SuggestCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestCategoryWordStart(t *testing.T) {
	// "licorice" contains "rice" but not at a word start.
	if got := SuggestCategory("licorice"); got != model.CategoryOther {
		t.Errorf("SuggestCategory(%q) = %q, want other", "licorice", got)
	}
}

func TestSuggestCategoryUnknown(t *testing.T) {
	for _, input := range []string{"", "   ", "widget", "xyz123"} {
		if got := SuggestCategory(input); got != model.CategoryOther {
			t.Errorf("SuggestCategory(%q) = %q, want other", input, got)
		}
	}
}
