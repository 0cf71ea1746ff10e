package store

import (
	"testing"
	"time"

	"github.com/dukerupert/supper/internal/ingredient"
	"github.com/dukerupert/supper/internal/model"
)

func TestRecipeCRUD(t *testing.T) {
	rs := NewRecipeStore(setupTestDB(t))

	// Create
	r, err := rs.Create(model.Recipe{
		Name: "  Stir Fry ",
		Ingredients: []ingredient.Ingredient{
			ingredient.Plain("2 chicken breasts"),
			ingredient.Structured("rice", "1 cup", false),
			ingredient.Structured("scallions", "", true),
		},
		Links:    []string{"https://example.com/stir-fry"},
		Tags:     []string{"quick", "asian"},
		PrepTime: 25,
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected generated id")
	}
	if r.Name != "Stir Fry" {
		t.Errorf("name = %q, want %q", r.Name, "Stir Fry")
	}
	if len(r.Ingredients) != 3 {
		t.Fatalf("ingredients = %d, want 3", len(r.Ingredients))
	}
	if r.Ingredients[0].Kind != ingredient.KindPlain || r.Ingredients[1].Quantity != "1 cup" || !r.Ingredients[2].Optional {
		t.Errorf("ingredients did not round-trip: %+v", r.Ingredients)
	}
	if len(r.Tags) != 2 || r.Tags[1] != "asian" {
		t.Errorf("tags = %v, want [quick asian]", r.Tags)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
	if r.LastCookedAt != nil {
		t.Error("expected nil last_cooked_at")
	}

	// Get
	got, err := rs.GetByID(r.ID)
	if err != nil {
		t.Fatalf("get recipe: %v", err)
	}
	if got == nil || got.Name != "Stir Fry" {
		t.Errorf("got = %+v, want Stir Fry", got)
	}

	// Update
	got.Name = "Chicken Stir Fry"
	got.PrepTime = 30
	got.Tags = nil
	updated, err := rs.Update(*got)
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}
	if updated.Name != "Chicken Stir Fry" || updated.PrepTime != 30 {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Tags == nil || len(updated.Tags) != 0 {
		t.Errorf("tags = %#v, want empty", updated.Tags)
	}

	// Delete
	if err := rs.Delete(r.ID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}
	gone, err := rs.GetByID(r.ID)
	if err != nil {
		t.Fatalf("get deleted: %v", err)
	}
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestRecipeNotFound(t *testing.T) {
	rs := NewRecipeStore(setupTestDB(t))

	r, err := rs.GetByID("missing")
	if err != nil || r != nil {
		t.Errorf("GetByID = %v, %v, want nil, nil", r, err)
	}
	r, err = rs.Update(model.Recipe{ID: "missing", Name: "x"})
	if err != nil || r != nil {
		t.Errorf("Update = %v, %v, want nil, nil", r, err)
	}
	r, err = rs.MarkCooked("missing", time.Now())
	if err != nil || r != nil {
		t.Errorf("MarkCooked = %v, %v, want nil, nil", r, err)
	}
}

func TestRecipeListOrder(t *testing.T) {
	rs := NewRecipeStore(setupTestDB(t))

	for _, name := range []string{"tacos", "Burgers", "pasta"} {
		if _, err := rs.Create(model.Recipe{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	recipes, err := rs.List()
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	want := []string{"Burgers", "pasta", "tacos"}
	if len(recipes) != len(want) {
		t.Fatalf("len = %d, want %d", len(recipes), len(want))
	}
	for i, name := range want {
		if recipes[i].Name != name {
			t.Errorf("recipes[%d].Name = %q, want %q", i, recipes[i].Name, name)
		}
	}
}

func TestRecipeMarkCooked(t *testing.T) {
	rs := NewRecipeStore(setupTestDB(t))

	r, _ := rs.Create(model.Recipe{Name: "Soup"})
	at := time.Date(2026, 3, 10, 19, 30, 0, 0, time.UTC)

	cooked, err := rs.MarkCooked(r.ID, at)
	if err != nil {
		t.Fatalf("mark cooked: %v", err)
	}
	if cooked.LastCookedAt == nil || !cooked.LastCookedAt.Equal(at) {
		t.Errorf("last_cooked_at = %v, want %v", cooked.LastCookedAt, at)
	}

	// Update leaves the cooked time alone.
	cooked.Notes = "add more salt"
	updated, _ := rs.Update(*cooked)
	if updated.LastCookedAt == nil || !updated.LastCookedAt.Equal(at) {
		t.Errorf("last_cooked_at after update = %v, want %v", updated.LastCookedAt, at)
	}
}
