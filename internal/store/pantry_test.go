package store

import (
	"testing"
	"time"

	"github.com/dukerupert/supper/internal/model"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestPantryCRUD(t *testing.T) {
	ps := NewPantryStore(setupTestDB(t))

	// Create
	item, err := ps.Create(model.PantryItem{
		Name:      "Milk",
		Quantity:  "1",
		Unit:      "gallon",
		Category:  model.CategoryDairy,
		ExpiresOn: date(2026, 3, 12),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected generated id")
	}
	if item.Category != model.CategoryDairy {
		t.Errorf("category = %q, want dairy", item.Category)
	}
	if item.ExpiresOn == nil || !item.ExpiresOn.Equal(*date(2026, 3, 12)) {
		t.Errorf("expires_on = %v, want 2026-03-12", item.ExpiresOn)
	}
	if item.AddedAt.IsZero() {
		t.Error("expected added_at to be set")
	}

	// Update
	item.Quantity = "half"
	item.ExpiresOn = nil
	item.Category = ""
	updated, err := ps.Update(*item)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Quantity != "half" {
		t.Errorf("quantity = %q, want half", updated.Quantity)
	}
	if updated.ExpiresOn != nil {
		t.Errorf("expires_on = %v, want nil", updated.ExpiresOn)
	}
	if updated.Category != model.CategoryOther {
		t.Errorf("category = %q, want other", updated.Category)
	}

	// Delete
	if err := ps.Delete(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	gone, _ := ps.GetByID(item.ID)
	if gone != nil {
		t.Error("expected nil after delete")
	}
}

func TestPantryCreateDefaultsCategory(t *testing.T) {
	ps := NewPantryStore(setupTestDB(t))

	item, err := ps.Create(model.PantryItem{Name: "mystery jar"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.Category != model.CategoryOther {
		t.Errorf("category = %q, want other", item.Category)
	}
}

func TestPantryList(t *testing.T) {
	ps := NewPantryStore(setupTestDB(t))

	ps.Create(model.PantryItem{Name: "rice", Category: model.CategoryPantry})
	ps.Create(model.PantryItem{Name: "Apples", Category: model.CategoryProduce})
	ps.Create(model.PantryItem{Name: "cheese", Category: model.CategoryDairy})

	items, err := ps.List()
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	want := []string{"cheese", "rice", "Apples"}
	if len(items) != len(want) {
		t.Fatalf("len = %d, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestPantryListExpiring(t *testing.T) {
	ps := NewPantryStore(setupTestDB(t))

	ps.Create(model.PantryItem{Name: "expired", ExpiresOn: date(2026, 3, 9)})
	ps.Create(model.PantryItem{Name: "today", ExpiresOn: date(2026, 3, 10)})
	ps.Create(model.PantryItem{Name: "edge", ExpiresOn: date(2026, 3, 13)})
	ps.Create(model.PantryItem{Name: "later", ExpiresOn: date(2026, 3, 14)})
	ps.Create(model.PantryItem{Name: "soon", ExpiresOn: date(2026, 3, 11)})
	ps.Create(model.PantryItem{Name: "forever"})

	today := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	items, err := ps.ListExpiring(today, 3)
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	want := []string{"today", "soon", "edge"}
	if len(items) != len(want) {
		t.Fatalf("items = %v, want %v", items, want)
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
}
