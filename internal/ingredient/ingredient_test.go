package ingredient

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Tomatoes", "tomatoes"},
		{"  Olive   Oil ", "olive oil"},
		{"Chicken\tBreast\n", "chicken breast"},
		{"Half-and-Half", "halfandhalf"},
		{"Jalapeño", "jalapeno"},
		{"2 cups (diced) onion!", "2 cups diced onion"},
		{"a - b", "a b"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tomatoes",
		"  Olive   Oil ",
		"Crème Fraîche",
		"a - b - c",
		"  \t ",
		"ÄÖÜ ß 123",
		"salt & pepper",
		"日本酒",
	}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestIsPantryStaple(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"salt", true},
		{"Salt", true},
		{"  black   pepper ", true},
		{"Olive Oil", true},
		{"butter", true},
		{"peanut butter", false},
		{"sea salt", false},
		{"chicken", false},
		{"", false},
	}
	for _, tt := range tests {
		got := IsPantryStaple(tt.input)
		if got != tt.want {
			t.Errorf("IsPantryStaple(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestUnmarshalMixedShapes(t *testing.T) {
	data := `["2 eggs", {"name": "rice", "quantity": "1 cup"}, {"name": "chives", "optional": true}, {"quantity": "3"}]`

	var got []Ingredient
	if err := json.Unmarshal([]byte(data), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}

	if got[0].Kind != KindPlain || got[0].Name != "2 eggs" {
		t.Errorf("got[0] = %+v, want plain 2 eggs", got[0])
	}
	if got[1].Kind != KindStructured || got[1].Name != "rice" || got[1].Quantity != "1 cup" {
		t.Errorf("got[1] = %+v, want structured rice", got[1])
	}
	if !got[2].Optional {
		t.Error("got[2] should be optional")
	}
	if got[3].Name != "" {
		t.Errorf("got[3].Name = %q, want empty", got[3].Name)
	}
}

func TestMarshalKeepsShape(t *testing.T) {
	in := []Ingredient{Plain("salt"), Structured("rice", "1 cup", false)}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `["salt",{"name":"rice","quantity":"1 cup"}]`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestNamesDropsStaples(t *testing.T) {
	entries := []Ingredient{
		Plain("Salt"),
		Structured("chicken", "1 lb", false),
		Plain("pepper"),
		Plain("rice"),
		Structured("Olive Oil", "2 tbsp", false),
	}
	got := Names(entries)
	want := []string{"chicken", "rice"}
	if len(got) != len(want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNamesAllStaples(t *testing.T) {
	got := Names(FromStrings("salt", "pepper"))
	if len(got) != 0 {
		t.Errorf("Names = %v, want empty", got)
	}
}
