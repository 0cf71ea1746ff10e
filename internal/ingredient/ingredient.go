package ingredient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind tags which shape an Ingredient was written in.
type Kind int

const (
	KindPlain Kind = iota
	KindStructured
)

// Ingredient is one entry of a recipe's ingredient list. Recipes written by
// hand carry plain text ("2 ripe tomatoes"); imported recipes carry a
// structured record. Both shapes expose the same Name.
type Ingredient struct {
	Kind     Kind
	Name     string
	Quantity string
	Optional bool
}

// Plain returns a free-text ingredient entry.
func Plain(text string) Ingredient {
	return Ingredient{Kind: KindPlain, Name: text}
}

// Structured returns a structured ingredient entry.
func Structured(name, quantity string, optional bool) Ingredient {
	return Ingredient{Kind: KindStructured, Name: name, Quantity: quantity, Optional: optional}
}

type structuredJSON struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// MarshalJSON writes the entry back in the shape it was read in.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	if i.Kind == KindPlain {
		return json.Marshal(i.Name)
	}
	return json.Marshal(structuredJSON{Name: i.Name, Quantity: i.Quantity, Optional: i.Optional})
}

// UnmarshalJSON accepts either a bare string or a {name, quantity, optional}
// object. An object without a name decodes to an entry with an empty Name.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode ingredient text: %w", err)
		}
		*i = Plain(s)
		return nil
	}

	var s structuredJSON
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode ingredient record: %w", err)
	}
	*i = Structured(s.Name, s.Quantity, s.Optional)
	return nil
}

// Names unwraps entry names in order, dropping pantry staples.
func Names(entries []Ingredient) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if IsPantryStaple(e.Name) {
			continue
		}
		names = append(names, e.Name)
	}
	return names
}

// FromStrings wraps each string as a plain entry.
func FromStrings(texts ...string) []Ingredient {
	out := make([]Ingredient, len(texts))
	for i, t := range texts {
		out[i] = Plain(t)
	}
	return out
}
