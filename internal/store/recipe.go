package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/supper/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	var ingredients, links, tags string
	var lastCooked sql.NullTime

	err := scanner.Scan(
		&r.ID, &r.Name, &r.Description, &ingredients, &r.Instructions,
		&links, &tags, &r.PrepTime, &r.ImageRef, &r.Notes,
		&r.CreatedAt, &lastCooked,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(links), &r.Links); err != nil {
		return nil, fmt.Errorf("decode links of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of %s: %w", r.ID, err)
	}
	if lastCooked.Valid {
		r.LastCookedAt = &lastCooked.Time
	}
	return &r, nil
}

const recipeCols = `id, name, description, ingredients, instructions, links, tags, prep_time, image_ref, notes, created_at, last_cooked_at`

// recipeArgs encodes the JSON columns of r.
func recipeArgs(r model.Recipe) (ingredients, links, tags string, err error) {
	if ingredients, err = jsonColumn(r.Ingredients); err != nil {
		return "", "", "", fmt.Errorf("encode ingredients: %w", err)
	}
	if links, err = jsonColumn(r.Links); err != nil {
		return "", "", "", fmt.Errorf("encode links: %w", err)
	}
	if tags, err = jsonColumn(r.Tags); err != nil {
		return "", "", "", fmt.Errorf("encode tags: %w", err)
	}
	return ingredients, links, tags, nil
}

// Create inserts r, minting an ID and creation time when they are unset.
func (s *RecipeStore) Create(r model.Recipe) (*model.Recipe, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	ingredients, links, tags, err := recipeArgs(r)
	if err != nil {
		return nil, err
	}
	var lastCooked sql.NullTime
	if r.LastCookedAt != nil {
		lastCooked = sql.NullTime{Time: *r.LastCookedAt, Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO recipes (`+recipeCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, strings.TrimSpace(r.Name), r.Description, ingredients, r.Instructions,
		links, tags, r.PrepTime, r.ImageRef, r.Notes, r.CreatedAt, lastCooked,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return s.GetByID(r.ID)
}

func (s *RecipeStore) GetByID(id string) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *RecipeStore) List() ([]model.Recipe, error) {
	rows, err := s.db.Query(`SELECT ` + recipeCols + ` FROM recipes ORDER BY name COLLATE NOCASE ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

// Update overwrites the editable fields of the recipe with r.ID. It returns
// nil if no such recipe exists. CreatedAt and LastCookedAt are left alone.
func (s *RecipeStore) Update(r model.Recipe) (*model.Recipe, error) {
	ingredients, links, tags, err := recipeArgs(r)
	if err != nil {
		return nil, err
	}

	result, err := s.db.Exec(
		`UPDATE recipes SET name = ?, description = ?, ingredients = ?, instructions = ?, links = ?, tags = ?, prep_time = ?, image_ref = ?, notes = ? WHERE id = ?`,
		strings.TrimSpace(r.Name), r.Description, ingredients, r.Instructions, links, tags, r.PrepTime, r.ImageRef, r.Notes, r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetByID(r.ID)
}

func (s *RecipeStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// MarkCooked records that the recipe was cooked at the given time.
func (s *RecipeStore) MarkCooked(id string, at time.Time) (*model.Recipe, error) {
	result, err := s.db.Exec(`UPDATE recipes SET last_cooked_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return nil, fmt.Errorf("mark cooked: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetByID(id)
}
