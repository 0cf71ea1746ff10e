package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/supper/internal/model"
)

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

func scanPantryItem(scanner interface{ Scan(...any) error }) (*model.PantryItem, error) {
	var p model.PantryItem
	var category string
	var expiresOn sql.NullString

	err := scanner.Scan(
		&p.ID, &p.Name, &p.Quantity, &p.Unit, &category,
		&expiresOn, &p.AddedAt, &p.Notes,
	)
	if err != nil {
		return nil, err
	}

	p.Category = model.PantryCategory(category)
	if p.ExpiresOn, err = parseNullDate(expiresOn); err != nil {
		return nil, err
	}
	return &p, nil
}

const pantryCols = `id, name, quantity, unit, category, expires_on, added_at, notes`

// Create inserts item, minting an ID and added time when they are unset.
// An empty category is stored as "other".
func (s *PantryStore) Create(item model.PantryItem) (*model.PantryItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}
	if item.Category == "" {
		item.Category = model.CategoryOther
	}

	_, err := s.db.Exec(
		`INSERT INTO pantry_items (`+pantryCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, strings.TrimSpace(item.Name), item.Quantity, item.Unit, string(item.Category),
		nullDate(item.ExpiresOn), item.AddedAt, item.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert pantry item: %w", err)
	}
	return s.GetByID(item.ID)
}

func (s *PantryStore) GetByID(id string) (*model.PantryItem, error) {
	row := s.db.QueryRow(`SELECT `+pantryCols+` FROM pantry_items WHERE id = ?`, id)
	item, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}
	return item, nil
}

func (s *PantryStore) List() ([]model.PantryItem, error) {
	return s.query(`SELECT ` + pantryCols + ` FROM pantry_items ORDER BY category ASC, name COLLATE NOCASE ASC`)
}

// ListExpiring returns the items that expire between today and today plus
// days, inclusive, soonest first.
func (s *PantryStore) ListExpiring(today time.Time, days int) ([]model.PantryItem, error) {
	from := formatDate(today)
	to := formatDate(today.AddDate(0, 0, max(days, 0)))
	return s.query(
		`SELECT `+pantryCols+` FROM pantry_items WHERE expires_on IS NOT NULL AND expires_on BETWEEN ? AND ? ORDER BY expires_on ASC, name COLLATE NOCASE ASC`,
		from, to,
	)
}

func (s *PantryStore) query(q string, args ...any) ([]model.PantryItem, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list pantry items: %w", err)
	}
	defer rows.Close()

	var items []model.PantryItem
	for rows.Next() {
		item, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Update overwrites the editable fields of the item with item.ID. It returns
// nil if no such item exists.
func (s *PantryStore) Update(item model.PantryItem) (*model.PantryItem, error) {
	if item.Category == "" {
		item.Category = model.CategoryOther
	}
	result, err := s.db.Exec(
		`UPDATE pantry_items SET name = ?, quantity = ?, unit = ?, category = ?, expires_on = ?, notes = ? WHERE id = ?`,
		strings.TrimSpace(item.Name), item.Quantity, item.Unit, string(item.Category), nullDate(item.ExpiresOn), item.Notes, item.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update pantry item: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, nil
	}
	return s.GetByID(item.ID)
}

func (s *PantryStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	return nil
}
