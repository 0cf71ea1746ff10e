package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/supper/internal/model"
)

// PlanStore keeps plans in two tables: one row per plan in plans and one row
// per day in plan_days. At most one plan is flagged current.
type PlanStore struct {
	db *sql.DB
}

func NewPlanStore(db *sql.DB) *PlanStore {
	return &PlanStore{db: db}
}

const planCols = `id, week_start, duration_unit, duration_count, created_at, modified_at`

const planDayCols = `idx, date, kind, recipe_id, leftover_from, note, locked`

func scanPlan(scanner interface{ Scan(...any) error }) (*model.Plan, error) {
	var p model.Plan
	var weekStart, unit string

	err := scanner.Scan(&p.ID, &weekStart, &unit, &p.DurationCount, &p.CreatedAt, &p.ModifiedAt)
	if err != nil {
		return nil, err
	}

	p.DurationUnit = model.DurationUnit(unit)
	if p.WeekStartDate, err = parseDate(weekStart); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPlanDay(scanner interface{ Scan(...any) error }) (int, *model.DaySlot, error) {
	var d model.DaySlot
	var idx, locked int
	var date, kind string
	var recipeID, leftoverFrom sql.NullString

	err := scanner.Scan(&idx, &date, &kind, &recipeID, &leftoverFrom, &d.Note, &locked)
	if err != nil {
		return 0, nil, err
	}

	d.Kind = model.SlotKind(kind)
	d.RecipeID = recipeID.String
	d.Locked = locked != 0
	if d.Date, err = parseDate(date); err != nil {
		return 0, nil, err
	}
	if d.LeftoverFrom, err = parseNullDate(leftoverFrom); err != nil {
		return 0, nil, err
	}
	return idx, &d, nil
}

// Save writes p and replaces its days in one transaction. The current flag
// is left as it was.
func (s *PlanStore) Save(p *model.Plan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save plan: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO plans (`+planCols+`) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			week_start = excluded.week_start,
			duration_unit = excluded.duration_unit,
			duration_count = excluded.duration_count,
			modified_at = excluded.modified_at`,
		p.ID, formatDate(p.WeekStartDate), string(p.DurationUnit), p.DurationCount, p.CreatedAt, p.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert plan: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM plan_days WHERE plan_id = ?`, p.ID); err != nil {
		return fmt.Errorf("clear plan days: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO plan_days (plan_id, ` + planDayCols + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare plan day: %w", err)
	}
	defer stmt.Close()

	for i, d := range p.Days {
		var recipeID sql.NullString
		if d.RecipeID != "" {
			recipeID = sql.NullString{String: d.RecipeID, Valid: true}
		}
		_, err := stmt.Exec(p.ID, i, formatDate(d.Date), string(d.Kind), recipeID, nullDate(d.LeftoverFrom), d.Note, boolInt(d.Locked))
		if err != nil {
			return fmt.Errorf("insert plan day %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save plan: %w", err)
	}
	return nil
}

// GetByID returns the plan with its days in order, or nil if it does not
// exist.
func (s *PlanStore) GetByID(id string) (*model.Plan, error) {
	row := s.db.QueryRow(`SELECT `+planCols+` FROM plans WHERE id = ?`, id)
	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	rows, err := s.db.Query(`SELECT `+planDayCols+` FROM plan_days WHERE plan_id = ? ORDER BY idx ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}
	defer rows.Close()

	p.Days = []model.DaySlot{}
	for rows.Next() {
		idx, d, err := scanPlanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan day: %w", err)
		}
		if idx != len(p.Days) {
			return nil, fmt.Errorf("plan %s: day %d out of sequence", id, idx)
		}
		p.Days = append(p.Days, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}
	return p, nil
}

// GetCurrent returns the current plan, or nil if none is set.
func (s *PlanStore) GetCurrent() (*model.Plan, error) {
	var id string
	err := s.db.QueryRow(`SELECT id FROM plans WHERE is_current = 1 LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current plan: %w", err)
	}
	return s.GetByID(id)
}

// SetCurrent flags the plan as current and clears the flag on every other
// plan. It reports false if the plan does not exist.
func (s *PlanStore) SetCurrent(id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin set current: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE plans SET is_current = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("set current plan: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return false, nil
	}
	if _, err := tx.Exec(`UPDATE plans SET is_current = 0 WHERE id != ?`, id); err != nil {
		return false, fmt.Errorf("clear current plan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit set current: %w", err)
	}
	return true, nil
}

func (s *PlanStore) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete plan: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM plan_days WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("delete plan days: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	return tx.Commit()
}
