// This file implements the habits table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

// Compile-time interface check: habitsTable must implement Table.
var _ types.Table = (*habitsTable)(nil)

// habitsTable implements the Table interface for the habit entity type.
// Each operation hydrates/dehydrates between SQLite rows and *types.Habit
// structs.
type habitsTable struct {
	backend *Backend
}

// Get retrieves a habit by ID and hydrates the row to *types.Habit.
func (ht *habitsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ht.backend.mu.RLock()
	defer ht.backend.mu.RUnlock()
	if !ht.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := ht.backend.db.QueryRow(
		"SELECT habit_id, name, category, pattern, custom_days, start_date, end_date, active, created_at, updated_at FROM habits WHERE habit_id = ?",
		id,
	)
	habit, err := hydrateHabit(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting habit %s: %w", id, err)
	}
	return habit, nil
}

// Set persists a habit. If id is empty, generates a UUID v7 and creates
// the habit with creation timestamps. If id is provided, updates the
// existing habit. The habit is validated before anything is written.
func (ht *habitsTable) Set(id string, data any) (string, error) {
	habit, ok := data.(*types.Habit)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := habit.Validate(); err != nil {
		return "", err
	}

	ht.backend.mu.Lock()
	defer ht.backend.mu.Unlock()
	if !ht.backend.attached {
		return "", types.ErrStoreDetached
	}

	now := time.Now().UTC()
	if id == "" {
		newID, err := newUUID()
		if err != nil {
			return "", err
		}
		habit.HabitID = newID
		habit.CreatedAt = now
		id = newID
	} else {
		habit.HabitID = id
	}
	habit.UpdatedAt = now
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = now
	}

	customDays, err := json.Marshal(habit.CustomDays)
	if err != nil {
		return "", fmt.Errorf("encoding custom days: %w", err)
	}

	var endDate any
	if habit.EndDate != nil {
		endDate = habit.EndDate.String()
	}

	_, err = ht.backend.db.Exec(
		`INSERT INTO habits (habit_id, name, category, pattern, custom_days, start_date, end_date, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(habit_id) DO UPDATE SET
		   name = excluded.name,
		   category = excluded.category,
		   pattern = excluded.pattern,
		   custom_days = excluded.custom_days,
		   start_date = excluded.start_date,
		   end_date = excluded.end_date,
		   active = excluded.active,
		   updated_at = excluded.updated_at`,
		id, habit.Name, habit.Category, habit.Pattern, string(customDays),
		habit.StartDate.String(), endDate, boolToInt(habit.Active),
		habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("persisting habit: %w", err)
	}

	return id, nil
}

// Delete removes a habit and cascades to its completion records.
func (ht *habitsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	ht.backend.mu.Lock()
	defer ht.backend.mu.Unlock()
	if !ht.backend.attached {
		return types.ErrStoreDetached
	}

	var exists int
	err := ht.backend.db.QueryRow(
		"SELECT 1 FROM habits WHERE habit_id = ?", id,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ErrNotFound
		}
		return fmt.Errorf("checking habit existence: %w", err)
	}

	tx, err := ht.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM records WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("deleting habit records: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM habits WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("deleting habit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing habit deletion: %w", err)
	}
	return nil
}

// Fetch queries habits matching the filter, ordered by created_at DESC.
// Supported filter keys: pattern, category, name (strings) and active
// (bool).
func (ht *habitsTable) Fetch(filter map[string]any) ([]any, error) {
	ht.backend.mu.RLock()
	defer ht.backend.mu.RUnlock()
	if !ht.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT habit_id, name, category, pattern, custom_days, start_date, end_date, active, created_at, updated_at FROM habits"
	var conditions []string
	var args []any

	for _, key := range []string{"pattern", "category", "name"} {
		if v, ok := filter[key]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, key+" = ?")
			args = append(args, s)
		}
	}
	if v, ok := filter["active"]; ok {
		active, ok := v.(bool)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "active = ?")
		args = append(args, boolToInt(active))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := ht.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching habits: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		habit, err := hydrateHabit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating habit: %w", err)
		}
		results = append(results, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating habits: %w", err)
	}
	return results, nil
}

// hydrateHabit scans one habits row into a *types.Habit.
func hydrateHabit(scan func(dest ...any) error) (*types.Habit, error) {
	var (
		habit      types.Habit
		customDays string
		startDate  string
		endDate    sql.NullString
		active     int
		createdAt  string
		updatedAt  string
	)
	err := scan(&habit.HabitID, &habit.Name, &habit.Category, &habit.Pattern,
		&customDays, &startDate, &endDate, &active, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(customDays), &habit.CustomDays); err != nil {
		return nil, fmt.Errorf("decoding custom days: %w", err)
	}
	habit.StartDate, err = types.ParseDay(startDate)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		day, err := types.ParseDay(endDate.String)
		if err != nil {
			return nil, err
		}
		habit.EndDate = &day
	}
	habit.Active = active != 0
	habit.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	habit.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &habit, nil
}

// boolToInt converts a bool to the 0/1 form SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
