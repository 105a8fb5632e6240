// This file implements the records table accessor for the SQLite backend.
// Records are keyed by the composite "<habitID>/<date>" identifier; the
// underlying table's primary key is (habit_id, date), so a Set for an
// existing key is an upsert, never an append.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

// Compile-time interface check: recordsTable must implement Table.
var _ types.Table = (*recordsTable)(nil)

// recordsTable implements the Table interface for completion records.
type recordsTable struct {
	backend *Backend
}

// Get retrieves a record by its composite ID.
func (rt *recordsTable) Get(id string) (any, error) {
	habitID, day, err := types.ParseRecordID(id)
	if err != nil {
		return nil, types.ErrInvalidID
	}
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	row := rt.backend.db.QueryRow(
		"SELECT habit_id, date, status, notes, recorded_at FROM records WHERE habit_id = ? AND date = ?",
		habitID, day.String(),
	)
	rec, err := hydrateRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting record %s: %w", id, err)
	}
	return rec, nil
}

// Set upserts a record. The ID must be empty or match the record's own
// composite key; records never get generated IDs because the (habit, day)
// key is the identity.
func (rt *recordsTable) Set(id string, data any) (string, error) {
	rec, ok := data.(*types.CompletionRecord)
	if !ok {
		return "", types.ErrInvalidData
	}
	if err := rec.Validate(); err != nil {
		return "", err
	}
	if id != "" && id != rec.ID() {
		return "", types.ErrInvalidID
	}

	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return "", types.ErrStoreDetached
	}

	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	_, err := rt.backend.db.Exec(
		`INSERT INTO records (habit_id, date, status, notes, recorded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(habit_id, date) DO UPDATE SET
		   status = excluded.status,
		   notes = excluded.notes,
		   recorded_at = excluded.recorded_at`,
		rec.HabitID, rec.Date.String(), rec.Status, rec.Notes,
		rec.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("persisting record: %w", err)
	}
	return rec.ID(), nil
}

// Delete removes a record by its composite ID.
// Returns ErrNotFound if no record exists for that (habit, day) key.
func (rt *recordsTable) Delete(id string) error {
	habitID, day, err := types.ParseRecordID(id)
	if err != nil {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if !rt.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := rt.backend.db.Exec(
		"DELETE FROM records WHERE habit_id = ? AND date = ?",
		habitID, day.String(),
	)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deletion of record %s: %w", id, err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries records matching the filter, ordered by date ascending.
// Supported filter keys: habit_id, status (strings) and from, to
// (types.Day or YYYY-MM-DD strings, inclusive bounds).
func (rt *recordsTable) Fetch(filter map[string]any) ([]any, error) {
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if !rt.backend.attached {
		return nil, types.ErrStoreDetached
	}

	query := "SELECT habit_id, date, status, notes, recorded_at FROM records"
	var conditions []string
	var args []any

	for _, key := range []string{"habit_id", "status"} {
		if v, ok := filter[key]; ok {
			s, ok := v.(string)
			if !ok {
				return nil, types.ErrInvalidFilter
			}
			conditions = append(conditions, key+" = ?")
			args = append(args, s)
		}
	}
	if v, ok := filter["from"]; ok {
		day, err := filterDay(v)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, "date >= ?")
		args = append(args, day.String())
	}
	if v, ok := filter["to"]; ok {
		day, err := filterDay(v)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, "date <= ?")
		args = append(args, day.String())
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC"

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		rec, err := hydrateRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating record: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return results, nil
}

// filterDay coerces a filter value to a types.Day.
func filterDay(v any) (types.Day, error) {
	switch d := v.(type) {
	case types.Day:
		return d, nil
	case string:
		day, err := types.ParseDay(d)
		if err != nil {
			return types.Day{}, types.ErrInvalidFilter
		}
		return day, nil
	default:
		return types.Day{}, types.ErrInvalidFilter
	}
}

// hydrateRecord scans one records row into a *types.CompletionRecord.
func hydrateRecord(scan func(dest ...any) error) (*types.CompletionRecord, error) {
	var (
		rec        types.CompletionRecord
		date       string
		recordedAt string
	)
	err := scan(&rec.HabitID, &date, &rec.Status, &rec.Notes, &recordedAt)
	if err != nil {
		return nil, err
	}

	rec.Date, err = types.ParseDay(date)
	if err != nil {
		return nil, err
	}
	rec.RecordedAt, err = time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing recorded_at: %w", err)
	}
	return &rec, nil
}
