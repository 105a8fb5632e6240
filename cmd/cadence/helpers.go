// Shared helpers for cadence CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/cadence/internal/sqlite"
	"github.com/mesh-intelligence/cadence/pkg/engine"
	"github.com/mesh-intelligence/cadence/pkg/types"
)

// attachBackend resolves the data directory and attaches a SQLite backend.
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}

	backend := sqlite.NewBackend()
	err = backend.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}
	return backend, nil
}

// resolveHabit finds a habit by ID or by exact name. ID match wins.
func resolveHabit(store types.Store, ref string) (types.Habit, error) {
	table, err := store.GetTable(types.HabitsTable)
	if err != nil {
		return types.Habit{}, err
	}

	if entity, err := table.Get(ref); err == nil {
		if habit, ok := entity.(*types.Habit); ok {
			return *habit, nil
		}
	}

	entities, err := table.Fetch(map[string]any{"name": ref})
	if err != nil {
		return types.Habit{}, err
	}
	if len(entities) == 0 {
		return types.Habit{}, fmt.Errorf("%w: %s", types.ErrNotFound, ref)
	}
	habit, ok := entities[0].(*types.Habit)
	if !ok {
		return types.Habit{}, types.ErrInvalidData
	}
	return *habit, nil
}

// parseDayFlag parses a --date value, defaulting to today when empty.
func parseDayFlag(value string) (types.Day, error) {
	if value == "" {
		return types.Today(), nil
	}
	return types.ParseDay(value)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// exitCode maps an error to the CLI exit code convention: user mistakes
// (unknown habit, bad date, unscheduled day) exit 1, everything else 2.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrNotFound),
		errors.Is(err, engine.ErrNotScheduled),
		errors.Is(err, engine.ErrOutOfRange),
		errors.Is(err, engine.ErrFutureDate),
		errors.Is(err, types.ErrInvalidPattern),
		errors.Is(err, types.ErrEmptyCustomDays),
		errors.Is(err, types.ErrInvalidWeekday),
		errors.Is(err, types.ErrInvalidDateRange),
		errors.Is(err, types.ErrInvalidName):
		return exitUserError
	default:
		return exitSysError
	}
}

// fail prints the error and exits with the mapped exit code.
func fail(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, err)
	os.Exit(exitCode(err))
}
