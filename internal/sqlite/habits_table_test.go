// Tests for the habits table accessor.
package sqlite

import (
	"errors"
	"testing"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

// testHabit returns a valid habit for table tests.
func testHabit(name string) *types.Habit {
	return &types.Habit{
		Name:      name,
		Category:  "health",
		Pattern:   types.PatternEveryday,
		StartDate: types.MustParseDay("2024-01-01"),
		Active:    true,
	}
}

func TestHabitsTable_SetGeneratesID(t *testing.T) {
	b := attachTestBackend(t)
	table, err := b.GetTable(types.HabitsTable)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	habit := testHabit("Morning run")
	id, err := table.Set("", habit)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if id == "" {
		t.Fatal("Set should return generated ID")
	}
	if habit.HabitID != id {
		t.Errorf("Habit.HabitID should be %q, got %q", id, habit.HabitID)
	}
	if habit.CreatedAt.IsZero() || habit.UpdatedAt.IsZero() {
		t.Error("Set should stamp CreatedAt and UpdatedAt")
	}
}

func TestHabitsTable_GetRoundTrip(t *testing.T) {
	b := attachTestBackend(t)
	table, _ := b.GetTable(types.HabitsTable)

	endDate := types.MustParseDay("2024-06-30")
	habit := testHabit("Read")
	habit.Pattern = types.PatternCustomDays
	habit.CustomDays = []int{1, 3, 5}
	habit.EndDate = &endDate

	id, err := table.Set("", habit)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entity, err := table.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got := entity.(*types.Habit)
	if got.Name != "Read" || got.Category != "health" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Pattern != types.PatternCustomDays {
		t.Errorf("pattern mismatch: %q", got.Pattern)
	}
	if len(got.CustomDays) != 3 || got.CustomDays[0] != 1 || got.CustomDays[2] != 5 {
		t.Errorf("custom days mismatch: %v", got.CustomDays)
	}
	if got.EndDate == nil || !got.EndDate.Equal(endDate) {
		t.Errorf("end date mismatch: %v", got.EndDate)
	}
	if !got.StartDate.Equal(habit.StartDate) {
		t.Errorf("start date mismatch: %v", got.StartDate)
	}
}

func TestHabitsTable_SetUpdate(t *testing.T) {
	b := attachTestBackend(t)
	table, _ := b.GetTable(types.HabitsTable)

	habit := testHabit("Meditate")
	id, err := table.Set("", habit)
	if err != nil {
		t.Fatalf("Set (create) failed: %v", err)
	}
	created := habit.CreatedAt

	habit.Name = "Meditate longer"
	habit.Active = false
	if _, err := table.Set(id, habit); err != nil {
		t.Fatalf("Set (update) failed: %v", err)
	}

	entity, err := table.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	got := entity.(*types.Habit)
	if got.Name != "Meditate longer" {
		t.Errorf("update not applied: %q", got.Name)
	}
	if got.Active {
		t.Error("active flag not updated")
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v vs %v", got.CreatedAt, created)
	}
}

func TestHabitsTable_SetValidates(t *testing.T) {
	b := attachTestBackend(t)
	table, _ := b.GetTable(types.HabitsTable)

	habit := testHabit("")
	if _, err := table.Set("", habit); !errors.Is(err, types.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}

	habit = testHabit("Bad pattern")
	habit.Pattern = "fortnightly"
	if _, err := table.Set("", habit); !errors.Is(err, types.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}

	if _, err := table.Set("", "not a habit"); !errors.Is(err, types.ErrInvalidData) {
		t.Errorf("expected ErrInvalidData, got %v", err)
	}
}

func TestHabitsTable_GetMissing(t *testing.T) {
	b := attachTestBackend(t)
	table, _ := b.GetTable(types.HabitsTable)

	if _, err := table.Get("no-such-id"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := table.Get(""); !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestHabitsTable_DeleteCascades(t *testing.T) {
	b := attachTestBackend(t)
	habits, _ := b.GetTable(types.HabitsTable)
	records, _ := b.GetTable(types.RecordsTable)

	habit := testHabit("Doomed habit")
	id, err := habits.Set("", habit)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	rec := &types.CompletionRecord{
		HabitID: id,
		Date:    types.MustParseDay("2024-01-02"),
		Status:  types.StatusCompleted,
	}
	if _, err := records.Set("", rec); err != nil {
		t.Fatalf("record Set failed: %v", err)
	}

	if err := habits.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := habits.Get(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("habit still present after delete: %v", err)
	}
	if _, err := records.Get(rec.ID()); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("record survived habit deletion: %v", err)
	}
}

func TestHabitsTable_DeleteMissing(t *testing.T) {
	b := attachTestBackend(t)
	table, _ := b.GetTable(types.HabitsTable)

	if err := table.Delete("no-such-id"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitsTable_Fetch(t *testing.T) {
	b := attachTestBackend(t)
	table, _ := b.GetTable(types.HabitsTable)

	run := testHabit("Run")
	if _, err := table.Set("", run); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	read := testHabit("Read")
	read.Category = "learning"
	read.Active = false
	if _, err := table.Set("", read); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	all, err := table.Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(all))
	}

	active, err := table.Fetch(map[string]any{"active": true})
	if err != nil {
		t.Fatalf("Fetch(active) failed: %v", err)
	}
	if len(active) != 1 || active[0].(*types.Habit).Name != "Run" {
		t.Errorf("active filter mismatch: %+v", active)
	}

	learning, err := table.Fetch(map[string]any{"category": "learning"})
	if err != nil {
		t.Fatalf("Fetch(category) failed: %v", err)
	}
	if len(learning) != 1 || learning[0].(*types.Habit).Name != "Read" {
		t.Errorf("category filter mismatch: %+v", learning)
	}

	if _, err := table.Fetch(map[string]any{"active": "yes"}); !errors.Is(err, types.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}
