// Package sqlite implements the SQLite storage backend for Cadence.
package sqlite

// Schema DDL for all tables. The records primary key enforces the
// at-most-one-record-per-(habit, day) ledger invariant at the storage
// layer as well as in the engine.
const (
	createHabits = `CREATE TABLE IF NOT EXISTS habits (
    habit_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    pattern TEXT NOT NULL,
    custom_days TEXT NOT NULL DEFAULT '[]',
    start_date TEXT NOT NULL,
    end_date TEXT,
    active INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createRecords = `CREATE TABLE IF NOT EXISTS records (
    habit_id TEXT NOT NULL,
    date TEXT NOT NULL,
    status TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    recorded_at TEXT NOT NULL,
    PRIMARY KEY (habit_id, date),
    FOREIGN KEY (habit_id) REFERENCES habits(habit_id)
);`
)

// Index DDL for common queries.
const (
	idxHabitsActive   = `CREATE INDEX IF NOT EXISTS idx_habits_active ON habits(active);`
	idxHabitsCategory = `CREATE INDEX IF NOT EXISTS idx_habits_category ON habits(category);`
	idxRecordsHabit   = `CREATE INDEX IF NOT EXISTS idx_records_habit ON records(habit_id);`
	idxRecordsDate    = `CREATE INDEX IF NOT EXISTS idx_records_date ON records(date);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createHabits,
	createRecords,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxHabitsActive,
	idxHabitsCategory,
	idxRecordsHabit,
	idxRecordsDate,
}
