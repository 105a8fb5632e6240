// Package integration provides CLI integration tests for cadence.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// cadenceBin is the path to the built cadence binary.
	cadenceBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// SetCadenceBin sets the path to the cadence binary (called from TestMain).
func SetCadenceBin(path string) {
	cadenceBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config and
// data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build cadence: %v", buildErr)
	}
	if cadenceBin == "" {
		t.Fatal("cadence binary not built (cadenceBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// CmdResult holds the result of a cadence command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCadence executes the cadence CLI with the given arguments.
func (e *TestEnv) RunCadence(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(cadenceBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run cadence: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunCadence executes the cadence CLI and fails the test if it
// returns non-zero.
func (e *TestEnv) MustRunCadence(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunCadence(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("cadence %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Habit mirrors the habit entity for JSON parsing.
type Habit struct {
	HabitID    string  `json:"HabitID"`
	Name       string  `json:"Name"`
	Category   string  `json:"Category"`
	Pattern    string  `json:"Pattern"`
	CustomDays []int   `json:"CustomDays"`
	StartDate  string  `json:"StartDate"`
	EndDate    *string `json:"EndDate"`
	Active     bool    `json:"Active"`
}

// TodayEntry mirrors one row of `cadence today --json`.
type TodayEntry struct {
	HabitID string `json:"habit_id"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Streak  int    `json:"streak"`
	Date    string `json:"date"`
}

// Bucket mirrors one statistics bucket.
type Bucket struct {
	Label                 string  `json:"label"`
	Start                 string  `json:"start"`
	End                   string  `json:"end"`
	ScheduledCount        int     `json:"scheduled_count"`
	CompletedCount        int     `json:"completed_count"`
	CompletionRatePercent float64 `json:"completion_rate_percent"`
}

// HabitStats mirrors `cadence stats --json`.
type HabitStats struct {
	HabitID        string   `json:"habit_id"`
	Name           string   `json:"name"`
	AsOf           string   `json:"as_of"`
	CurrentStreak  int      `json:"current_streak"`
	LongestStreak  int      `json:"longest_streak"`
	CompletionRate float64  `json:"completion_rate"`
	MissedCount    int      `json:"missed_count"`
	Weekly         []Bucket `json:"weekly"`
	Monthly        []Bucket `json:"monthly"`
	WeeklyTrend    string   `json:"weekly_trend"`
	MonthlyTrend   string   `json:"monthly_trend"`
}

// DayStatus mirrors one cell of `cadence calendar --json`.
type DayStatus struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

// CategoryStats mirrors one category row of the dashboard rollup.
type CategoryStats struct {
	Category       string `json:"category"`
	ScheduledToday int    `json:"scheduled_today"`
	CompletedToday int    `json:"completed_today"`
}

// Rollup mirrors `cadence dashboard --json`.
type Rollup struct {
	Date            string          `json:"date"`
	HabitCount      int             `json:"habit_count"`
	ScheduledToday  int             `json:"scheduled_today"`
	CompletedToday  int             `json:"completed_today"`
	BestStreak      int             `json:"best_streak"`
	BestStreakHabit string          `json:"best_streak_habit"`
	AverageStreak   float64         `json:"average_streak"`
	Categories      []CategoryStats `json:"categories"`
}
