// Done and miss commands write completion records to the ledger.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/engine"
)

var (
	recordDate  string
	recordNotes string
)

var doneCmd = &cobra.Command{
	Use:   "done <habit>",
	Short: "Record a habit as completed",
	Long: `Done records a completed day for a habit, identified by ID or name.
Defaults to today; use --date for another day. Recording the same day
twice replaces the earlier record.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecord("done", args[0], func(l *engine.Ledger, habitID string) error {
			day, err := parseDayFlag(recordDate)
			if err != nil {
				return err
			}
			if err := l.RecordCompletion(habitID, day, recordNotes); err != nil {
				return err
			}
			fmt.Println("Completed", day)
			return nil
		})
	},
}

var missCmd = &cobra.Command{
	Use:   "miss <habit>",
	Short: "Record a habit as missed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecord("miss", args[0], func(l *engine.Ledger, habitID string) error {
			day, err := parseDayFlag(recordDate)
			if err != nil {
				return err
			}
			if err := l.RecordMissed(habitID, day, recordNotes); err != nil {
				return err
			}
			fmt.Println("Missed", day)
			return nil
		})
	},
}

// runRecord attaches the backend, resolves the habit, and runs a ledger
// write with CLI-conventional error handling.
func runRecord(name, ref string, fn func(*engine.Ledger, string) error) error {
	backend, err := attachBackend()
	if err != nil {
		fail(name, err)
	}
	defer backend.Detach()

	habit, err := resolveHabit(backend, ref)
	if err != nil {
		fail(name, err)
	}

	if err := fn(engine.NewLedger(backend), habit.HabitID); err != nil {
		fail(name, err)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{doneCmd, missCmd} {
		cmd.Flags().StringVar(&recordDate, "date", "", "date YYYY-MM-DD (default: today)")
		cmd.Flags().StringVar(&recordNotes, "notes", "", "optional note")
	}
}
