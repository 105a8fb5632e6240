// Calendar command renders a month projection for one habit.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/engine"
	"github.com/mesh-intelligence/cadence/pkg/types"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar <habit>",
	Short: "Show a month calendar for a habit",
	Long: `Calendar projects one calendar month of a habit's history. Each day
renders as completed (x), missed (-), unscheduled (.), or future (space).

Example:
  cadence calendar "Morning run"
  cadence calendar "Morning run" --month 2026-07`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("calendar", err)
		}
		defer backend.Detach()

		habit, err := resolveHabit(backend, args[0])
		if err != nil {
			fail("calendar", err)
		}

		hist, err := engine.NewLedger(backend).History(habit.HabitID)
		if err != nil {
			fail("calendar", err)
		}

		now := types.Today()
		first := now.StartOfMonth()
		if calendarMonth != "" {
			first, err = types.ParseDay(calendarMonth + "-01")
			if err != nil {
				fail("calendar", err)
			}
		}

		cells := engine.Project(habit, hist, first, first.EndOfMonth(), now)
		if flagJSON {
			return printJSON(cells)
		}

		fmt.Printf("%s — %s\n", habit.Name, first.Time().Format("January 2006"))
		fmt.Println("Mo Tu We Th Fr Sa Su")
		// Leading pad for the weekday the month starts on.
		for i := 1; i < first.Weekday(); i++ {
			fmt.Print("   ")
		}
		for _, cell := range cells {
			fmt.Printf(" %s ", statusGlyph(cell.Status))
			if cell.Date.Weekday() == 7 {
				fmt.Println()
			}
		}
		fmt.Println()
		return nil
	},
}

// statusGlyph maps a projection status to its single-character cell.
func statusGlyph(status string) string {
	switch status {
	case types.StatusCompleted:
		return "x"
	case types.StatusMissed:
		return "-"
	case types.StatusNotScheduled:
		return "."
	default:
		return " "
	}
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month YYYY-MM (default: current month)")
}
