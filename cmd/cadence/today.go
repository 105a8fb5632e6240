// Today command lists habits scheduled for the current day.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/engine"
	"github.com/mesh-intelligence/cadence/pkg/types"
)

// todayEntry is one row of the today listing.
type todayEntry struct {
	HabitID string    `json:"habit_id"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Streak  int       `json:"streak"`
	Date    types.Day `json:"date"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show habits scheduled today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("today", err)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.HabitsTable)
		if err != nil {
			fail("today", err)
		}
		entities, err := table.Fetch(map[string]any{"active": true})
		if err != nil {
			fail("today", err)
		}

		ledger := engine.NewLedger(backend)
		now := types.Today()
		entries := []todayEntry{}
		for _, entity := range entities {
			habit, ok := entity.(*types.Habit)
			if !ok {
				continue
			}
			if !engine.ScheduledOn(*habit, now, now) {
				continue
			}

			status, err := ledger.Status(habit.HabitID, now)
			if err != nil {
				fail("today", err)
			}
			hist, err := ledger.History(habit.HabitID)
			if err != nil {
				fail("today", err)
			}
			entries = append(entries, todayEntry{
				HabitID: habit.HabitID,
				Name:    habit.Name,
				Status:  status,
				Streak:  engine.CurrentStreak(*habit, hist, now),
				Date:    now,
			})
		}

		if flagJSON {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("Nothing scheduled today")
			return nil
		}
		for _, e := range entries {
			marker := " "
			switch e.Status {
			case types.StatusCompleted:
				marker = "x"
			case types.StatusMissed:
				marker = "-"
			}
			fmt.Printf("[%s] %-20s streak %d\n", marker, e.Name, e.Streak)
		}
		return nil
	},
}
