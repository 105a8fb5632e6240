// Dashboard command aggregates today's status across all habits.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/engine"
	"github.com/mesh-intelligence/cadence/pkg/types"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show a cross-habit summary for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("dashboard", err)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.HabitsTable)
		if err != nil {
			fail("dashboard", err)
		}
		entities, err := table.Fetch(nil)
		if err != nil {
			fail("dashboard", err)
		}

		ledger := engine.NewLedger(backend)
		entries := make([]engine.HabitHistory, 0, len(entities))
		for _, entity := range entities {
			habit, ok := entity.(*types.Habit)
			if !ok {
				continue
			}
			hist, err := ledger.History(habit.HabitID)
			if err != nil {
				fail("dashboard", err)
			}
			entries = append(entries, engine.HabitHistory{Habit: *habit, History: hist})
		}

		rollup := engine.DashboardRollup(entries, types.Today())
		if flagJSON {
			return printJSON(rollup)
		}

		fmt.Println("Dashboard for", rollup.Date)
		fmt.Printf("  habits:        %d\n", rollup.HabitCount)
		fmt.Printf("  today:         %d/%d completed\n", rollup.CompletedToday, rollup.ScheduledToday)
		if rollup.BestStreakHabit != "" {
			fmt.Printf("  best streak:   %d (%s)\n", rollup.BestStreak, rollup.BestStreakHabit)
		}
		fmt.Printf("  avg streak:    %.1f\n", rollup.AverageStreak)
		for _, cs := range rollup.Categories {
			label := cs.Category
			if label == "" {
				label = "(uncategorized)"
			}
			fmt.Printf("  %-14s %d/%d\n", label, cs.CompletedToday, cs.ScheduledToday)
		}
		return nil
	},
}
