// Archive and delete commands manage the habit lifecycle.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <habit>",
	Short: "Stop scheduling a habit going forward",
	Long: `Archive deactivates a habit. It stops being scheduled from today on,
but its historical records and derived stats remain queryable.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("archive", err)
		}
		defer backend.Detach()

		habit, err := resolveHabit(backend, args[0])
		if err != nil {
			fail("archive", err)
		}

		habit.Archive()
		table, err := backend.GetTable(types.HabitsTable)
		if err != nil {
			fail("archive", err)
		}
		if _, err := table.Set(habit.HabitID, &habit); err != nil {
			fail("archive", err)
		}

		fmt.Println("Archived", habit.Name)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <habit>",
	Short: "Delete a habit and all its records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("delete", err)
		}
		defer backend.Detach()

		habit, err := resolveHabit(backend, args[0])
		if err != nil {
			fail("delete", err)
		}

		table, err := backend.GetTable(types.HabitsTable)
		if err != nil {
			fail("delete", err)
		}
		if err := table.Delete(habit.HabitID); err != nil {
			fail("delete", err)
		}

		fmt.Println("Deleted", habit.Name)
		return nil
	},
}
