// List command queries habits with optional filtering.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list [filter...]",
	Short: "List habits with optional filter",
	Long: `List queries habits with optional filters.

Filters are specified as key=value pairs. Multiple filters are ANDed
together. An empty filter returns all habits.

Supported keys: pattern, category, name, active.

Example:
  cadence list
  cadence list pattern=weekdays
  cadence list category=health active=true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := make(map[string]any)
		for _, arg := range args {
			parts := strings.SplitN(arg, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid filter %q (expected key=value)", arg)
			}
			if parts[0] == "active" {
				active, err := strconv.ParseBool(parts[1])
				if err != nil {
					return fmt.Errorf("invalid filter %q (active expects true/false)", arg)
				}
				filter[parts[0]] = active
				continue
			}
			filter[parts[0]] = parts[1]
		}

		backend, err := attachBackend()
		if err != nil {
			fail("list", err)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.HabitsTable)
		if err != nil {
			fail("list", err)
		}

		entities, err := table.Fetch(filter)
		if err != nil {
			fail("list", err)
		}

		if flagJSON {
			return printJSON(entities)
		}
		for _, entity := range entities {
			habit, ok := entity.(*types.Habit)
			if !ok {
				continue
			}
			state := "active"
			if !habit.Active {
				state = "archived"
			}
			fmt.Printf("%s  %-20s %-15s %s\n", habit.HabitID, habit.Name, habit.Pattern, state)
		}
		return nil
	},
}
