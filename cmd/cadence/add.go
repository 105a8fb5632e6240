// Add command creates a new habit.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/types"
)

var (
	addName     string
	addCategory string
	addPattern  string
	addDays     string
	addStart    string
	addEnd      string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new habit",
	Long: `Add creates a new habit with a recurrence pattern.

Patterns: everyday, weekdays, weekends, weekly, custom_days, every_other_day.
The custom_days pattern requires --days with ISO weekday ordinals
(1=Monday .. 7=Sunday), e.g. --days 1,3,5.

Example:
  cadence add --name "Morning run" --pattern custom_days --days 1,3,5
  cadence add --name Read --pattern everyday --category learning`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if addName == "" {
			fmt.Fprintln(os.Stderr, "add: --name is required")
			os.Exit(exitUserError)
		}

		startDate := types.Today()
		if addStart != "" {
			var err error
			startDate, err = types.ParseDay(addStart)
			if err != nil {
				fail("add", err)
			}
		}

		habit := &types.Habit{
			Name:      addName,
			Category:  addCategory,
			Pattern:   addPattern,
			StartDate: startDate,
			Active:    true,
		}

		if addEnd != "" {
			endDate, err := types.ParseDay(addEnd)
			if err != nil {
				fail("add", err)
			}
			habit.EndDate = &endDate
		}

		if addDays != "" {
			for _, part := range strings.Split(addDays, ",") {
				ordinal, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					fail("add", types.ErrInvalidWeekday)
				}
				habit.CustomDays = append(habit.CustomDays, ordinal)
			}
		}

		backend, err := attachBackend()
		if err != nil {
			fail("add", err)
		}
		defer backend.Detach()

		table, err := backend.GetTable(types.HabitsTable)
		if err != nil {
			fail("add", err)
		}

		id, err := table.Set("", habit)
		if err != nil {
			fail("add", err)
		}

		if flagJSON {
			return printJSON(habit)
		}
		fmt.Println("Created habit", id)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addName, "name", "", "habit name (required)")
	addCmd.Flags().StringVar(&addCategory, "category", "", "grouping category")
	addCmd.Flags().StringVar(&addPattern, "pattern", types.PatternEveryday, "recurrence pattern")
	addCmd.Flags().StringVar(&addDays, "days", "", "comma-separated ISO weekdays for custom_days")
	addCmd.Flags().StringVar(&addStart, "start", "", "start date YYYY-MM-DD (default: today)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "end date YYYY-MM-DD (default: open-ended)")
}
