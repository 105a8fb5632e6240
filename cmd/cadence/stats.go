// Stats command reports derived statistics for one habit.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/engine"
	"github.com/mesh-intelligence/cadence/pkg/types"
)

var (
	statsWeeks  int
	statsMonths int
)

// habitStats is the full derived view for one habit. Every field is
// recomputed from the ledger at read time.
type habitStats struct {
	HabitID        string          `json:"habit_id"`
	Name           string          `json:"name"`
	AsOf           types.Day       `json:"as_of"`
	CurrentStreak  int             `json:"current_streak"`
	LongestStreak  int             `json:"longest_streak"`
	CompletionRate float64         `json:"completion_rate"`
	MissedCount    int             `json:"missed_count"`
	Weekly         []engine.Bucket `json:"weekly"`
	Monthly        []engine.Bucket `json:"monthly"`
	WeeklyTrend    string          `json:"weekly_trend"`
	MonthlyTrend   string          `json:"monthly_trend"`
}

var statsCmd = &cobra.Command{
	Use:   "stats <habit>",
	Short: "Show streaks, completion rate, and trends for a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail("stats", err)
		}
		defer backend.Detach()

		habit, err := resolveHabit(backend, args[0])
		if err != nil {
			fail("stats", err)
		}

		hist, err := engine.NewLedger(backend).History(habit.HabitID)
		if err != nil {
			fail("stats", err)
		}

		now := types.Today()
		weekly := engine.WeeklyBuckets(habit, hist, statsWeeks, now, cfgWeekStart)
		monthly := engine.MonthlyBuckets(habit, hist, statsMonths, now)
		stats := habitStats{
			HabitID:        habit.HabitID,
			Name:           habit.Name,
			AsOf:           now,
			CurrentStreak:  engine.CurrentStreak(habit, hist, now),
			LongestStreak:  engine.LongestStreak(habit, hist, now),
			CompletionRate: engine.CompletionRate(habit, hist, now),
			MissedCount:    engine.MissedCount(habit, hist, now),
			Weekly:         weekly,
			Monthly:        monthly,
			WeeklyTrend:    engine.Trend(weekly, cfgTrendThreshold),
			MonthlyTrend:   engine.Trend(monthly, cfgTrendThreshold),
		}

		if flagJSON {
			return printJSON(stats)
		}

		fmt.Println(stats.Name)
		fmt.Printf("  current streak:  %d\n", stats.CurrentStreak)
		fmt.Printf("  longest streak:  %d\n", stats.LongestStreak)
		fmt.Printf("  completion rate: %.1f%%\n", stats.CompletionRate*100)
		fmt.Printf("  missed days:     %d\n", stats.MissedCount)
		fmt.Printf("  weekly trend:    %s\n", stats.WeeklyTrend)
		for _, b := range stats.Weekly {
			fmt.Printf("    %s  %d/%d (%.0f%%)\n", b.Label, b.CompletedCount, b.ScheduledCount, b.CompletionRatePercent)
		}
		fmt.Printf("  monthly trend:   %s\n", stats.MonthlyTrend)
		for _, b := range stats.Monthly {
			fmt.Printf("    %s  %d/%d (%.0f%%)\n", b.Label, b.CompletedCount, b.ScheduledCount, b.CompletionRatePercent)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsWeeks, "weeks", 4, "number of weekly buckets")
	statsCmd.Flags().IntVar(&statsMonths, "months", 3, "number of monthly buckets")
}
