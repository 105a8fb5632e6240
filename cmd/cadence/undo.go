// Undo command deletes a ledger record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/engine"
)

var undoDate string

var undoCmd = &cobra.Command{
	Use:   "undo <habit>",
	Short: "Remove the record for a day",
	Long: `Undo deletes the completion or missed record for a day, restoring
it to the unrecorded state. Undoing a day with no record is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecord("undo", args[0], func(l *engine.Ledger, habitID string) error {
			day, err := parseDayFlag(undoDate)
			if err != nil {
				return err
			}
			if err := l.Undo(habitID, day); err != nil {
				return err
			}
			fmt.Println("Cleared", day)
			return nil
		})
	},
}

func init() {
	undoCmd.Flags().StringVar(&undoDate, "date", "", "date YYYY-MM-DD (default: today)")
}
