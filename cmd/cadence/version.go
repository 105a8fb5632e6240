// Version command for the cadence CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cadence/pkg/cadence"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cadence version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cadence", cadence.Version)
	},
}
