package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print glox's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glox version %s\nCommit: %s\nBuilt:  %s\n", Version, GitCommit, BuildDate)
	},
}
