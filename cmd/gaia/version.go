package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gaia/internal/version"
)

var versionShowFull bool

func init() {
	versionCmd.Flags().BoolVar(&versionShowFull, "full", false, "show every recorded bit of build metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show gaia build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("gaia %s\n", version.Version)
		if versionShowFull {
			if version.GitCommit != "" {
				fmt.Printf("commit: %s\n", version.GitCommit)
			}
			if version.BuildDate != "" {
				fmt.Printf("built:  %s\n", version.BuildDate)
			}
		}
		return nil
	},
}
