package main

import (
	"os"

	"github.com/spf13/cobra"

	"gaia/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "gaia",
	Short: "Gaia semantic analyzer",
	Long:  `Gaia checks lowered program items: type inference, trait bounds and lifetimes`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
