package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gaia/internal/diagfmt"
	"gaia/internal/driver"
	"gaia/internal/project"
)

var (
	checkJobs          int
	checkMaxIterations int
	checkJSON          bool
	checkUseCache      bool
	checkCacheDir      string
)

func init() {
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "concurrent item checks (0 = one per CPU)")
	checkCmd.Flags().IntVar(&checkMaxIterations, "max-iterations", 0, "fixpoint iteration cap (0 = default)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit diagnostics as JSON")
	checkCmd.Flags().BoolVar(&checkUseCache, "cache", false, "reuse cached solutions for unchanged items")
	checkCmd.Flags().StringVar(&checkCacheDir, "cache-dir", "", "cache location (default: XDG cache)")
}

var checkCmd = &cobra.Command{
	Use:   "check <items.json>",
	Short: "Analyze lowered items",
	Long:  `Check runs type inference, trait-bound propagation and lifetime analysis over a lowered items file`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		opts := driver.Options{
			Jobs:          checkJobs,
			MaxIterations: checkMaxIterations,
		}
		if n, err := cmd.Flags().GetInt("max-diagnostics"); err == nil {
			opts.MaxDiagnostics = n
		}

		// The manifest supplies defaults; explicit flags win.
		if manifest, ok, err := project.LoadManifest("."); err != nil {
			return err
		} else if ok {
			cfg := manifest.Config.Analysis
			if opts.Jobs == 0 {
				opts.Jobs = cfg.Jobs
			}
			if opts.MaxIterations == 0 {
				opts.MaxIterations = cfg.MaxIterations
			}
			if cfg.Cache && !cmd.Flags().Changed("cache") {
				checkUseCache = true
			}
			if checkCacheDir == "" {
				checkCacheDir = cfg.CacheDir
			}
		}
		if checkUseCache {
			cache, err := driver.OpenCache(checkCacheDir)
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}
			opts.Cache = cache
		}

		items, err := driver.LoadItems(args[0])
		if err != nil {
			return err
		}

		report, err := driver.Check(cmd.Context(), items, opts)
		if err != nil {
			return err
		}

		if checkJSON {
			if err := diagfmt.WriteJSON(os.Stdout, report.Bag); err != nil {
				return err
			}
		} else {
			popts := diagfmt.PrettyOpts{Color: colorEnabled(cmd)}
			diagfmt.Pretty(os.Stdout, report.Bag, popts)
			diagfmt.Summary(os.Stdout, report.Bag, popts)
		}

		if report.HasErrors() {
			os.Exit(1)
		}
		return nil
	},
}

func colorEnabled(cmd *cobra.Command) bool {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return false
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		// fatih/color already detects pipes and NO_COLOR.
		return !color.NoColor
	}
}
