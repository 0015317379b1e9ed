// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/methanohunt/cmd/methanohunt/config"
	"github.com/AleutianAI/methanohunt/pkg/logging"
)

const version = "0.2.0"

// --- Global Command Variables ---
var (
	inputPatterns []string
	databasePath  string
	outputPath    string
	chartEnabled  bool
	noChart       bool
	precision     int
	concurrency   int
	jsonOutput    bool
	quietMode     bool
	logLevel      string

	// runLogger is built in PersistentPreRunE and shared by all commands.
	runLogger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "methanohunt",
		Short: "Summarize relative abundance of methane cyclers from taxonomic profiles",
		Long: `MethanoHunt matches taxonomic-profile rows (singleM or compatible
long-format tax.tsv files) against a curated database of known
methane-cycler lineages and reports per-sample relative abundance by
functional classification.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			level := config.Global.Logging.Level
			if logLevel != "" {
				level = logLevel
			}
			runLogger = logging.New(logging.Config{
				Level:   logging.ParseLevel(level),
				LogDir:  config.Global.Logging.Dir,
				Service: "cli",
				Quiet:   quietMode,
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if runLogger != nil {
				runLogger.Close()
			}
		},
	}

	summarizeCmd = &cobra.Command{
		Use:   "summarize",
		Short: "Classify and aggregate profile files into a sample x classification table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exit(runSummarize(cmd))
		},
	}

	// --- Database Administration ---
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Inspect the methane-cycler classifier database",
	}
	dbCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate the database file and report its contents",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			exit(runDBCheck(cmd))
		},
	}
	dbLookupCmd = &cobra.Command{
		Use:   "lookup [taxonomy]",
		Short: "Classify a single taxonomy string against the database",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			exit(runDBLookup(cmd, args[0]))
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the methanohunt version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("methanohunt %s\n", version)
		},
	}
)

// exit maps a non-zero command result to a process exit. Success returns
// normally so deferred cleanup in main still runs.
func exit(code int) {
	if code != 0 {
		os.Exit(code)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON to stdout")
	rootCmd.PersistentFlags().BoolVar(&quietMode, "quiet", false, "Suppress log output; rely on exit codes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "database", "", "Path to the methane-cycler database TSV (default from config)")

	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringArrayVarP(&inputPatterns, "input", "i", nil,
		"Input tax.tsv files (repeatable; supports glob, e.g. '*.tax.tsv')")
	summarizeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output TSV file")
	summarizeCmd.Flags().BoolVar(&chartEnabled, "chart", false, "Generate an interactive HTML chart next to the output TSV")
	summarizeCmd.Flags().BoolVar(&noChart, "no-chart", false, "Disable chart generation even if enabled in config")
	summarizeCmd.Flags().IntVar(&precision, "precision", -1, "Decimal places in the output table (default from config)")
	summarizeCmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel input files to process (default from config)")
	summarizeCmd.MarkFlagRequired("input")
	summarizeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(dbCmd)
	dbCmd.AddCommand(dbCheckCmd)
	dbCmd.AddCommand(dbLookupCmd)

	rootCmd.AddCommand(versionCmd)
}

// resolveDatabase applies the flag-over-config precedence for the database path.
func resolveDatabase() string {
	if databasePath != "" {
		return databasePath
	}
	return config.Global.Database
}
