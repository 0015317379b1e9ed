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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/methanohunt/cmd/methanohunt/config"
	"github.com/AleutianAI/methanohunt/services/chart"
	"github.com/AleutianAI/methanohunt/services/methane"
)

// runSummarize executes the full pipeline: classify every input profile
// against the database, write the sample x classification TSV, and optionally
// render the companion HTML chart.
//
// Exit codes: 0 all inputs processed, 1 run completed but some inputs were
// skipped, 2 the run failed outright.
func runSummarize(cmd *cobra.Command) int {
	start := time.Now()
	cfg := OutputConfig{JSON: jsonOutput, Quiet: quietMode}

	prec := precision
	if prec < 0 {
		prec = config.Global.Output.Precision
	}
	conc := concurrency
	if conc < 1 {
		conc = config.Global.Run.Concurrency
	}
	wantChart := config.Global.Output.Chart || chartEnabled
	if noChart {
		wantChart = false
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := methane.Run(ctx, methane.Options{
		Inputs:       inputPatterns,
		DatabasePath: resolveDatabase(),
		Concurrency:  conc,
		Logger:       runLogger,
	})
	if err != nil {
		return OutputResult(cfg, "summarize", "", start, nil, false, err)
	}
	log := runLogger.With("run_id", report.RunID)

	if err := report.Summary.SaveTSV(outputPath, prec); err != nil {
		return OutputResult(cfg, "summarize", report.RunID, start,
			nil, false, fmt.Errorf("writing %s: %w", outputPath, err))
	}
	log.Info("summary written", "output", outputPath)

	chartPath := ""
	if wantChart {
		chartPath = chart.HTMLPathFor(outputPath)
		if err := chart.WritePage(chartPath, report.Summary, report.Database); err != nil {
			// The table is the primary artifact; a chart failure is a warning,
			// not a run failure.
			log.Warn("chart generation failed", "chart", chartPath, "error", err)
			chartPath = ""
		} else {
			log.Info("chart written", "chart", chartPath)
		}
	}

	data := SummarizeResult{
		Output:    outputPath,
		Chart:     chartPath,
		Samples:   len(report.Summary.Samples()),
		Columns:   len(report.Summary.Classifications()),
		Processed: len(report.Processed),
	}
	for _, s := range report.Skipped {
		data.Skipped = append(data.Skipped, SkippedFile{Path: s.Path, Reason: s.Reason})
	}

	if !cfg.JSON && !cfg.Quiet {
		printPreview(os.Stdout, report.Summary, prec)
		fmt.Printf("Wrote %s (%d samples, %d classifications)\n",
			outputPath, data.Samples, data.Columns)
		if chartPath != "" {
			fmt.Printf("Wrote %s\n", chartPath)
		}
		for _, s := range data.Skipped {
			fmt.Fprintf(os.Stderr, "Skipped %s: %s\n", s.Path, s.Reason)
		}
	}

	return OutputResult(cfg, "summarize", report.RunID, start, data, len(data.Skipped) > 0, nil)
}
