// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package methane

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/methanohunt/pkg/logging"
)

// Options configures one summarization run.
type Options struct {
	// Inputs are profile file paths or glob patterns (expanded with
	// filepath.Glob). At least one is required.
	Inputs []string

	// DatabasePath locates the classifier database TSV.
	DatabasePath string

	// Concurrency bounds parallel profile processing. Values < 1 mean 1.
	// Classification is a pure function of the immutable database, so workers
	// share it without locking; results are merged single-threaded.
	Concurrency int

	// Logger receives progress and warnings. Nil means stderr default.
	Logger *logging.Logger
}

// Report is the outcome of a run: the loaded database, the finished summary
// table, and an account of which files made it in.
type Report struct {
	RunID     string
	Database  *Database
	Summary   *Summary
	Processed []string
	Skipped   []SkippedFile
}

// SkippedFile records one input file that was dropped from the run.
type SkippedFile struct {
	Path   string
	Reason string
}

// Run executes the whole pipeline: expand input patterns, load the database
// once, load and aggregate every profile, and build the summary table.
//
// One bad input file never aborts the run; it is logged, recorded in the
// report, and the remaining files proceed. Run fails only when the database is
// invalid, no input matches, or every matched file fails.
func Run(ctx context.Context, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	runID := uuid.NewString()
	log = log.With("run_id", runID)

	files, err := expandInputs(opts.Inputs)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files matched %v", opts.Inputs)
	}
	log.Info("starting run", "files", len(files), "database", opts.DatabasePath)

	db, err := LoadDatabase(opts.DatabasePath)
	if err != nil {
		return nil, err
	}
	log.Info("database loaded", "entries", db.Len(), "classifications", len(db.Classifications()))

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	type outcome struct {
		result SampleResult
		err    error
	}
	outcomes := make([]outcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i].result, outcomes[i].err = processFile(path, db, log)
			return nil
		})
	}
	// Workers only report context cancellation; per-file failures stay in
	// outcomes so one bad file cannot cancel its siblings.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{RunID: runID, Database: db}
	var results []SampleResult
	seenIDs := map[string]bool{}
	for i, path := range files {
		if outcomes[i].err != nil {
			log.Warn("skipping input file", "file", path, "error", outcomes[i].err)
			report.Skipped = append(report.Skipped, SkippedFile{Path: path, Reason: outcomes[i].err.Error()})
			continue
		}
		if id := outcomes[i].result.SampleID; seenIDs[id] {
			// BuildSummary suffixes the later row; both files survive.
			log.Warn("duplicate sample ID across input files", "sample", id, "file", path)
		} else {
			seenIDs[id] = true
		}
		results = append(results, outcomes[i].result)
		report.Processed = append(report.Processed, path)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("all %d input files failed", len(files))
	}

	report.Summary = BuildSummary(results, db.Classifications())
	log.Info("run complete", "samples", len(results), "skipped", len(report.Skipped))
	return report, nil
}

func processFile(path string, db *Database, log *logging.Logger) (SampleResult, error) {
	profile, err := LoadProfile(path, log)
	if err != nil {
		return SampleResult{}, err
	}
	result, err := AggregateSample(profile.SampleID, profile.Rows, db)
	if err != nil {
		return SampleResult{}, &FileError{Path: path, Err: err}
	}
	log.Debug("file aggregated",
		"file", path,
		"sample", profile.SampleID,
		"rows", len(profile.Rows),
		"skipped_rows", profile.SkippedRows,
		"total_abundance", profile.TotalAbundance)
	return result, nil
}

// expandInputs resolves each pattern with filepath.Glob; literal paths pass
// through untouched. The result is deduplicated and sorted for a stable
// processing order.
func expandInputs(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad input pattern %q: %w", pattern, err)
		}
		if matches == nil {
			// Not a pattern (or nothing matched); keep the literal path so a
			// missing file surfaces as a per-file error, not silence.
			matches = []string{pattern}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
