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
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/methanohunt/pkg/validation"
	"github.com/AleutianAI/methanohunt/services/methane"
)

// runDBCheck validates the database file the same way a run would, then
// reports what it holds. A malformed database exits 2, matching summarize.
func runDBCheck(cmd *cobra.Command) int {
	start := time.Now()
	cfg := OutputConfig{JSON: jsonOutput, Quiet: quietMode}
	path := resolveDatabase()

	db, err := methane.LoadDatabase(path)
	if err != nil {
		return OutputResult(cfg, "db check", "", start, nil, false, err)
	}

	exceptions := 0
	for _, entry := range db.Entries() {
		exceptions += len(entry.Exceptions)
	}
	data := DBCheckResult{
		Database:        path,
		Entries:         db.Len(),
		Classifications: db.Classifications(),
		Exceptions:      exceptions,
	}

	if !cfg.JSON && !cfg.Quiet {
		fmt.Printf("%s: %d entries, %d exceptions\n", path, data.Entries, data.Exceptions)
		fmt.Println("Classifications:")
		for _, c := range data.Classifications {
			fmt.Printf("  %s\n", c)
		}
	}
	return OutputResult(cfg, "db check", "", start, data, false, nil)
}

// runDBLookup classifies one taxonomy string. A miss is reported with exit
// code 1 so scripts can branch on it.
func runDBLookup(cmd *cobra.Command, taxonomy string) int {
	start := time.Now()
	cfg := OutputConfig{JSON: jsonOutput, Quiet: quietMode}

	cleaned, err := validation.SanitizeTaxonomy(taxonomy)
	if err != nil {
		return OutputResult(cfg, "db lookup", "", start, nil, false,
			fmt.Errorf("invalid taxonomy: %w", err))
	}

	db, err := methane.LoadDatabase(resolveDatabase())
	if err != nil {
		return OutputResult(cfg, "db lookup", "", start, nil, false, err)
	}

	path := methane.ParseTaxonomy(cleaned)
	match, ok := db.Classify(path)
	data := DBLookupResult{Taxonomy: path.String(), Matched: ok}
	if ok {
		data.Subgroup = match.Subgroup
		data.Classification = match.Classification
	}

	if !cfg.JSON && !cfg.Quiet {
		if ok {
			fmt.Printf("%s\n  subgroup:       %s\n  classification: %s\n",
				data.Taxonomy, data.Subgroup, data.Classification)
		} else {
			fmt.Printf("%s\n  no match\n", data.Taxonomy)
		}
	}
	return OutputResult(cfg, "db lookup", "", start, data, !ok, nil)
}
