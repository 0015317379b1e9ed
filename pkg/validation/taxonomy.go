// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation utilities for user-supplied
// values that end up in file names, log lines, or lookup queries.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// taxonomyPattern matches a GTDB-style ranked taxonomy string:
// semicolon-separated rank tokens, each optionally carrying a rank prefix
// such as d__ or p__, e.g. "d__Archaea;p__Halobacteriota;c__Methanosarcinia".
// Token characters cover names seen in GTDB releases: letters, digits,
// underscores, hyphens, dots, spaces.
var taxonomyPattern = regexp.MustCompile(`^[A-Za-z0-9_. -]+(;\s*[A-Za-z0-9_. -]+)*;?$`)

// ValidateTaxonomy validates a user-supplied taxonomy string before it is used
// as a lookup query or logged.
//
// Valid strings:
//   - non-empty after trimming
//   - at most 4096 characters
//   - rank tokens separated by ';', no control characters
//
// Returns an error describing the first problem found.
func ValidateTaxonomy(taxonomy string) error {
	trimmed := strings.TrimSpace(taxonomy)
	if trimmed == "" {
		return fmt.Errorf("taxonomy cannot be empty")
	}
	if len(trimmed) > 4096 {
		return fmt.Errorf("taxonomy exceeds 4096 characters")
	}
	if !taxonomyPattern.MatchString(trimmed) {
		return fmt.Errorf("invalid taxonomy format: %q (expected ';'-separated rank tokens like 'd__Archaea;p__Halobacteriota')", truncate(trimmed, 80))
	}
	return nil
}

// SanitizeTaxonomy trims and validates a taxonomy string, returning the
// cleaned value.
//
//	taxon, err := validation.SanitizeTaxonomy(userInput)
//	if err != nil {
//	    return err
//	}
func SanitizeTaxonomy(taxonomy string) (string, error) {
	trimmed := strings.TrimSpace(taxonomy)
	if err := ValidateTaxonomy(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
