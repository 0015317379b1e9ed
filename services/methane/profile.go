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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/AleutianAI/methanohunt/pkg/logging"
)

// ProfileRow is one taxon observation in a sample: a parsed taxonomy and a
// non-negative relative abundance (or coverage) value.
type ProfileRow struct {
	Taxon     Path
	Abundance float64
}

// Profile is one loaded taxonomic-profile file.
type Profile struct {
	SampleID string
	Rows     []ProfileRow

	// TotalAbundance is the sum over ALL parsed rows, matched or not. It is
	// the percentage denominator: reported fractions are shares of the whole
	// community, not shares of recognized methane cyclers.
	TotalAbundance float64

	// SkippedRows counts malformed rows dropped with a warning.
	SkippedRows int
}

// knownSuffixes are stripped from a file name when deriving a sample ID.
var knownSuffixes = []string{".tax.tsv", ".tsv", ".txt"}

// profile column resolution: singleM long format carries a header like
// "sample  coverage  taxonomy". Headers are matched by name first so column
// reordering survives; files with unrecognized headers fall back to the
// profiler's positional contract (0=sample, 1=coverage, 2=taxonomy).
var (
	taxonomyHeaders  = []string{"taxonomy", "taxon", "gtdb_taxonomy", "lineage"}
	abundanceHeaders = []string{"coverage", "abundance", "relative_abundance"}
	sampleHeaders    = []string{"sample", "sample_id", "sample_name"}
)

// LoadProfile reads one taxonomic-profile TSV from disk. Malformed rows are
// skipped with a warning; a file-wide problem returns a *FileError.
func LoadProfile(path string, log *logging.Logger) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	p, err := ReadProfile(f, filepath.Base(path), log)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return p, nil
}

// ReadProfile parses a profile from r. The name (usually the file name) seeds
// the fallback sample ID and appears in warnings.
func ReadProfile(r io.Reader, name string, log *logging.Logger) (*Profile, error) {
	if log == nil {
		log = logging.New(logging.Config{Quiet: true})
	}

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	taxCol := findColumn(header, taxonomyHeaders)
	abundCol := findColumn(header, abundanceHeaders)
	sampleCol := findColumn(header, sampleHeaders)
	if taxCol < 0 || abundCol < 0 {
		// Positional contract from the profiler output format.
		if len(header) < 3 {
			return nil, fmt.Errorf("cannot locate taxonomy and abundance columns in header %v", header)
		}
		sampleCol, abundCol, taxCol = 0, 1, 2
	}

	profile := &Profile{SampleID: sampleIDFromFilename(name)}
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("skipping unreadable row", "file", name, "line", parseErrorLine(err), "error", err)
			profile.SkippedRows++
			continue
		}
		// FieldPos tracks physical lines, so quoted multi-line fields do not
		// skew the numbers in warnings.
		line, _ := reader.FieldPos(0)

		if first || profile.SampleID == "" {
			first = false
			if s := sampleIDFromRecord(record, sampleCol); s != "" {
				profile.SampleID = s
			}
		}

		taxon := ParseTaxonomy(field(record, taxCol))
		if taxon.IsEmpty() {
			log.Warn("skipping row with empty taxonomy", "file", name, "line", line)
			profile.SkippedRows++
			continue
		}

		raw := strings.TrimSpace(field(record, abundCol))
		abundance, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.Warn("skipping row with unparsable abundance", "file", name, "line", line, "value", raw)
			profile.SkippedRows++
			continue
		}
		if abundance < 0 || math.IsNaN(abundance) || math.IsInf(abundance, 0) {
			log.Warn("skipping row with invalid abundance", "file", name, "line", line, "value", raw)
			profile.SkippedRows++
			continue
		}

		profile.Rows = append(profile.Rows, ProfileRow{Taxon: taxon, Abundance: abundance})
		profile.TotalAbundance += abundance
	}

	if len(profile.Rows) == 0 {
		return nil, fmt.Errorf("no usable rows")
	}
	return profile, nil
}

// sampleIDFromRecord takes the sample name the profiler wrote into the row,
// stripping the "_1" read-pair suffix singleM appends for paired-end input.
func sampleIDFromRecord(record []string, sampleCol int) string {
	if sampleCol < 0 {
		return ""
	}
	s := strings.TrimSpace(field(record, sampleCol))
	return strings.TrimSuffix(s, "_1")
}

// sampleIDFromFilename derives a fallback sample ID from the file name with
// known profiler suffixes removed.
func sampleIDFromFilename(name string) string {
	base := filepath.Base(name)
	for _, suffix := range knownSuffixes {
		if strings.HasSuffix(base, suffix) {
			base = strings.TrimSuffix(base, suffix)
			break
		}
	}
	return strings.TrimSuffix(base, "_1")
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, want := range names {
			if h == want {
				return i
			}
		}
	}
	return -1
}
