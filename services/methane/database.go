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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Database column names. The header row must contain the first three;
// Exception_taxonomy is optional.
const (
	ColTaxonomy       = "GTDB_taxonomy"
	ColSubgroup       = "Subgroup"
	ColClassification = "Classification"
	ColException      = "Exception_taxonomy"
)

// Entry is one curated database row: a taxonomy pattern that marks a
// methane-cycler lineage, the subgroup and functional classification it
// belongs to, and an optional set of exception lineages carved out of the
// match. Entries are created at load time and read-only afterwards.
type Entry struct {
	Pattern        Path
	Subgroup       string
	Classification string
	Exceptions     []Path
}

// Match is the result of classifying a taxon against the database.
type Match struct {
	Subgroup       string
	Classification string
}

// Database is the loaded methane-cycler lookup database. It is immutable after
// load and safe to share across goroutines.
type Database struct {
	source          string
	entries         []Entry
	classifications []string
}

// LoadDatabase reads the database TSV from disk.
func LoadDatabase(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Source: filepath.Base(path), Msg: err.Error()}
	}
	defer f.Close()
	return ReadDatabase(f, filepath.Base(path))
}

// ReadDatabase parses a database TSV (UTF-8, header row required) from r.
// The name is used in error messages only.
//
// Required columns: GTDB_taxonomy, Subgroup, Classification. The optional
// Exception_taxonomy column holds a comma-separated list of taxonomy strings.
// A missing required column, an unreadable row, or a row whose taxonomy
// pattern is empty yields a *FormatError. A row with an empty Subgroup value
// inherits its pattern's leaf token as the label, so every entry carries a
// non-empty subgroup.
func ReadDatabase(r io.Reader, name string) (*Database, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &FormatError{Source: name, Msg: "empty file"}
	}
	if err != nil {
		return nil, &FormatError{Source: name, Msg: fmt.Sprintf("reading header: %v", err)}
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{ColTaxonomy, ColSubgroup, ColClassification} {
		if _, ok := cols[required]; !ok {
			return nil, &FormatError{Source: name, Msg: fmt.Sprintf("missing required column %q", required)}
		}
	}
	excCol, hasExc := cols[ColException]

	db := &Database{source: name}
	seen := map[string]bool{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &FormatError{Source: name, Line: parseErrorLine(err), Msg: err.Error()}
		}
		// FieldPos tracks physical lines, so quoted multi-line fields do not
		// skew the numbers in error messages.
		line, _ := reader.FieldPos(0)

		pattern := ParseTaxonomy(field(record, cols[ColTaxonomy]))
		if pattern.IsEmpty() {
			return nil, &FormatError{Source: name, Line: line, Msg: "empty taxonomy pattern"}
		}

		entry := Entry{
			Pattern:        pattern,
			Subgroup:       strings.TrimSpace(field(record, cols[ColSubgroup])),
			Classification: strings.TrimSpace(field(record, cols[ColClassification])),
		}
		if entry.Classification == "" {
			return nil, &FormatError{Source: name, Line: line, Msg: "empty classification"}
		}
		if entry.Subgroup == "" {
			entry.Subgroup = pattern.Leaf()
		}
		if hasExc {
			for _, exc := range strings.Split(field(record, excCol), ",") {
				if p := ParseTaxonomy(exc); !p.IsEmpty() {
					entry.Exceptions = append(entry.Exceptions, p)
				}
			}
		}

		db.entries = append(db.entries, entry)
		if !seen[entry.Classification] {
			seen[entry.Classification] = true
			db.classifications = append(db.classifications, entry.Classification)
		}
	}

	if len(db.entries) == 0 {
		return nil, &FormatError{Source: name, Msg: "no database entries"}
	}
	return db, nil
}

// Source returns the name the database was loaded under.
func (db *Database) Source() string { return db.source }

// Len returns the number of entries.
func (db *Database) Len() int { return len(db.entries) }

// Entries returns the database rows in declaration order. The returned slice
// must not be modified.
func (db *Database) Entries() []Entry { return db.entries }

// Classifications returns the distinct Classification values in first-seen
// declaration order. This fixed ordering is what makes output columns stable
// across runs. The returned slice must not be modified.
func (db *Database) Classifications() []string { return db.classifications }

// Subgroups returns the distinct subgroup labels under one classification in
// declaration order. Labels are never empty: entries loaded without a curated
// subgroup carry their pattern's leaf token.
func (db *Database) Subgroups(classification string) []string {
	var out []string
	seen := map[string]bool{}
	for _, e := range db.entries {
		if e.Classification != classification || seen[e.Subgroup] {
			continue
		}
		seen[e.Subgroup] = true
		out = append(out, e.Subgroup)
	}
	return out
}

// Classify decides whether the taxon belongs to a known methane-cycler group.
//
// Every entry whose pattern is an ancestor-or-equal of the taxon is a
// candidate; the entry with the longest pattern wins, and ties go to the
// entry declared first. If any of the winner's exception paths is itself an
// ancestor-or-equal of the taxon, the match is discarded: exceptions let
// curators carve known false-positive lineages out of a broad pattern without
// fragmenting it.
//
// Classify never fails; the second return value is false for the overwhelming
// majority of taxa in any real sample.
func (db *Database) Classify(taxon Path) (Match, bool) {
	winner := -1
	for i, entry := range db.entries {
		if !entry.Pattern.IsAncestorOf(taxon) {
			continue
		}
		// Strictly longer replaces; equal length keeps the earlier entry.
		if winner < 0 || entry.Pattern.Len() > db.entries[winner].Pattern.Len() {
			winner = i
		}
	}
	if winner < 0 {
		return Match{}, false
	}
	for _, exc := range db.entries[winner].Exceptions {
		if exc.IsAncestorOf(taxon) {
			return Match{}, false
		}
	}
	e := db.entries[winner]
	return Match{Subgroup: e.Subgroup, Classification: e.Classification}, true
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseErrorLine pulls the physical line out of a csv parse failure; 0 when
// the error carries no position.
func parseErrorLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.Line
	}
	return 0
}
