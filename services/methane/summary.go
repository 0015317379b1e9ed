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
	"os"
	"strconv"

	"github.com/AleutianAI/methanohunt/pkg/natsort"
)

// DefaultPrecision is the number of decimal places written to the output TSV.
const DefaultPrecision = 2

// Summary is the wide sample x classification table: one row per sample in
// natural order, one column per database classification in declaration order.
// Cells missing from the inputs hold 0, never null, so downstream consumers
// need no absence handling. Built once; not mutated afterwards.
type Summary struct {
	classifications []string
	samples         []string
	cells           map[string]map[string]float64 // sample -> classification -> percent

	// subgroupCells keeps the per-subgroup breakdown behind every cell:
	// sample -> classification -> subgroup -> percent. Never written to the
	// TSV; the chart renderer reads it.
	subgroupCells map[string]map[string]map[string]float64
}

// BuildSummary reshapes per-sample results into the wide table. The
// classification order comes from the database declaration order and fixes
// the column set regardless of which groups were observed; sample rows are
// sorted with a natural comparator so sample2 precedes sample10.
//
// Two results carrying the same sample ID (two input files that derive the
// same name) both keep their rows: the later one is suffixed "-2", "-3", ...
// rather than silently overwriting the first.
func BuildSummary(results []SampleResult, classificationOrder []string) *Summary {
	s := &Summary{
		classifications: append([]string(nil), classificationOrder...),
		cells:           make(map[string]map[string]float64, len(results)),
		subgroupCells:   make(map[string]map[string]map[string]float64, len(results)),
	}
	for _, r := range results {
		id := r.SampleID
		for n := 2; ; n++ {
			if _, taken := s.cells[id]; !taken {
				break
			}
			id = fmt.Sprintf("%s-%d", r.SampleID, n)
		}
		row := make(map[string]float64, len(s.classifications))
		for _, c := range s.classifications {
			row[c] = r.Percent[c]
		}
		s.cells[id] = row
		s.subgroupCells[id] = r.SubgroupPercent
		s.samples = append(s.samples, id)
	}
	natsort.Sort(s.samples)
	return s
}

// Classifications returns the column order. Callers must not modify it.
func (s *Summary) Classifications() []string { return s.classifications }

// Samples returns the naturally sorted sample order. Callers must not modify it.
func (s *Summary) Samples() []string { return s.samples }

// Value returns the percentage cell for (sample, classification); 0 for
// unknown pairs.
func (s *Summary) Value(sample, classification string) float64 {
	return s.cells[sample][classification]
}

// SubgroupValue returns the percent contributed by one subgroup to one
// (sample, classification) cell; 0 for unknown triples.
func (s *Summary) SubgroupValue(sample, classification, subgroup string) float64 {
	return s.subgroupCells[sample][classification][subgroup]
}

// Row returns the cells for one sample in column order.
func (s *Summary) Row(sample string) []float64 {
	out := make([]float64, len(s.classifications))
	for i, c := range s.classifications {
		out[i] = s.cells[sample][c]
	}
	return out
}

// WriteTSV writes the table with a "Sample" column followed by one column per
// classification, every cell formatted with the given number of decimals.
func (s *Summary) WriteTSV(w io.Writer, precision int) error {
	if precision < 0 {
		precision = DefaultPrecision
	}
	writer := csv.NewWriter(w)
	writer.Comma = '\t'

	header := append([]string{"Sample"}, s.classifications...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, sample := range s.samples {
		record := make([]string, 0, len(header))
		record = append(record, sample)
		for _, v := range s.Row(sample) {
			record = append(record, strconv.FormatFloat(v, 'f', precision, 64))
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", sample, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// SaveTSV writes the table to a file, creating or truncating it.
func (s *Summary) SaveTSV(path string, precision int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := s.WriteTSV(f, precision); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
