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

import "fmt"

// SampleResult holds the aggregated relative abundances for one sample.
type SampleResult struct {
	SampleID string

	// Percent maps classification -> relative abundance in percent of the
	// sample's TOTAL abundance. Classifications with no matched rows are
	// present with value 0 so every result carries the full column set.
	Percent map[string]float64

	// SubgroupPercent breaks Percent down one level: classification ->
	// subgroup label -> percent of total abundance. Zero-filled over the
	// database's full (classification, subgroup) key set, same as Percent,
	// so chart series never have holes. The subgroup values under one
	// classification sum to that classification's Percent entry.
	SubgroupPercent map[string]map[string]float64

	// Matched and Total record the raw sums behind the percentages.
	Matched map[string]float64
	Total   float64

	// Unclassified is the abundance that matched no database entry. It is
	// tracked so the denominator stays the whole community, but it is never
	// emitted as an output column.
	Unclassified float64
}

// AggregateSample classifies every row of one sample against the database and
// sums matched abundances per classification, then renormalizes to percentages
// of the sample's total abundance.
//
// The denominator deliberately includes unmatched rows: a reported 12.5 means
// "12.5% of the whole community", not "12.5% of recognized methane cyclers".
// Restricting the denominator to matched rows would overstate rare groups.
//
// A sample whose total abundance is zero has no defined percentages and is
// rejected.
func AggregateSample(sampleID string, rows []ProfileRow, db *Database) (SampleResult, error) {
	result := SampleResult{
		SampleID:        sampleID,
		Percent:         make(map[string]float64, len(db.Classifications())),
		SubgroupPercent: make(map[string]map[string]float64, len(db.Classifications())),
		Matched:         make(map[string]float64, len(db.Classifications())),
	}
	for _, c := range db.Classifications() {
		result.Percent[c] = 0
		result.Matched[c] = 0
		subs := make(map[string]float64)
		for _, s := range db.Subgroups(c) {
			subs[s] = 0
		}
		result.SubgroupPercent[c] = subs
	}

	for _, row := range rows {
		result.Total += row.Abundance
		if match, ok := db.Classify(row.Taxon); ok {
			result.Matched[match.Classification] += row.Abundance
			result.SubgroupPercent[match.Classification][match.Subgroup] += row.Abundance
		} else {
			result.Unclassified += row.Abundance
		}
	}

	if result.Total == 0 {
		return SampleResult{}, fmt.Errorf("sample %s: total abundance is zero", sampleID)
	}

	for c, sum := range result.Matched {
		result.Percent[c] = sum / result.Total * 100
	}
	// SubgroupPercent held raw sums up to here; renormalize in place.
	for _, subs := range result.SubgroupPercent {
		for s, sum := range subs {
			subs[s] = sum / result.Total * 100
		}
	}
	return result, nil
}
