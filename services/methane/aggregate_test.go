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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(pairs ...any) []ProfileRow {
	var out []ProfileRow
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, ProfileRow{
			Taxon:     ParseTaxonomy(pairs[i].(string)),
			Abundance: pairs[i+1].(float64),
		})
	}
	return out
}

func TestAggregateSample_EndToEndExample(t *testing.T) {
	// Single-entry database, one matched and one unmatched row.
	db := mustReadDB(t, "GTDB_taxonomy\tSubgroup\tClassification\n"+
		"d__Archaea;p__Halobacteriota\tMethanogen\tMethanogenesis\n")

	input := rows(
		"d__Archaea;p__Halobacteriota;c__X", 12.5,
		"d__Bacteria;p__Y", 87.5,
	)
	result, err := AggregateSample("sample1", input, db)
	require.NoError(t, err)

	assert.InDelta(t, 12.5, result.Percent["Methanogenesis"], 1e-9)
	assert.InDelta(t, 87.5, result.Unclassified, 1e-9)
	assert.InDelta(t, 100.0, result.Total, 1e-9)
}

func TestAggregateSample_DenominatorIsWholeCommunity(t *testing.T) {
	// Total abundance 100 with matched sums 30 and 10: the report must read
	// 30.0 and 10.0, never 75.0/25.0 of matched-only abundance.
	db := mustReadDB(t, "GTDB_taxonomy\tSubgroup\tClassification\n"+
		"d__Archaea;p__Halobacteriota\tMethanogens\tMethanogenesis\n"+
		"d__Bacteria;p__Verrucomicrobiota;g__Methylacidiphilum\tMethanotrophs\tAerobic methane oxidation\n")

	input := rows(
		"d__Archaea;p__Halobacteriota;c__A", 30.0,
		"d__Bacteria;p__Verrucomicrobiota;g__Methylacidiphilum;s__X", 10.0,
		"d__Bacteria;p__Elsewhere", 60.0,
	)
	result, err := AggregateSample("s", input, db)
	require.NoError(t, err)

	assert.InDelta(t, 30.0, result.Percent["Methanogenesis"], 1e-9)
	assert.InDelta(t, 10.0, result.Percent["Aerobic methane oxidation"], 1e-9)
}

func TestAggregateSample_UnobservedClassificationsPresentAsZero(t *testing.T) {
	db := mustReadDB(t, sampleDB)
	input := rows("d__Bacteria;p__Nothing", 50.0)

	result, err := AggregateSample("s", input, db)
	require.NoError(t, err)

	require.Len(t, result.Percent, 3)
	for _, c := range db.Classifications() {
		assert.Zero(t, result.Percent[c], "classification %q", c)
	}
	assert.InDelta(t, 50.0, result.Unclassified, 1e-9)
}

func TestAggregateSample_MultipleRowsSameClassification(t *testing.T) {
	db := mustReadDB(t, "GTDB_taxonomy\tSubgroup\tClassification\n"+
		"d__Archaea;p__Halobacteriota\tMethanogens\tMethanogenesis\n")

	input := rows(
		"d__Archaea;p__Halobacteriota;c__A", 10.0,
		"d__Archaea;p__Halobacteriota;c__B", 15.0,
		"d__Bacteria;p__X", 75.0,
	)
	result, err := AggregateSample("s", input, db)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, result.Percent["Methanogenesis"], 1e-9)
}

func TestAggregateSample_SubgroupBreakdown(t *testing.T) {
	// Two subgroups under one classification: the per-subgroup percentages
	// must split the classification total, zero-filled over the full key set.
	db := mustReadDB(t, "GTDB_taxonomy\tSubgroup\tClassification\n"+
		"d__Archaea;p__Halobacteriota\tHalobacteriota methanogens\tMethanogenesis\n"+
		"d__Archaea;p__Methanobacteriota\tMethanobacteriota methanogens\tMethanogenesis\n"+
		"d__Bacteria;p__Verrucomicrobiota;g__Methylacidiphilum\tVerrucomicrobial methanotrophs\tAerobic methane oxidation\n")

	input := rows(
		"d__Archaea;p__Halobacteriota;c__X", 10.0,
		"d__Archaea;p__Methanobacteriota;c__Y", 5.0,
		"d__Bacteria;p__Other", 85.0,
	)
	result, err := AggregateSample("s", input, db)
	require.NoError(t, err)

	meth := result.SubgroupPercent["Methanogenesis"]
	require.Len(t, meth, 2)
	assert.InDelta(t, 10.0, meth["Halobacteriota methanogens"], 1e-9)
	assert.InDelta(t, 5.0, meth["Methanobacteriota methanogens"], 1e-9)
	assert.InDelta(t, result.Percent["Methanogenesis"],
		meth["Halobacteriota methanogens"]+meth["Methanobacteriota methanogens"], 1e-9)

	// Unobserved subgroup is present with value 0, like Percent columns.
	oxid := result.SubgroupPercent["Aerobic methane oxidation"]
	require.Contains(t, oxid, "Verrucomicrobial methanotrophs")
	assert.Zero(t, oxid["Verrucomicrobial methanotrophs"])
}

func TestAggregateSample_ZeroTotalRejected(t *testing.T) {
	db := mustReadDB(t, sampleDB)
	_, err := AggregateSample("s", rows("d__Bacteria;p__X", 0.0), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total abundance is zero")
}

func TestAggregateSample_Idempotent(t *testing.T) {
	db := mustReadDB(t, sampleDB)
	input := rows(
		"d__Archaea;p__Halobacteriota;c__X", 12.5,
		"d__Archaea;p__Halobacteriota;c__Syntropharchaeia;o__Y", 3.0,
		"d__Bacteria;p__Z", 84.5,
	)

	first, err := AggregateSample("s", input, db)
	require.NoError(t, err)
	second, err := AggregateSample("s", input, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
