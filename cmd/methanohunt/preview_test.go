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
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AleutianAI/methanohunt/services/methane"
)

func previewSummary(sampleIDs ...string) *methane.Summary {
	classifications := []string{"methanogens", "methanotrophs"}
	var results []methane.SampleResult
	for i, id := range sampleIDs {
		results = append(results, methane.SampleResult{
			SampleID: id,
			Percent: map[string]float64{
				"methanogens":   float64(i + 1),
				"methanotrophs": 0,
			},
		})
	}
	return methane.BuildSummary(results, classifications)
}

func TestRenderSummaryTable(t *testing.T) {
	out := renderSummaryTable(previewSummary("sample2", "sample10"), 2)

	assert.Contains(t, out, "Sample")
	assert.Contains(t, out, "methanogens")
	assert.Contains(t, out, "methanotrophs")
	// Natural order puts sample2 before sample10.
	assert.Less(t, strings.Index(out, "sample2"), strings.Index(out, "sample10"))
	assert.Contains(t, out, "1.00")
	assert.Contains(t, out, "0.00")
}

func TestRenderSummaryTable_NegativePrecisionUsesDefault(t *testing.T) {
	out := renderSummaryTable(previewSummary("a"), -1)
	assert.Contains(t, out, "1.00")
}

func TestRenderSummaryTable_TruncatesLongRuns(t *testing.T) {
	ids := make([]string, previewMaxRows+5)
	for i := range ids {
		ids[i] = fmt.Sprintf("sample%d", i+1)
	}
	out := renderSummaryTable(previewSummary(ids...), 2)

	assert.Contains(t, out, "5 more samples")
	assert.NotContains(t, out, "sample25")
}

// printPreview must stay silent when the writer is not a terminal, both for
// pipes and for plain buffers.
func TestPrintPreview_NonTTYIsSilent(t *testing.T) {
	var buf bytes.Buffer
	printPreview(&buf, previewSummary("a"), 2)
	assert.Empty(t, buf.String())
}
