// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package chart renders the summary table as an interactive HTML page: one
// stacked bar chart per functional classification, samples on the X axis,
// one series per subgroup so per-lineage composition stays visible. It is a
// rendering consumer of the finished table; nothing here feeds back into
// classification or aggregation.
package chart

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/AleutianAI/methanohunt/services/methane"
)

const pageTitle = "Relative Abundance of Methane Cyclers"

// footnote mirrors the caveat shipped with every report: these are
// taxonomy-based calls, not functional-gene confirmations.
const footnote = `<div style="margin:30px 10px 20px 10px;padding-top:10px;border-top:1px solid #ccc;font-family:Arial,sans-serif;font-size:0.9em;color:#666;font-style:italic;">` +
	`<strong>Note:</strong> Functional classifications presented here are taxonomy-based and may carry a risk of false positives, ` +
	`as specific subgroups within a lineage may lack the predicted metabolic potential. ` +
	`Verification via functional gene analysis is recommended.</div>`

// WriteHTML renders one stacked bar chart per database classification into w,
// all on a single page.
//
// X axis: sample names in the table's natural order. Within each chart, one
// series per subgroup in database declaration order, stacked, so the bar
// height equals the classification's TSV column and the stacking shows which
// lineages carry it.
func WriteHTML(w io.Writer, summary *methane.Summary, db *methane.Database) error {
	page := components.NewPage()
	page.PageTitle = pageTitle

	for _, classification := range summary.Classifications() {
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{
				PageTitle: pageTitle,
				Width:     "1100px",
				Height:    "520px",
			}),
			charts.WithTitleOpts(opts.Title{
				Title:    classification,
				Subtitle: "Percent of total community abundance per sample",
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		)

		bar.SetXAxis(summary.Samples())
		for _, subgroup := range db.Subgroups(classification) {
			data := make([]opts.BarData, 0, len(summary.Samples()))
			for _, sample := range summary.Samples() {
				data = append(data, opts.BarData{
					Value: summary.SubgroupValue(sample, classification, subgroup),
				})
			}
			bar.AddSeries(subgroup, data,
				charts.WithBarChartOpts(opts.BarChart{Stack: classification}))
		}
		page.AddCharts(bar)
	}

	// Render to a buffer first so the caveat footnote can ride inside the
	// document body.
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	html := buf.String()
	if i := strings.LastIndex(html, "</body>"); i >= 0 {
		html = html[:i] + footnote + html[i:]
	} else {
		html += footnote
	}

	_, err := io.WriteString(w, html)
	return err
}

// WritePage renders the charts to an HTML file next to the summary TSV.
func WritePage(path string, summary *methane.Summary, db *methane.Database) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteHTML(f, summary, db); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// HTMLPathFor derives the chart file name from the output TSV path:
// "results.tsv" becomes "results.html".
func HTMLPathFor(tsvPath string) string {
	if strings.HasSuffix(tsvPath, ".tsv") {
		return strings.TrimSuffix(tsvPath, ".tsv") + ".html"
	}
	return tsvPath + ".html"
}
