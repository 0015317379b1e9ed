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
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/AleutianAI/methanohunt/services/methane"
)

// previewMaxRows caps the interactive preview; the TSV holds the full table.
const previewMaxRows = 20

var (
	previewHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	previewCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	previewMutedStyle  = lipgloss.NewStyle().Faint(true)
)

// printPreview renders the summary as an aligned table when stdout is a
// terminal. Piped output gets nothing; the caller already wrote the TSV.
func printPreview(w io.Writer, summary *methane.Summary, precision int) {
	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		return
	}
	fmt.Fprint(w, renderSummaryTable(summary, precision))
}

// renderSummaryTable builds the preview text. Split out from printPreview so
// tests can exercise the layout without a TTY.
func renderSummaryTable(summary *methane.Summary, precision int) string {
	if precision < 0 {
		precision = methane.DefaultPrecision
	}
	headers := append([]string{"Sample"}, summary.Classifications()...)

	rows := make([][]string, 0, len(summary.Samples()))
	truncated := 0
	for i, sample := range summary.Samples() {
		if i >= previewMaxRows {
			truncated = len(summary.Samples()) - previewMaxRows
			break
		}
		row := make([]string, 0, len(headers))
		row = append(row, sample)
		for _, value := range summary.Row(sample) {
			row = append(row, strconv.FormatFloat(value, 'f', precision, 64))
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] += 2 // cell padding
	}

	var sb strings.Builder
	for i, h := range headers {
		sb.WriteString(previewHeaderStyle.Width(widths[i]).Render(h))
	}
	sb.WriteString("\n")

	total := 0
	for _, w := range widths {
		total += w
	}
	sb.WriteString(previewMutedStyle.Render(strings.Repeat("-", total)) + "\n")

	for _, row := range rows {
		for i, cell := range row {
			sb.WriteString(previewCellStyle.Width(widths[i]).Render(cell))
		}
		sb.WriteString("\n")
	}
	if truncated > 0 {
		sb.WriteString(previewMutedStyle.Render(fmt.Sprintf("... %d more samples in the TSV\n", truncated)))
	}
	return sb.String()
}
