// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"

	"github.com/tfctl/linediff/internal/config"
	"github.com/tfctl/linediff/internal/differ"
)

// WriteTable renders the diff table side by side, one row per change, followed
// by a one-line summary. Identical documents produce only the summary.
func WriteTable(w io.Writer, report *differ.Report, colored bool) {
	stats := report.Stats()
	if report.Identical() {
		fmt.Fprintln(w, "The documents are identical.")
		return
	}

	// Styling is ANSI, so plain output gets no attributes at all.
	cellStyle := lipgloss.NewStyle().Align(lipgloss.Left)
	headerStyle := cellStyle
	if colored {
		headerStyle = headerStyle.Bold(true)
	}

	tags := make([]differ.Tag, 0, len(report.Table))
	rows := make([][]string, 0, len(report.Table))
	for _, row := range report.Table {
		tags = append(tags, row.Tag)
		rows = append(rows, []string{strconv.Itoa(row.ID), string(row.Tag), row.Doc1Text, row.Doc2Text})
	}

	t := table.New().
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case colored && row >= 0 && row < len(tags):
				style = cellStyle.Foreground(tagColor(tags[row]))
			default:
				style = cellStyle
			}
			if col > 0 {
				style = style.PaddingLeft(2) //nolint:mnd
			}
			return style
		}).
		Headers("ID", "TAG", "DOC1", "DOC2").
		Rows(rows...)

	fmt.Fprintln(w, t)
	fmt.Fprintf(w, "%d change(s): %d replaced, %d deleted, %d inserted\n",
		stats.Changes(), stats.Replace, stats.Delete, stats.Insert)
}

// tagColor returns the configured color for a change tag, falling back to a
// palette that reads on both light and dark terminals.
func tagColor(tag differ.Tag) color.Color {
	defaults := map[differ.Tag]string{
		differ.TagReplace: "#d79921",
		differ.TagDelete:  "#cc241d",
		differ.TagInsert:  "#3f9f3f",
	}

	value, err := config.GetString("colors." + string(tag))
	if err != nil || value == "" {
		value = defaults[tag]
	}
	return lipgloss.Color(value)
}
