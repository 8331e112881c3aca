package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	Brand  = color.New(color.FgHiMagenta, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// printTable writes an aligned table. Widths are measured in terminal cells
// so titles with wide characters still line up.
func printTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	header := "  "
	sep := "  "
	for i, h := range headers {
		header += runewidth.FillRight(h, widths[i]) + "  "
		sep += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, header)
	Subtle.Fprintln(w, sep)

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += runewidth.FillRight(cell, widths[i]) + "  "
			}
		}
		fmt.Fprintln(w, line)
	}
}
