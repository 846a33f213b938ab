package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: encode json: %v\n", err)
		os.Exit(1)
	}
}

// formatTable prints headers, a dashed separator, and rows with columns
// padded to the widest cell.
func formatTable(headers []string, rows [][]string) {
	widths := columnWidths(headers, rows)

	printRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			w := 0
			if i < len(widths) {
				w = widths[i]
			}
			parts[i] = fmt.Sprintf("%-*s", w, cell)
		}
		fmt.Println(strings.Join(parts, "  "))
	}

	printRow(headers)

	seps := make([]string, len(headers))
	for i := range headers {
		seps[i] = strings.Repeat("-", widths[i])
	}
	printRow(seps)

	for _, row := range rows {
		printRow(row)
	}
}

// columnWidths returns the widest cell per column, seeded by header widths.
// Rows wider than the header slice are truncated to it.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func formatQuiet(id string) {
	fmt.Println(id)
}

// output renders v per the --format flag. Table output needs per-command
// column layout, so commands that support it call formatTable directly and
// everything else falls back to JSON.
func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		formatQuiet(quietVal)
	case "table":
		formatJSON(v)
	default:
		formatJSON(v)
	}
}
