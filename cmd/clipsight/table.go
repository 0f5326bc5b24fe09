package main

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// tableColumn describes one output column. Numeric columns (durations and
// track counts) are right-aligned so values line up when scanning many runs.
type tableColumn struct {
	title   string
	numeric bool
}

var runListColumns = []tableColumn{
	{title: "ID"},
	{title: "Title"},
	{title: "Status"},
	{title: "Duration", numeric: true},
	{title: "Captions", numeric: true},
	{title: "Scenes", numeric: true},
	{title: "Created"},
}

var dependencyColumns = []tableColumn{
	{title: "Dependency"},
	{title: "Status"},
	{title: "Detail"},
}

func renderTable(columns []tableColumn, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(tableStyle(os.Stdout.Fd()))

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, column := range columns {
		header[i] = column.title
		align := text.AlignLeft
		if column.numeric {
			align = text.AlignRight
		}
		configs[i] = table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return tw.Render()
}

// tableStyle keeps rounded borders for interactive terminals and falls back
// to plain ASCII when output is piped into a file or another tool.
func tableStyle(fd uintptr) table.Style {
	if isatty.IsTerminal(fd) {
		return table.StyleRounded
	}
	return table.StyleDefault
}
