package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// tableSpec describes a rounded table. Rows are grouped into sections with a
// rule drawn between consecutive sections.
type tableSpec struct {
	headers  []string
	sections [][][]string
	aligns   []columnAlignment
	colorize bool
}

func renderTable(spec tableSpec) string {
	columns := len(spec.headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	if spec.colorize {
		style.Color.Header = text.Colors{text.FgBlue, text.Bold}
	}
	tw.SetStyle(style)

	header := make(table.Row, columns)
	for i, h := range spec.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	first := true
	for _, section := range spec.sections {
		if len(section) == 0 {
			continue
		}
		if !first {
			tw.AppendSeparator()
		}
		first = false
		for _, row := range section {
			r := make(table.Row, columns)
			for i := 0; i < min(columns, len(row)); i++ {
				r[i] = row[i]
			}
			tw.AppendRow(r)
		}
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(spec.aligns) && spec.aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
