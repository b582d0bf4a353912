package database

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Result holds the rows read by a preview, already converted to text.
// NULL values are the string "NULL".
type Result struct {
	Columns   []string
	Rows      [][]string
	Truncated bool
}

// Render writes the result as a box-drawn table followed by a row count.
func (r *Result) Render(w io.Writer) {
	if len(r.Columns) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range r.Rows {
		out := make(table.Row, len(row))
		for i, cell := range row {
			out[i] = cell
		}
		t.AppendRow(out)
	}
	t.Render()

	if n := len(r.Rows); n == 1 {
		_, _ = fmt.Fprintln(w, "(1 row)")
	} else {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", n)
	}
	if r.Truncated {
		_, _ = fmt.Fprintf(w, "(truncated at %d rows)\n", len(r.Rows))
	}
}
