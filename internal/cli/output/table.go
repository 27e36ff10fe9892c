package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders rows with a header. Markdown mode emits a pipe table;
// every other mode draws box characters.
func Table(w io.Writer, mode OutputMode, header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	hr := make(table.Row, len(header))
	for i, h := range header {
		hr[i] = h
	}
	t.AppendHeader(hr)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = v
		}
		t.AppendRow(tr)
	}

	if mode == ModeMarkdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
