package printer

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/richardwooding/urlrx/internal/tester"
)

// PrintPattern writes the pattern followed by separator. An empty separator
// means a newline.
func PrintPattern(w io.Writer, pattern, separator string, useColor bool) error {
	if separator == "" {
		separator = "\n"
	}
	_, err := fmt.Fprintf(w, "%s%s", Highlight(pattern, useColor), separator)
	return err
}

// PrintResultLines writes one "match" or "miss" line per result.
func PrintResultLines(w io.Writer, results []tester.Result, useColor bool) error {
	for _, r := range results {
		status := ColorString("miss", AnsiRed, useColor)
		if r.Matched {
			status = ColorString("match", AnsiGreen, useColor)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", status, r.Line); err != nil {
			return err
		}
	}
	return nil
}

// PrintResultTable renders results as a table with a summary footer.
func PrintResultTable(w io.Writer, results []tester.Result, useColor bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if useColor {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleDefault)
	}

	t.AppendHeader(table.Row{"#", "Line", "Match"})
	for i, r := range results {
		t.AppendRow(table.Row{i + 1, r.Line, matchCell(r.Matched, useColor)})
	}

	s := tester.Summarize(results)
	t.AppendFooter(table.Row{"", "matched", fmt.Sprintf("%d/%d", s.Matched, s.Total)})

	t.Render()
}

func matchCell(matched, useColor bool) string {
	switch {
	case matched && useColor:
		return text.FgGreen.Sprint("yes")
	case matched:
		return "yes"
	case useColor:
		return text.FgRed.Sprint("no")
	default:
		return "no"
	}
}
