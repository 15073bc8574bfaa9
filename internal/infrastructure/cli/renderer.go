package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/doeshing/addrbook/internal/model"
)

const (
	msgNoPersons = "No persons to show."
	columnGap    = "  "
	// maxColumnWidth truncates long addresses so rows stay on one line.
	maxColumnWidth = 40
)

// RenderPersons prints the view as an aligned table. Indexes are the
// 1-based positions commands like delete and edit expect; pinned rows
// carry a "*". Widths are measured in terminal cells so wide runes align.
func RenderPersons(w io.Writer, view *model.PersonView) error {
	items := view.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, msgNoPersons)
		return err
	}

	rows := [][]string{{"#", "", "NAME", "PHONE", "EMAIL", "ADDRESS", "TAGS"}}
	for i, p := range items {
		pin := ""
		if view.IsPinned(p) {
			pin = "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), pin, p.Name(), p.Phone(), p.Email(),
			runewidth.Truncate(p.Address(), maxColumnWidth, "..."), renderTags(p.Tags()),
		})
	}
	return writeTable(w, rows)
}

func writeTable(w io.Writer, rows [][]string) error {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString(columnGap)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(b.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}

func renderTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return "[" + strings.Join(tags, "] [") + "]"
}
