package tui

import (
	"strings"

	"github.com/molview/molview/internal/search"
)

// listRow is one line of the molecule list: a group title or an entry.
type listRow struct {
	header bool
	text   string
	index  int // position in the visible entries, -1 for headers
}

func buildRows(res search.FilterResult) []listRow {
	rows := make([]listRow, 0, res.VisibleCount+len(res.Sections))
	i := 0
	for _, s := range res.Sections {
		rows = append(rows, listRow{header: true, text: s.Group.Title, index: -1})
		for _, e := range s.Entries {
			rows = append(rows, listRow{text: e.Label(), index: i})
			i++
		}
	}
	return rows
}

// windowRows returns at most size rows, scrolled so that the row holding
// cursor is visible and its group title is shown when there is room.
func windowRows(rows []listRow, cursor, size int) []listRow {
	if size <= 0 || len(rows) == 0 {
		return nil
	}
	if len(rows) <= size {
		return rows
	}

	at := 0
	for i, r := range rows {
		if r.index == cursor {
			at = i
			break
		}
	}

	start := at - size/2
	if at > 0 && rows[at-1].header && start > at-1 {
		start = at - 1
	}
	start = max(0, min(start, len(rows)-size))
	return rows[start : start+size]
}

// renderList draws the list for the given size. A size of one is the
// collapsed dropdown: only the selected entry is shown.
func renderList(res search.FilterResult, cursor, size, width int, focused bool) string {
	entries := res.Entries()
	if len(entries) == 0 {
		if res.Query.Empty() {
			return emptyListStyle.Render("  (catalog is empty)")
		}
		return emptyListStyle.Render("  No molecules match " + quote(res.Query.Raw))
	}

	if size <= 1 {
		label := entries[min(max(cursor, 0), len(entries)-1)].Label()
		return rowStyle.Render(truncate("  "+label+" ▾", width))
	}

	var lines []string
	for _, r := range windowRows(buildRows(res), cursor, size) {
		switch {
		case r.header:
			lines = append(lines, groupHeaderStyle.Render(truncate(r.text, width)))
		case r.index == cursor:
			marker := "> "
			if !focused {
				marker = "* "
			}
			lines = append(lines, selectedRowStyle.Render(truncate("  "+marker+r.text, width)))
		default:
			lines = append(lines, rowStyle.Render(truncate("    "+r.text, width)))
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func quote(s string) string {
	return "\"" + strings.TrimSpace(s) + "\""
}
