// Package search filters the molecule catalog as the user types.
//
// Every query change recomputes the whole result from the catalog; nothing
// is patched incrementally, so deleting characters is as correct as adding
// them. The catalog is small enough that a linear scan per keystroke is
// cheap.
package search

import (
	"strings"

	"github.com/molview/molview/internal/catalog"
)

// List sizes, in rows.
const (
	CollapsedListSize = 1
	MinListSize       = 3
	MaxListSize       = 10
)

// QueryState is the current search input.
type QueryState struct {
	Raw        string
	Normalized string
}

// NewQueryState normalizes raw input.
func NewQueryState(raw string) QueryState {
	return QueryState{Raw: raw, Normalized: Normalize(raw)}
}

// Empty reports whether the query shows the whole catalog.
func (q QueryState) Empty() bool {
	return q.Normalized == ""
}

// Normalize lowercases and trims a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// FilterResult describes what the list should show for a query.
type FilterResult struct {
	Query             QueryState
	VisibleEntryIDs   map[string]struct{}
	VisibleGroupIDs   map[string]struct{}
	VisibleCount      int
	SuggestedListSize int
	// Sections holds the visible groups with their visible entries, in
	// catalog order.
	Sections []catalog.Section
}

// EntryVisible reports whether the entry matched.
func (r FilterResult) EntryVisible(id string) bool {
	_, ok := r.VisibleEntryIDs[id]
	return ok
}

// GroupVisible reports whether the group has at least one visible entry.
func (r FilterResult) GroupVisible(id string) bool {
	_, ok := r.VisibleGroupIDs[id]
	return ok
}

// Entries flattens Sections into the visible rows, top to bottom.
func (r FilterResult) Entries() []catalog.Entry {
	out := make([]catalog.Entry, 0, r.VisibleCount)
	for _, s := range r.Sections {
		out = append(out, s.Entries...)
	}
	return out
}

// ApplyQuery filters cat by query. An entry is visible when the query is
// empty or is a substring of its label, name, formula or ASCII alias,
// ignoring case. A group is visible when any of its entries is.
func ApplyQuery(cat *catalog.Catalog, query string) FilterResult {
	q := NewQueryState(query)
	res := FilterResult{
		Query:           q,
		VisibleEntryIDs: make(map[string]struct{}),
		VisibleGroupIDs: make(map[string]struct{}),
	}

	for _, section := range cat.Sections() {
		var visible []catalog.Entry
		for _, e := range section.Entries {
			if q.Empty() || Matches(e, q.Normalized) {
				visible = append(visible, e)
				res.VisibleEntryIDs[e.ID] = struct{}{}
			}
		}
		if len(visible) == 0 {
			continue
		}
		res.VisibleGroupIDs[section.Group.ID] = struct{}{}
		res.Sections = append(res.Sections, catalog.Section{Group: section.Group, Entries: visible})
		res.VisibleCount += len(visible)
	}

	res.SuggestedListSize = suggestedListSize(q, res.VisibleCount)
	return res
}

// Matches reports whether an already normalized query hits any of the
// entry's searchable fields.
func Matches(e catalog.Entry, normalized string) bool {
	for _, field := range [...]string{e.Label(), e.Name, e.Formula, e.Alias} {
		if strings.Contains(strings.ToLower(field), normalized) {
			return true
		}
	}
	return false
}

func suggestedListSize(q QueryState, visible int) int {
	if q.Empty() {
		return CollapsedListSize
	}
	return clamp(visible+2, MinListSize, MaxListSize)
}

// OnFocus reports whether focusing the search input should expand the list.
func OnFocus(query string) bool {
	return Normalize(query) != ""
}

// OnBlurOutside reports whether losing focus to something other than the
// input or the list should collapse the list to a single row.
func OnBlurOutside(query string) bool {
	return Normalize(query) == ""
}

// ExpandedListSize is the size the list takes when focus expands it.
func ExpandedListSize(cat *catalog.Catalog) int {
	return min(MaxListSize, cat.Len())
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
