package search

import "github.com/molview/molview/internal/catalog"

// Engine keeps the query for one search input over a fixed catalog.
// It is driven by a single input and is not safe for concurrent use.
type Engine struct {
	catalog  *catalog.Catalog
	query    QueryState
	result   FilterResult
	listSize int
}

// NewEngine returns an engine showing the whole catalog, collapsed.
func NewEngine(cat *catalog.Catalog) *Engine {
	e := &Engine{catalog: cat}
	e.SetQuery("")
	return e
}

// SetQuery replaces the query and recomputes the result.
func (e *Engine) SetQuery(raw string) FilterResult {
	e.query = NewQueryState(raw)
	e.result = ApplyQuery(e.catalog, raw)
	e.listSize = e.result.SuggestedListSize
	return e.result
}

// Focus handles focus entering the search input and returns the list size.
func (e *Engine) Focus() int {
	if OnFocus(e.query.Raw) {
		e.listSize = max(ExpandedListSize(e.catalog), CollapsedListSize)
	}
	return e.listSize
}

// Open expands the list regardless of the query, as when the list itself
// takes focus. It never shrinks a list that a query has already sized.
func (e *Engine) Open() int {
	e.listSize = max(e.listSize, ExpandedListSize(e.catalog), CollapsedListSize)
	return e.listSize
}

// BlurOutside handles focus leaving both the input and the list and returns
// the list size.
func (e *Engine) BlurOutside() int {
	if OnBlurOutside(e.query.Raw) {
		e.listSize = CollapsedListSize
	}
	return e.listSize
}

// Catalog returns the catalog being searched.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Query returns the current query.
func (e *Engine) Query() QueryState { return e.query }

// Result returns the result of the last query.
func (e *Engine) Result() FilterResult { return e.result }

// ListSize returns the number of rows the list should currently show.
func (e *Engine) ListSize() int { return e.listSize }
