package catalog

import (
	"errors"
	"fmt"
	"math/rand"
)

// UngroupedID is the bucket for entries without a declared group.
const UngroupedID = "ungrouped"

var (
	// ErrMissingID is returned when an entry or group has no ID.
	ErrMissingID = errors.New("catalog: missing id")
	// ErrDuplicateID is returned when two entries or two groups share an ID.
	ErrDuplicateID = errors.New("catalog: duplicate id")
	// ErrReservedID is returned when a group is declared with UngroupedID.
	ErrReservedID = errors.New("catalog: reserved group id")
)

// Entry is one molecule of the library.
type Entry struct {
	ID      string
	Name    string
	Formula string
	// Alias is the plain-ASCII formula ("H2O" for "H₂O").
	Alias string
	Group string
	// XYZ is handed to the render engine as is.
	XYZ string
}

// Label returns the text shown for the entry in a list.
func (e Entry) Label() string {
	switch {
	case e.Name != "" && e.Formula != "":
		return e.Name + " (" + e.Formula + ")"
	case e.Name != "":
		return e.Name
	case e.Formula != "":
		return e.Formula
	}
	return e.ID
}

// Group is a display section of the catalog.
type Group struct {
	ID    string
	Title string
}

// Section is a group together with its entries, in catalog order.
type Section struct {
	Group   Group
	Entries []Entry
}

// Catalog is an ordered, read-only set of entries partitioned into groups.
type Catalog struct {
	groups  []Group
	entries []Entry
	byID    map[string]int
	groupOf map[string]string
}

// New builds a catalog. Entries keep the given order. An entry whose group
// is empty or not declared in groups belongs to the ungrouped bucket.
func New(groups []Group, entries []Entry) (*Catalog, error) {
	c := &Catalog{
		byID:    make(map[string]int, len(entries)),
		groupOf: make(map[string]string, len(entries)),
	}

	declared := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g.ID == "" {
			return nil, fmt.Errorf("group %q: %w", g.Title, ErrMissingID)
		}
		if g.ID == UngroupedID {
			return nil, fmt.Errorf("group %q: %w", g.ID, ErrReservedID)
		}
		if declared[g.ID] {
			return nil, fmt.Errorf("group %q: %w", g.ID, ErrDuplicateID)
		}
		declared[g.ID] = true
		if g.Title == "" {
			g.Title = g.ID
		}
		c.groups = append(c.groups, g)
	}

	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("molecule %q: %w", e.Name, ErrMissingID)
		}
		if _, ok := c.byID[e.ID]; ok {
			return nil, fmt.Errorf("molecule %q: %w", e.ID, ErrDuplicateID)
		}
		if e.Alias == "" {
			e.Alias = ASCIIAlias(e.Formula)
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)

		if declared[e.Group] {
			c.groupOf[e.ID] = e.Group
		} else {
			c.groupOf[e.ID] = UngroupedID
		}
	}
	return c, nil
}

// Len returns the number of entries. A nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in catalog order.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get looks an entry up by ID.
func (c *Catalog) Get(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// GroupOf returns the ID of the section the entry is listed under.
func (c *Catalog) GroupOf(id string) string {
	if c == nil {
		return UngroupedID
	}
	if g, ok := c.groupOf[id]; ok {
		return g
	}
	return UngroupedID
}

// Group returns the declared group, or the ungrouped bucket.
func (c *Catalog) Group(id string) Group {
	if c != nil {
		for _, g := range c.groups {
			if g.ID == id {
				return g
			}
		}
	}
	return Group{ID: UngroupedID, Title: "Other"}
}

// DeclaredGroups returns the groups the catalog was built with.
func (c *Catalog) DeclaredGroups() []Group {
	if c == nil {
		return nil
	}
	out := make([]Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Sections partitions the entries by group: declared groups first, in
// declaration order, then the ungrouped bucket. Groups without entries are
// left out.
func (c *Catalog) Sections() []Section {
	if c == nil {
		return nil
	}
	byGroup := make(map[string][]Entry)
	for _, e := range c.entries {
		g := c.groupOf[e.ID]
		byGroup[g] = append(byGroup[g], e)
	}

	var out []Section
	for _, g := range c.groups {
		if es := byGroup[g.ID]; len(es) > 0 {
			out = append(out, Section{Group: g, Entries: es})
		}
	}
	if es := byGroup[UngroupedID]; len(es) > 0 {
		out = append(out, Section{Group: c.Group(UngroupedID), Entries: es})
	}
	return out
}

// Random picks an entry uniformly. It returns false for an empty catalog.
func (c *Catalog) Random(rng *rand.Rand) (Entry, bool) {
	if c.Len() == 0 {
		return Entry{}, false
	}
	var i int
	if rng != nil {
		i = rng.Intn(len(c.entries))
	} else {
		i = rand.Intn(len(c.entries))
	}
	return c.entries[i], true
}
