package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

type fileGroup struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

type fileMolecule struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
	Alias   string `yaml:"alias,omitempty"`
	Group   string `yaml:"group,omitempty"`
	XYZ     string `yaml:"xyz"`
}

// File is the on-disk catalog format.
type File struct {
	Groups    []fileGroup    `yaml:"groups"`
	Molecules []fileMolecule `yaml:"molecules"`
}

// Builtin returns the bundled molecule library.
func Builtin() *Catalog {
	c, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	groups := make([]Group, 0, len(f.Groups))
	for _, g := range f.Groups {
		groups = append(groups, Group{ID: g.ID, Title: g.Title})
	}
	entries := make([]Entry, 0, len(f.Molecules))
	for _, m := range f.Molecules {
		entries = append(entries, Entry{
			ID:      m.ID,
			Name:    m.Name,
			Formula: m.Formula,
			Alias:   m.Alias,
			Group:   m.Group,
			XYZ:     m.XYZ,
		})
	}
	return New(groups, entries)
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Merge layers extra on top of base. An entry of extra replaces the base
// entry with the same ID in place; other entries and groups are appended.
func Merge(base, extra *Catalog) (*Catalog, error) {
	if extra.Len() == 0 && len(extra.DeclaredGroups()) == 0 {
		return base, nil
	}

	groups := base.DeclaredGroups()
	seen := make(map[string]int, len(groups))
	for i, g := range groups {
		seen[g.ID] = i
	}
	for _, g := range extra.DeclaredGroups() {
		if i, ok := seen[g.ID]; ok {
			groups[i] = g
			continue
		}
		seen[g.ID] = len(groups)
		groups = append(groups, g)
	}

	entries := base.Entries()
	at := make(map[string]int, len(entries))
	for i, e := range entries {
		at[e.ID] = i
	}
	for _, e := range extra.Entries() {
		if i, ok := at[e.ID]; ok {
			entries[i] = e
			continue
		}
		at[e.ID] = len(entries)
		entries = append(entries, e)
	}
	return New(groups, entries)
}
