package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/molview/molview/internal/catalog"
	"github.com/molview/molview/internal/config"
	"github.com/molview/molview/internal/render"
)

// loadCatalog builds the library: the built-in molecules (unless disabled)
// with the user catalog layered on top. A flag path must exist; the
// configured default may be missing.
func loadCatalog(cfg config.Config, flagPath string) (*catalog.Catalog, error) {
	base := &catalog.Catalog{}
	if cfg.Catalog.IncludeBuiltin {
		base = catalog.Builtin()
	}

	path := flagPath
	if path == "" {
		path = config.ResolvePath(cfg.Catalog.File)
	}
	if path == "" {
		return base, nil
	}

	extra, err := catalog.LoadFile(path)
	if err != nil {
		if flagPath == "" && os.IsNotExist(err) {
			return base, nil
		}
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalog.Merge(base, extra)
}

// openEngine starts the configured render engine. Module output goes to out.
func openEngine(ctx context.Context, cfg config.RendererConfig, out io.Writer) (render.Engine, error) {
	switch cfg.Engine {
	case config.EngineWasm:
		eng, err := render.OpenWasm(ctx, config.ResolvePath(cfg.WasmPath), out)
		if err != nil {
			return nil, fmt.Errorf("starting wasm renderer: %w", err)
		}
		return eng, nil
	default:
		return render.NewHeadless(), nil
	}
}

// applyDisplay pushes the configured display settings into eng and returns
// what was applied.
func applyDisplay(ctx context.Context, eng render.Engine, d config.DisplayConfig) (render.Settings, error) {
	s := render.DefaultSettings()

	rep, err := render.ParseRepresentation(d.Representation)
	if err != nil {
		return s, fmt.Errorf("display.representation: %w", err)
	}
	steps := []struct {
		name string
		set  func() error
	}{
		{"representation", func() error { return eng.SetRepresentation(ctx, rep) }},
		{"atom scale", func() error { return eng.SetAtomScale(ctx, d.AtomScale) }},
		{"bond radius", func() error { return eng.SetBondRadius(ctx, d.BondRadius) }},
		{"zoom", func() error { return eng.SetZoom(ctx, d.Zoom) }},
		{"auto-rotate", func() error { return eng.SetAutoRotate(ctx, d.AutoRotate) }},
	}
	for _, step := range steps {
		if err := step.set(); err != nil {
			return s, fmt.Errorf("setting %s: %w", step.name, err)
		}
	}

	s.Representation = rep
	s.AtomScale = d.AtomScale
	s.BondRadius = d.BondRadius
	s.Zoom = d.Zoom
	s.AutoRotate = d.AutoRotate
	return s, nil
}
