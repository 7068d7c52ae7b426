package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Engine names accepted in renderer.engine.
const (
	EngineHeadless = "headless"
	EngineWasm     = "wasm"
)

// Config holds the application configuration.
type Config struct {
	Catalog  CatalogConfig  `yaml:"catalog"`
	Renderer RendererConfig `yaml:"renderer"`
	Display  DisplayConfig  `yaml:"display"`
	TUI      TUIConfig      `yaml:"tui"`
}

// CatalogConfig selects the molecule library.
type CatalogConfig struct {
	// File is a YAML catalog merged over the built-in library. Relative
	// paths are resolved against the config directory.
	File           string `yaml:"file"`
	IncludeBuiltin bool   `yaml:"include_builtin"`
}

// RendererConfig selects the render engine.
type RendererConfig struct {
	Engine     string  `yaml:"engine"`
	WasmPath   string  `yaml:"wasm_path"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

// DisplayConfig holds the initial display settings.
type DisplayConfig struct {
	Representation string  `yaml:"representation"`
	AtomScale      float64 `yaml:"atom_scale"`
	BondRadius     float64 `yaml:"bond_radius"`
	Zoom           float64 `yaml:"zoom"`
	AutoRotate     bool    `yaml:"auto_rotate"`
}

// TUIConfig holds TUI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"` // glamour style: auto, dark, light, notty
}

// Defaults returns a Config with sensible defaults.
func Defaults() Config {
	return Config{
		Catalog: CatalogConfig{
			File:           "catalog.yaml",
			IncludeBuiltin: true,
		},
		Renderer: RendererConfig{
			Engine:     EngineHeadless,
			PixelRatio: 1,
		},
		Display: DisplayConfig{
			Representation: "ball",
			AtomScale:      1,
			BondRadius:     0.1,
			Zoom:           1,
		},
		TUI: TUIConfig{
			Theme: "auto",
		},
	}
}

// Validate reports every setting the application cannot use.
func (c Config) Validate() error {
	var errs []error
	switch c.Renderer.Engine {
	case EngineHeadless:
	case EngineWasm:
		if c.Renderer.WasmPath == "" {
			errs = append(errs, errors.New("renderer.wasm_path is required for the wasm engine"))
		}
	default:
		errs = append(errs, fmt.Errorf("renderer.engine %q must be %s or %s", c.Renderer.Engine, EngineHeadless, EngineWasm))
	}
	if c.Renderer.PixelRatio < 0 {
		errs = append(errs, fmt.Errorf("renderer.pixel_ratio %v must not be negative", c.Renderer.PixelRatio))
	}
	if !(c.Display.AtomScale > 0 && c.Display.AtomScale < 10) {
		errs = append(errs, fmt.Errorf("display.atom_scale %v must be between 0 and 10", c.Display.AtomScale))
	}
	if !(c.Display.BondRadius > 0) {
		errs = append(errs, fmt.Errorf("display.bond_radius %v must be positive", c.Display.BondRadius))
	}
	if !(c.Display.Zoom > 0) {
		errs = append(errs, fmt.Errorf("display.zoom %v must be positive", c.Display.Zoom))
	}
	switch c.TUI.Theme {
	case "auto", "dark", "light", "notty":
	default:
		errs = append(errs, fmt.Errorf("tui.theme %q must be auto, dark, light or notty", c.TUI.Theme))
	}
	return errors.Join(errs...)
}

// Load reads the config from disk. If the file doesn't exist, returns defaults.
func Load() (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(ConfigFile())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), err
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigFile(), data, 0o644)
}

// IsFirstRun returns true if the config file does not exist.
func IsFirstRun() bool {
	_, err := os.Stat(ConfigFile())
	return os.IsNotExist(err)
}
