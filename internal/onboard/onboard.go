package onboard

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/molview/molview/internal/config"
	"github.com/molview/molview/internal/render"
)

// starterCatalog is written next to the config on first run. Everything in
// it is commented out, so it adds nothing until the user edits it.
const starterCatalog = `# Molecules listed here are added to the built-in library.
# An entry with the id of a built-in molecule replaces it.
#
# groups:
#   - id: mine
#     title: My molecules
# molecules:
#   - id: ozone
#     name: Ozone
#     formula: O₃
#     group: mine
#     xyz: |
#       3
#       Ozone
#       O    0.000000    0.000000    0.000000
#       O    1.272000    0.000000    0.000000
#       O   -0.424000    1.199000    0.000000
`

// Result holds the outcome of the first-run setup.
type Result struct {
	Config config.Config
}

// Runner encapsulates onboarding dependencies for testability.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// NewRunner creates a Runner with default stdin/stdout.
func NewRunner() *Runner {
	return &Runner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Run asks for the renderer and default representation, writes a starter
// catalog and saves the config.
func (r *Runner) Run() (*Result, error) {
	w := r.Stdout
	scanner := bufio.NewScanner(r.Stdin)
	ask := func(prompt string) string {
		fmt.Fprint(w, prompt)
		if scanner.Scan() {
			return strings.TrimSpace(scanner.Text())
		}
		return ""
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Welcome to molview!")
	fmt.Fprintln(w, "  A terminal browser for molecule libraries.")
	fmt.Fprintln(w, "")

	cfg := config.Defaults()

	// Step 1: Renderer
	fmt.Fprintln(w, "  molview can drive a WebAssembly build of the renderer.")
	path := ask("  Path to the renderer .wasm (Enter for headless): ")
	if path != "" {
		fmt.Fprint(w, "  Checking renderer... ")
		if err := checkWasm(path); err != nil {
			fmt.Fprintln(w, "failed.")
			fmt.Fprintf(w, "  %v\n", err)
			fmt.Fprintln(w, "  Falling back to the headless engine.")
		} else {
			fmt.Fprintln(w, "ok.")
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			cfg.Renderer.Engine = config.EngineWasm
			cfg.Renderer.WasmPath = path
		}
	}

	// Step 2: Representation
	fmt.Fprintln(w, "")
	choice := ask(fmt.Sprintf("  Default representation (ball, space, licorice) [%s]: ", cfg.Display.Representation))
	if choice != "" {
		if _, err := render.ParseRepresentation(choice); err != nil {
			fmt.Fprintf(w, "  Unknown representation %q, keeping %s.\n", choice, cfg.Display.Representation)
		} else {
			cfg.Display.Representation = choice
		}
	}

	// Step 3: Create config directory and starter catalog
	fmt.Fprintln(w, "")
	fmt.Fprint(w, "  Creating config directory... ")
	if err := os.MkdirAll(config.Dir(), 0o755); err != nil {
		fmt.Fprintln(w, "failed.")
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	fmt.Fprintln(w, "done.")
	fmt.Fprintf(w, "  Config: %s\n", config.Dir())

	if _, err := os.Stat(config.CatalogFile()); os.IsNotExist(err) {
		if err := os.WriteFile(config.CatalogFile(), []byte(starterCatalog), 0o644); err != nil {
			return nil, fmt.Errorf("writing starter catalog: %w", err)
		}
		fmt.Fprintf(w, "  Catalog: %s\n", config.CatalogFile())
	}

	// Step 4: Save config
	if err := config.Save(cfg); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Setup complete!")
	fmt.Fprintln(w, "  Starting molview...")

	return &Result{Config: cfg}, nil
}

// checkWasm loads the module once to make sure it has the renderer exports.
func checkWasm(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	eng, err := render.OpenWasm(ctx, path, io.Discard)
	if err != nil {
		return err
	}
	return eng.Close(ctx)
}
