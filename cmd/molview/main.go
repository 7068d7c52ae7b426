package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/molview/molview/internal/catalog"
	"github.com/molview/molview/internal/config"
	"github.com/molview/molview/internal/onboard"
	"github.com/molview/molview/internal/search"
	"github.com/molview/molview/internal/tui"
	"github.com/molview/molview/internal/update"
)

var version = "dev"

type options struct {
	catalogPath string
	wasmPath    string
	query       string
	queryMode   bool
	exportPath  string
}

func main() {
	var opts options
	var rest []string
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		hasValue := i+1 < len(os.Args)
		switch {
		case arg == "--catalog" && hasValue:
			opts.catalogPath = os.Args[i+1]
			i++
		case arg == "--wasm" && hasValue:
			opts.wasmPath = os.Args[i+1]
			i++
		case arg == "--query" && hasValue:
			opts.query = os.Args[i+1]
			opts.queryMode = true
			i++
		case arg == "--export" && hasValue:
			opts.exportPath = os.Args[i+1]
			i++
		default:
			rest = append(rest, arg)
		}
	}

	if len(rest) > 0 {
		switch rest[0] {
		case "--version", "-v":
			fmt.Printf("molview %s\n", version)
			return
		case "--help", "-h":
			printHelp()
			return
		case "--uninstall":
			runUninstall()
			return
		case "--update":
			runUpdate()
			return
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s (see molview --help)\n", rest[0])
			os.Exit(2)
		}
	}

	var err error
	if opts.queryMode || opts.exportPath != "" {
		err = runPipe(opts)
	} else {
		err = run(opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if opts.wasmPath != "" {
		cfg.Renderer.Engine = config.EngineWasm
		cfg.Renderer.WasmPath = opts.wasmPath
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", config.ConfigFile(), err)
	}
	return cfg, nil
}

func run(opts options) error {
	// First run: onboarding
	if config.IsFirstRun() {
		if _, err := onboard.NewRunner().Run(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if os.Getenv("MOLVIEW_DEBUG") != "" {
		f, err := tea.LogToFile(config.DebugLogFile(), "molview")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cat, err := loadCatalog(cfg, opts.catalogPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	eng, err := openEngine(ctx, cfg.Renderer, log.Writer())
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	settings, err := applyDisplay(ctx, eng, cfg.Display)
	if err != nil {
		return err
	}

	model := tui.New(tui.Options{
		Catalog:    cat,
		Engine:     eng,
		Settings:   settings,
		PixelRatio: cfg.Renderer.PixelRatio,
		Theme:      cfg.TUI.Theme,
		Version:    version,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// runPipe filters the catalog without the TUI: it prints the grouped
// result and optionally exports it.
func runPipe(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg, opts.catalogPath)
	if err != nil {
		return err
	}

	res := search.ApplyQuery(cat, opts.query)
	if opts.queryMode {
		printResult(os.Stdout, res, cat.Len())
	}

	if opts.exportPath != "" {
		if err := catalog.ExportXLSX(opts.exportPath, res.Entries()); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d molecules to %s\n", res.VisibleCount, opts.exportPath)
	}
	return nil
}

func printResult(w io.Writer, res search.FilterResult, total int) {
	for _, s := range res.Sections {
		fmt.Fprintln(w, s.Group.Title)
		for _, e := range s.Entries {
			fmt.Fprintf(w, "  %-16s %s\n", e.ID, e.Label())
		}
	}
	if res.VisibleCount == 0 {
		fmt.Fprintf(w, "No molecules match %q.\n", strings.TrimSpace(res.Query.Raw))
		return
	}
	fmt.Fprintf(w, "%d of %d molecules\n", res.VisibleCount, total)
}

func runUpdate() {
	if !update.IsRelease(version) {
		fmt.Println("Auto-update is not available for development builds.")
		return
	}
	fmt.Println("Checking for updates...")
	res, err := update.Apply(context.Background(), version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Update failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(res.Notice())
}

func runUninstall() {
	configDir := config.Dir()
	fmt.Println("molview Uninstall")
	fmt.Println("=================")
	fmt.Println("")
	fmt.Println("This will remove all molview data:")
	fmt.Printf("  Config, catalog & logs: %s\n", configDir)
	fmt.Println("")
	fmt.Print("Are you sure? (y/N) ")

	var answer string
	fmt.Scanln(&answer)
	if answer != "y" && answer != "Y" {
		fmt.Println("Cancelled.")
		return
	}

	if err := os.RemoveAll(configDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", configDir, err)
		os.Exit(1)
	}
	fmt.Printf("Removed %s\n", configDir)

	exe, err := os.Executable()
	if err == nil {
		fmt.Printf("\nTo complete removal, delete the binary:\n  rm %s\n", exe)
	}
	fmt.Println("\nmolview has been uninstalled.")
}

func printHelp() {
	fmt.Printf(`molview %s - browse and load molecules from a library

Usage:
  molview                             Start the TUI
  molview --catalog <file>            Merge a YAML catalog over the built-in library
  molview --wasm <file>               Render with a WebAssembly renderer module
  molview --query "<text>"            Print the molecules matching text and exit
  molview --export <file.xlsx>        Export molecules to a spreadsheet and exit
  molview --version                   Print version and exit
  molview --help                      Show this help
  molview --update                    Update to the latest version
  molview --uninstall                 Remove all molview data from your system

Keys (in TUI):
  type to search, Up/Down to select, Enter to load, Tab to switch focus,
  Esc to leave the list, Ctrl+R for a random molecule, Ctrl+C to quit.

Slash commands (in TUI):
  /help                Show available commands
  /quit, /exit         Exit molview
  /rep <mode>          Representation: ball, space, licorice
  /scale <factor>      Atom display scale
  /bond <radius>       Bond radius
  /zoom <level>        Zoom level
  /rotate [on|off]     Toggle auto-rotation
  /random              Load a random molecule
  /load <path|url>     Load an XYZ file or URL
  /export <file.xlsx>  Export the visible molecules
  /clear               Clear the output log
  /update              Check for updates and upgrade

Configuration:
  Config is stored in %s
  Override with MOLVIEW_CONFIG_DIR environment variable.
  Set MOLVIEW_DEBUG=1 to write a debug log next to the config.

Examples:
  molview --query meth                                 Methane, methanol, ...
  molview --query h2o                                  Formulas match with plain digits
  molview --query ace --export acetyls.xlsx            Export the matches
  molview --catalog ~/chem/lab.yaml                    Add your own molecules
  MOLVIEW_CONFIG_DIR=/tmp/test molview                 Use custom config dir
`, version, config.Dir())
}
