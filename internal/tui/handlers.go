package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/molview/molview/internal/catalog"
	"github.com/molview/molview/internal/fetch"
	"github.com/molview/molview/internal/render"
	"github.com/molview/molview/internal/update"
)

type commandHandler func(m *Model, args string) (tea.Model, tea.Cmd)

var commandHandlers = map[string]commandHandler{
	"help":   handleHelp,
	"quit":   handleQuit,
	"exit":   handleQuit,
	"clear":  handleClear,
	"rep":    handleRep,
	"scale":  handleScale,
	"bond":   handleBond,
	"zoom":   handleZoom,
	"rotate": handleRotate,
	"random": handleRandom,
	"load":   handleLoad,
	"export": handleExport,
	"update": handleUpdate,
}

func handleQuit(m *Model, args string) (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func handleHelp(m *Model, args string) (tea.Model, tea.Cmd) {
	m.info.SetContent(HelpText())
	m.info.GotoTop()
	m.logInfo("Showing help. Load a molecule to return to the molecule view.")
	return m, nil
}

func handleClear(m *Model, args string) (tea.Model, tea.Cmd) {
	m.messages = nil
	m.updateInfo()
	return m, nil
}

func handleRep(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.logInfo(fmt.Sprintf("Representation: %s. Usage: /rep ball|space|licorice", m.settings.Representation))
		return m, nil
	}
	rep, err := render.ParseRepresentation(args)
	if err != nil {
		m.logError(fmt.Sprintf("Error setting representation: %v", err))
		return m, nil
	}
	if err := m.options.Engine.SetRepresentation(context.Background(), rep); err != nil {
		m.logError(fmt.Sprintf("Error setting representation: %v", err))
		return m, nil
	}
	m.settings.Representation = rep
	m.logInfo(fmt.Sprintf("Representation set to %s.", rep))
	m.updateInfo()
	return m, nil
}

func handleScale(m *Model, args string) (tea.Model, tea.Cmd) {
	return setFloat(m, args, "atom scale", "/scale <factor>", m.options.Engine.SetAtomScale, &m.settings.AtomScale)
}

func handleBond(m *Model, args string) (tea.Model, tea.Cmd) {
	return setFloat(m, args, "bond radius", "/bond <radius>", m.options.Engine.SetBondRadius, &m.settings.BondRadius)
}

func handleZoom(m *Model, args string) (tea.Model, tea.Cmd) {
	return setFloat(m, args, "zoom", "/zoom <level>", m.options.Engine.SetZoom, &m.settings.Zoom)
}

// setFloat parses a numeric setting, hands it to the engine and records it
// once the engine has accepted it.
func setFloat(m *Model, args, what, usage string, set func(context.Context, float64) error, dst *float64) (tea.Model, tea.Cmd) {
	if args == "" {
		m.logInfo(fmt.Sprintf("Current %s: %.2f. Usage: %s", what, *dst, usage))
		return m, nil
	}
	v, err := strconv.ParseFloat(args, 64)
	if err != nil {
		m.logError(fmt.Sprintf("Invalid %s %q. Usage: %s", what, args, usage))
		return m, nil
	}
	if err := set(context.Background(), v); err != nil {
		m.logError(fmt.Sprintf("Error setting %s: %v", what, err))
		return m, nil
	}
	*dst = v
	m.logInfo(fmt.Sprintf("%s set to %.2f.", capitalize(what), v))
	m.updateInfo()
	return m, nil
}

func handleRotate(m *Model, args string) (tea.Model, tea.Cmd) {
	enabled := !m.settings.AutoRotate
	switch strings.ToLower(args) {
	case "":
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		m.logError("Usage: /rotate [on|off]")
		return m, nil
	}
	if err := m.options.Engine.SetAutoRotate(context.Background(), enabled); err != nil {
		m.logError(fmt.Sprintf("Error setting auto-rotate: %v", err))
		return m, nil
	}
	m.settings.AutoRotate = enabled
	if enabled {
		m.logInfo("Auto-rotate on.")
	} else {
		m.logInfo("Auto-rotate off.")
	}
	m.updateInfo()
	return m, nil
}

func handleRandom(m *Model, args string) (tea.Model, tea.Cmd) {
	return m.loadRandom()
}

func handleLoad(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.logError("Usage: /load <path|url>")
		return m, nil
	}
	if m.busy() {
		return m, nil
	}

	m.loading = true
	eng := m.options.Engine
	client := m.options.Fetcher
	source := args
	return m, tea.Batch(func() tea.Msg {
		ctx := context.Background()
		xyz, err := readSource(ctx, client, source)
		if err != nil {
			return MoleculeErrMsg{Source: source, Err: err}
		}
		return loadXYZ(ctx, eng, catalog.Entry{XYZ: xyz}, source)
	}, m.spinner.Tick)
}

// readSource reads XYZ text from a URL or a local file.
func readSource(ctx context.Context, client *fetch.Client, source string) (string, error) {
	if fetch.IsURL(source) {
		return client.Fetch(ctx, source)
	}
	data, err := os.ReadFile(expandHome(source))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func handleExport(m *Model, args string) (tea.Model, tea.Cmd) {
	if args == "" {
		m.logError("Usage: /export <file.xlsx>")
		return m, nil
	}
	path := expandHome(args)
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}

	entries := m.search.Result().Entries()
	return m, func() tea.Msg {
		err := catalog.ExportXLSX(path, entries)
		return ExportDoneMsg{Path: path, Count: len(entries), Err: err}
	}
}

func handleUpdate(m *Model, args string) (tea.Model, tea.Cmd) {
	version := m.options.Version
	if !update.IsRelease(version) {
		m.logInfo("Auto-update is not available for development builds.")
		return m, nil
	}
	m.logInfo("Checking for updates...")
	return m, func() tea.Msg {
		res, err := update.Apply(context.Background(), version)
		return UpdateApplyMsg{Result: res, Err: err}
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
