package tui

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/molview/molview/internal/catalog"
	"github.com/molview/molview/internal/fetch"
	"github.com/molview/molview/internal/render"
	"github.com/molview/molview/internal/search"
	"github.com/molview/molview/internal/update"
)

// Options configures the TUI.
type Options struct {
	Catalog *catalog.Catalog
	Engine  render.Engine
	// Settings are the display settings already applied to Engine.
	Settings   render.Settings
	PixelRatio float64
	Theme      string
	Version    string
	Rand       *rand.Rand
	Fetcher    *fetch.Client
}

// logLines is how many output log lines stay on screen.
const logLines = 3

// MoleculeLoadedMsg reports a molecule the engine accepted.
type MoleculeLoadedMsg struct {
	Entry  catalog.Entry
	Source string
	Info   render.Info
}

// MoleculeErrMsg reports a molecule that could not be read or loaded.
type MoleculeErrMsg struct {
	Source string
	Err    error
}

// ExportDoneMsg carries the result of a spreadsheet export.
type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

// UpdateCheckMsg carries the result of a background update check.
type UpdateCheckMsg struct {
	Result *update.Result
	Err    error
}

// UpdateApplyMsg carries the result of an update apply.
type UpdateApplyMsg struct {
	Result *update.Result
	Err    error
}

type focusArea int

const (
	focusNone focusArea = iota
	focusSearch
	focusList
)

// Model is the Bubble Tea model for the molecule browser.
type Model struct {
	options  Options
	search   *search.Engine
	input    textinput.Model
	info     viewport.Model
	spinner  spinner.Model
	focus    focusArea
	cursor   int
	messages []displayMessage
	width    int
	height   int

	settings render.Settings
	current  *MoleculeLoadedMsg
	loading  bool

	mdRenderer *glamour.TermRenderer
	ready      bool
	quitting   bool
}

type displayMessage struct {
	role    string // "info" or "error"
	content string
}

// New creates a new TUI model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Search molecules (name or formula), / for commands"
	ti.Prompt = inputPromptStyle.Render("Search: ")
	ti.CharLimit = 256
	ti.Focus()

	vp := viewport.New(80, 10)
	// Letters belong to the search box; the info pane only pages.
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedRowStyle

	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(rand.Int63()))
	}

	m := Model{
		options:    opts,
		search:     search.NewEngine(opts.Catalog),
		input:      ti,
		info:       vp,
		spinner:    sp,
		focus:      focusSearch,
		settings:   opts.Settings,
		mdRenderer: newRenderer(opts.Theme, 76),
	}
	m.logInfo(fmt.Sprintf("Ready. %d molecules in the library.", opts.Catalog.Len()))
	return m
}

func newRenderer(theme string, wrap int) *glamour.TermRenderer {
	style := glamour.WithAutoStyle()
	if theme != "" && theme != "auto" {
		style = glamour.WithStandardStyle(theme)
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))
	if err != nil {
		log.Printf("glamour renderer: %v", err)
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case tea.KeyCtrlR:
			return m.loadRandom()

		case tea.KeyTab, tea.KeyShiftTab:
			if m.focus == focusSearch {
				m.focusList()
				return m, nil
			}
			return m, m.focusSearch()

		case tea.KeyEsc:
			m.blurOutside()
			return m, nil

		case tea.KeyUp:
			m.moveCursor(-1)
			return m, nil

		case tea.KeyDown:
			m.moveCursor(1)
			return m, nil

		case tea.KeyEnter:
			return m.handleSubmit()
		}

		switch m.focus {
		case focusList:
			switch msg.String() {
			case "k":
				m.moveCursor(-1)
			case "j":
				m.moveCursor(1)
			case "/":
				cmd := m.focusSearch()
				m.input.SetValue("/")
				m.input.CursorEnd()
				return m, cmd
			}
			return m, nil
		case focusNone:
			// Typing anywhere goes back to the search box.
			cmds = append(cmds, m.focusSearch())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if !m.ready {
			m.ready = true
			m.updateInfo()
			if update.IsRelease(m.options.Version) {
				cmds = append(cmds, m.checkForUpdate())
			}
		}
		m.resizeEngine()
		return m, tea.Batch(cmds...)

	case MoleculeLoadedMsg:
		m.loading = false
		m.current = &msg
		if msg.Entry.ID != "" {
			m.selectEntry(msg.Entry.ID)
		}
		m.logInfo(fmt.Sprintf("Loaded %s (%s) from %s.", msg.Info.Name, msg.Info.Formula, msg.Source))
		m.updateInfo()
		return m, nil

	case MoleculeErrMsg:
		m.loading = false
		m.logError(fmt.Sprintf("Error loading %s: %v", msg.Source, msg.Err))
		return m, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			m.logError(fmt.Sprintf("Export failed: %v", msg.Err))
		} else {
			m.logInfo(fmt.Sprintf("Exported %d molecules to %s.", msg.Count, msg.Path))
		}
		return m, nil

	case UpdateCheckMsg:
		if msg.Err == nil && msg.Result != nil && msg.Result.UpdateAvailable {
			m.logInfo(msg.Result.Notice())
		}
		return m, nil

	case UpdateApplyMsg:
		if msg.Err != nil {
			m.logError(fmt.Sprintf("Update failed: %v", msg.Err))
		} else {
			m.logInfo(msg.Result.Notice())
		}
		return m, nil
	}

	if m.loading {
		var spCmd tea.Cmd
		m.spinner, spCmd = m.spinner.Update(msg)
		cmds = append(cmds, spCmd)
	}

	if m.focus == focusSearch {
		before := m.input.Value()
		var tiCmd tea.Cmd
		m.input, tiCmd = m.input.Update(msg)
		cmds = append(cmds, tiCmd)
		if after := m.input.Value(); after != before {
			m.applyQuery(after)
		}
	}

	var vpCmd tea.Cmd
	m.info, vpCmd = m.info.Update(msg)
	cmds = append(cmds, vpCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return "Initializing..."
	}

	res := m.search.Result()
	status := StatusBar(m.options.Engine.Name(), res.VisibleCount, m.options.Catalog.Len(), m.settings.Representation.String(), m.width)
	separator := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Width(m.width).
		Render(strings.Repeat("─", m.width))

	info := m.info.View()
	if m.loading {
		info = m.spinner.View() + " Loading molecule...\n" + info
	}

	return strings.Join([]string{
		status,
		m.input.View(),
		renderList(res, m.cursor, m.search.ListSize(), m.width, m.focus == focusList),
		separator,
		info,
		separator,
		m.renderLog(),
	}, "\n")
}

// applyQuery re-filters the list and keeps the selected entry under the
// cursor when it is still visible. Commands do not filter.
func (m *Model) applyQuery(value string) {
	if IsCommand(value) {
		return
	}
	selected := m.selectedID()
	m.search.SetQuery(value)
	m.cursor = 0
	if selected != "" {
		m.selectEntry(selected)
	}
	m.layout()
}

func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.focus == focusSearch {
		if cmd := ParseCommand(m.input.Value()); cmd != nil {
			// The command line gives way to the query it interrupted.
			m.input.SetValue(m.search.Query().Raw)
			m.input.CursorEnd()
			return m.handleCommand(cmd)
		}
	}

	entries := m.search.Result().Entries()
	if len(entries) == 0 {
		m.logError("No molecule selected or molecule not found in library.")
		return m, nil
	}
	e := entries[min(max(m.cursor, 0), len(entries)-1)]
	return m, m.loadEntry(e, "library")
}

func (m *Model) handleCommand(cmd *Command) (tea.Model, tea.Cmd) {
	handler, ok := commandHandlers[cmd.Name]
	if !ok {
		m.logError(fmt.Sprintf("Unknown command: /%s (try /help)", cmd.Name))
		return m, nil
	}
	return handler(m, cmd.Args)
}

// focusSearch moves focus into the search box; a non-empty query expands
// the list.
func (m *Model) focusSearch() tea.Cmd {
	m.focus = focusSearch
	m.search.Focus()
	m.layout()
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.search.Open()
	m.layout()
}

// blurOutside leaves both the search box and the list.
func (m *Model) blurOutside() {
	m.focus = focusNone
	m.input.Blur()
	m.search.BlurOutside()
	m.layout()
}

func (m *Model) moveCursor(delta int) {
	n := m.search.Result().VisibleCount
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) selectedID() string {
	entries := m.search.Result().Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return ""
	}
	return entries[m.cursor].ID
}

// selectEntry puts the cursor on id if it is visible.
func (m *Model) selectEntry(id string) bool {
	for i, e := range m.search.Result().Entries() {
		if e.ID == id {
			m.cursor = i
			return true
		}
	}
	return false
}

func (m *Model) loadRandom() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	e, ok := m.options.Catalog.Random(m.options.Rand)
	if !ok {
		m.logError("No molecules available in library.")
		return m, nil
	}
	m.selectEntry(e.ID)
	return m, m.loadEntry(e, "library (random)")
}

// loadEntry starts loading e unless a load is already in flight.
func (m *Model) loadEntry(e catalog.Entry, source string) tea.Cmd {
	if m.busy() {
		return nil
	}
	m.loading = true
	eng := m.options.Engine
	return tea.Batch(func() tea.Msg {
		return loadXYZ(context.Background(), eng, e, source)
	}, m.spinner.Tick)
}

// busy reports whether a load is in flight. The engine holds one molecule,
// so a second load would race the first one's info.
func (m *Model) busy() bool {
	if m.loading {
		m.logInfo("Still loading the previous molecule.")
	}
	return m.loading
}

func loadXYZ(ctx context.Context, eng render.Engine, e catalog.Entry, source string) tea.Msg {
	if err := eng.LoadMolecule(ctx, e.XYZ); err != nil {
		return MoleculeErrMsg{Source: source, Err: err}
	}
	info, err := eng.Info(ctx)
	if err != nil {
		return MoleculeErrMsg{Source: source, Err: err}
	}
	return MoleculeLoadedMsg{Entry: e, Source: source, Info: info}
}

// layout sizes the info pane to what the header, list and log leave over.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	// status, input, list, two separators, log
	fixed := 1 + 1 + max(m.search.ListSize(), 1) + 2 + logLines
	h := max(m.height-fixed, 1)
	m.info.Width = m.width
	m.info.Height = h
}

// resizeEngine tells the engine the size of the drawing area in pixels.
func (m *Model) resizeEngine() {
	w, h := render.BufferSize(m.info.Width, m.info.Height, m.options.PixelRatio)
	if err := m.options.Engine.UpdateProjectionAspect(context.Background(), w, h); err != nil {
		m.logError(fmt.Sprintf("Error updating projection: %v", err))
	}
}

func (m *Model) logInfo(text string) {
	m.messages = append(m.messages, displayMessage{role: "info", content: text})
}

func (m *Model) logError(text string) {
	log.Print(text)
	m.messages = append(m.messages, displayMessage{role: "error", content: text})
}

func (m *Model) renderLog() string {
	start := max(len(m.messages)-logLines, 0)
	var lines []string
	for _, msg := range m.messages[start:] {
		text := truncate(msg.content, m.width)
		if msg.role == "error" {
			lines = append(lines, errorMsgStyle.Render(text))
		} else {
			lines = append(lines, infoMsgStyle.Render(text))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderMarkdown(content string) string {
	if m.mdRenderer == nil {
		return content
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

// updateInfo redraws the molecule pane.
func (m *Model) updateInfo() {
	m.info.SetContent(m.renderMarkdown(moleculeMarkdown(m.current, m.options.Catalog, m.settings)))
	m.info.GotoTop()
}

func moleculeMarkdown(cur *MoleculeLoadedMsg, cat *catalog.Catalog, s render.Settings) string {
	var b strings.Builder
	if cur == nil {
		b.WriteString("# No molecule loaded\n\nPick one from the list and press Enter, or press Ctrl+R.\n\n")
	} else {
		fmt.Fprintf(&b, "# %s\n\n", cur.Info.Name)
		fmt.Fprintf(&b, "**Formula:** %s", cur.Info.Formula)
		if cur.Entry.ID != "" {
			fmt.Fprintf(&b, " · **Library:** %s · **Group:** %s", cur.Entry.Label(), cat.Group(cat.GroupOf(cur.Entry.ID)).Title)
		}
		fmt.Fprintf(&b, " · **Source:** %s\n\n", cur.Source)
	}

	rotate := "off"
	if s.AutoRotate {
		rotate = "on"
	}
	fmt.Fprintf(&b, "%s · atom scale %.2f · bond radius %.2f · zoom %.2f · auto-rotate %s\n",
		s.Representation, s.AtomScale, s.BondRadius, s.Zoom, rotate)

	if cur != nil && strings.TrimSpace(cur.Entry.XYZ) != "" {
		b.WriteString("\n```\n")
		b.WriteString(strings.TrimRight(cur.Entry.XYZ, "\n"))
		b.WriteString("\n```\n")
	}
	return b.String()
}

func (m *Model) checkForUpdate() tea.Cmd {
	version := m.options.Version
	return func() tea.Msg {
		res, err := update.Check(context.Background(), version)
		return UpdateCheckMsg{Result: res, Err: err}
	}
}
