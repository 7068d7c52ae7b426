package tui

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/mock/gomock"

	"github.com/molview/molview/internal/catalog"
	"github.com/molview/molview/internal/render"
	"github.com/molview/molview/internal/render/mocks"
	"github.com/molview/molview/internal/search"
)

const waterXYZ = `3
Water molecule
O    0.000000    0.000000    0.119262
H    0.000000    0.757570   -0.477047
H    0.000000   -0.757570   -0.477047
`

func newTestModel(eng render.Engine) Model {
	return New(Options{
		Catalog:    catalog.Builtin(),
		Engine:     eng,
		Settings:   render.DefaultSettings(),
		PixelRatio: 1,
		Theme:      "notty",
		Rand:       rand.New(rand.NewSource(1)),
	})
}

func asModel(t *testing.T, tm tea.Model) Model {
	t.Helper()
	switch v := tm.(type) {
	case Model:
		return v
	case *Model:
		return *v
	}
	t.Fatalf("unexpected model type %T", tm)
	return Model{}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		tm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = asModel(t, tm)
	}
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	tm, cmd := m.Update(tea.KeyMsg{Type: k})
	return asModel(t, tm), cmd
}

func submit(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m.input.SetValue(input)
	return press(t, m, tea.KeyEnter)
}

// collect runs cmd and any batched commands and returns their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func lastMessage(m Model) displayMessage {
	if len(m.messages) == 0 {
		return displayMessage{}
	}
	return m.messages[len(m.messages)-1]
}

func TestInitialView(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	view := m.View()
	if view != "Initializing..." {
		t.Errorf("initial view = %q, want Initializing...", view)
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	tm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = asModel(t, tm)

	if !m.ready {
		t.Fatal("model should be ready after WindowSizeMsg")
	}
	view := m.View()
	if !strings.Contains(view, "25/25 molecules") {
		t.Errorf("view should show the molecule count, got:\n%s", view)
	}
	if !strings.Contains(view, "No molecule loaded") {
		t.Errorf("view should show the empty molecule pane, got:\n%s", view)
	}
}

func TestWindowSize_UpdatesProjection(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mocks.NewMockEngine(ctrl)
	// status, input, one list row, two separators and three log lines
	// leave 32 rows at ratio 2.
	eng.EXPECT().UpdateProjectionAspect(gomock.Any(), 160, 64).Return(nil)

	m := newTestModel(eng)
	m.options.PixelRatio = 2
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
}

func TestWindowSize_ProjectionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mocks.NewMockEngine(ctrl)
	eng.EXPECT().UpdateProjectionAspect(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	m := newTestModel(eng)
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = asModel(t, tm)

	if got := lastMessage(m); got.role != "error" || !strings.Contains(got.content, "boom") {
		t.Errorf("last message = %+v, want projection error", got)
	}
}

func TestTyping_FiltersList(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	m = typeText(t, m, "ace")

	res := m.search.Result()
	if res.VisibleCount != 4 {
		t.Errorf("visible = %d, want 4", res.VisibleCount)
	}
	if got := m.search.ListSize(); got != 6 {
		t.Errorf("list size = %d, want 6", got)
	}
	if res.GroupVisible("simple") {
		t.Error("simple group should be hidden")
	}
}

func TestTyping_CommandDoesNotFilter(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	m = typeText(t, m, "/zoom")

	if got := m.search.Result().VisibleCount; got != 25 {
		t.Errorf("visible = %d, want 25", got)
	}
	if got := m.search.ListSize(); got != search.CollapsedListSize {
		t.Errorf("list size = %d, want collapsed", got)
	}
}

func TestTyping_KeepsSelectedEntry(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	m = typeText(t, m, "ace")
	m, _ = press(t, m, tea.KeyDown)
	if id := m.selectedID(); id != "acetonitrile" {
		t.Fatalf("selected = %q, want acetonitrile", id)
	}

	m = typeText(t, m, "ton")
	if id := m.selectedID(); id != "acetonitrile" {
		t.Errorf("selected after narrowing = %q, want acetonitrile", id)
	}
}

func TestCursorClamps(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m = typeText(t, m, "ace")

	for range 10 {
		m, _ = press(t, m, tea.KeyDown)
	}
	if m.cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.cursor)
	}
	for range 10 {
		m, _ = press(t, m, tea.KeyUp)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
}

func TestFocus(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantTab  int
		wantEsc  int
		wantBack int
	}{
		{name: "empty query", query: "", wantTab: 10, wantEsc: 1, wantBack: 1},
		{name: "query", query: "meth", wantTab: 10, wantEsc: 10, wantBack: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(render.NewHeadless())
			m = typeText(t, m, tt.query)

			m, _ = press(t, m, tea.KeyTab)
			if m.focus != focusList {
				t.Fatalf("focus = %d, want list", m.focus)
			}
			if got := m.search.ListSize(); got != tt.wantTab {
				t.Errorf("size after tab = %d, want %d", got, tt.wantTab)
			}

			m, _ = press(t, m, tea.KeyEsc)
			if m.focus != focusNone {
				t.Fatalf("focus = %d, want none", m.focus)
			}
			if got := m.search.ListSize(); got != tt.wantEsc {
				t.Errorf("size after esc = %d, want %d", got, tt.wantEsc)
			}

			m, _ = press(t, m, tea.KeyShiftTab)
			if m.focus != focusSearch {
				t.Fatalf("focus = %d, want search", m.focus)
			}
			if got := m.search.ListSize(); got != tt.wantBack {
				t.Errorf("size after refocus = %d, want %d", got, tt.wantBack)
			}
		})
	}
}

func TestEsc_KeepsFilteredList(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m = typeText(t, m, "ace")

	m, _ = press(t, m, tea.KeyEsc)

	if got := m.search.ListSize(); got != 6 {
		t.Errorf("list size = %d, want 6", got)
	}
}

func TestTypingAfterEscRefocusesSearch(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m, _ = press(t, m, tea.KeyEsc)

	m = typeText(t, m, "w")

	if m.focus != focusSearch {
		t.Errorf("focus = %d, want search", m.focus)
	}
	if m.input.Value() != "w" {
		t.Errorf("input = %q, want w", m.input.Value())
	}
}

func TestEnter_LoadsSelected(t *testing.T) {
	eng := render.NewHeadless()
	m := newTestModel(eng)
	m = typeText(t, m, "caffeine")

	m, cmd := press(t, m, tea.KeyEnter)
	if !m.loading {
		t.Error("model should be loading")
	}

	var loaded *MoleculeLoadedMsg
	for _, msg := range collect(cmd) {
		if msg, ok := msg.(MoleculeLoadedMsg); ok {
			loaded = &msg
		}
	}
	if loaded == nil {
		t.Fatal("expected MoleculeLoadedMsg")
	}
	if loaded.Info.Formula != "C8H10N4O2" {
		t.Errorf("formula = %q, want C8H10N4O2", loaded.Info.Formula)
	}

	tm, _ := m.Update(*loaded)
	m = asModel(t, tm)
	if m.loading {
		t.Error("loading should be cleared")
	}
	if m.current == nil || m.current.Entry.ID != "caffeine" {
		t.Errorf("current = %+v, want caffeine", m.current)
	}
	if eng.Atoms() != 24 {
		t.Errorf("atoms = %d, want 24", eng.Atoms())
	}
}

func TestEnter_NoMatch(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m = typeText(t, m, "zzz")

	m, cmd := press(t, m, tea.KeyEnter)

	if cmd != nil {
		t.Error("expected no command")
	}
	if got := lastMessage(m); got.role != "error" || !strings.Contains(got.content, "No molecule selected") {
		t.Errorf("last message = %+v", got)
	}
}

func TestMoleculeErr(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m.loading = true

	tm, _ := m.Update(MoleculeErrMsg{Source: "library", Err: render.ErrEmptyMolecule})
	m = asModel(t, tm)

	if m.loading {
		t.Error("loading should be cleared")
	}
	if got := lastMessage(m); got.role != "error" || !strings.Contains(got.content, "Error loading library") {
		t.Errorf("last message = %+v", got)
	}
}

func TestCtrlR_LoadsRandom(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	m, cmd := press(t, m, tea.KeyCtrlR)

	var loaded bool
	for _, msg := range collect(cmd) {
		if msg, ok := msg.(MoleculeLoadedMsg); ok {
			loaded = true
			if msg.Source != "library (random)" {
				t.Errorf("source = %q", msg.Source)
			}
			if m.selectedID() != msg.Entry.ID {
				t.Errorf("cursor on %q, want %q", m.selectedID(), msg.Entry.ID)
			}
		}
	}
	if !loaded {
		t.Error("expected MoleculeLoadedMsg")
	}
}

func TestLoad_IgnoredWhileLoading(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m = typeText(t, m, "caffeine")

	m, first := press(t, m, tea.KeyEnter)
	if !m.loading {
		t.Fatal("model should be loading")
	}

	m, cmd := press(t, m, tea.KeyCtrlR)
	if cmd != nil {
		t.Error("Ctrl+R during a load should not start another")
	}
	if m.selectedID() != "caffeine" {
		t.Errorf("cursor moved to %q while loading", m.selectedID())
	}
	if got := lastMessage(m); got.role != "info" || !strings.Contains(got.content, "Still loading") {
		t.Errorf("last message = %+v", got)
	}

	m, cmd = submit(t, m, "/load water.xyz")
	if cmd != nil {
		t.Error("/load during a load should not start another")
	}

	for _, msg := range collect(first) {
		if msg, ok := msg.(MoleculeLoadedMsg); ok {
			tm, _ := m.Update(msg)
			m = asModel(t, tm)
		}
	}
	if m.loading {
		t.Fatal("loading should be cleared")
	}
	if m.current == nil || m.current.Entry.ID != "caffeine" {
		t.Errorf("current = %+v, want caffeine", m.current)
	}

	if _, cmd = press(t, m, tea.KeyCtrlR); cmd == nil {
		t.Error("Ctrl+R should load once the previous load finished")
	}
}

func TestCtrlC(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	m, cmd := press(t, m, tea.KeyCtrlC)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "Goodbye!\n" {
		t.Errorf("view = %q", m.View())
	}
}

func TestCommand_Rep(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mocks.NewMockEngine(ctrl)
	eng.EXPECT().SetRepresentation(gomock.Any(), render.SpaceFill).Return(nil)

	m := newTestModel(eng)
	m, _ = submit(t, m, "/rep space")

	if m.settings.Representation != render.SpaceFill {
		t.Errorf("representation = %v, want SpaceFill", m.settings.Representation)
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}
}

func TestCommand_RepInvalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	eng := mocks.NewMockEngine(ctrl)

	m := newTestModel(eng)
	m, _ = submit(t, m, "/rep wireframe")

	if m.settings.Representation != render.BallAndStick {
		t.Errorf("representation = %v, want unchanged", m.settings.Representation)
	}
	if got := lastMessage(m); got.role != "error" {
		t.Errorf("last message = %+v, want error", got)
	}
}

func TestCommand_NumericSettings(t *testing.T) {
	tests := []struct {
		input  string
		expect func(eng *mocks.MockEngine)
		get    func(s render.Settings) float64
		want   float64
	}{
		{
			input:  "/scale 1.5",
			expect: func(eng *mocks.MockEngine) { eng.EXPECT().SetAtomScale(gomock.Any(), 1.5).Return(nil) },
			get:    func(s render.Settings) float64 { return s.AtomScale },
			want:   1.5,
		},
		{
			input:  "/bond 0.3",
			expect: func(eng *mocks.MockEngine) { eng.EXPECT().SetBondRadius(gomock.Any(), 0.3).Return(nil) },
			get:    func(s render.Settings) float64 { return s.BondRadius },
			want:   0.3,
		},
		{
			input:  "/zoom 2",
			expect: func(eng *mocks.MockEngine) { eng.EXPECT().SetZoom(gomock.Any(), 2.0).Return(nil) },
			get:    func(s render.Settings) float64 { return s.Zoom },
			want:   2,
		},
		{
			input: "/scale 12",
			expect: func(eng *mocks.MockEngine) {
				eng.EXPECT().SetAtomScale(gomock.Any(), 12.0).Return(render.ErrInvalidValue)
			},
			get:  func(s render.Settings) float64 { return s.AtomScale },
			want: 1,
		},
		{
			input:  "/zoom lots",
			expect: func(*mocks.MockEngine) {},
			get:    func(s render.Settings) float64 { return s.Zoom },
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			eng := mocks.NewMockEngine(ctrl)
			tt.expect(eng)

			m := newTestModel(eng)
			m, _ = submit(t, m, tt.input)

			if got := tt.get(m.settings); got != tt.want {
				t.Errorf("setting = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommand_Rotate(t *testing.T) {
	eng := render.NewHeadless()
	m := newTestModel(eng)

	m, _ = submit(t, m, "/rotate")
	if !eng.Settings().AutoRotate || !m.settings.AutoRotate {
		t.Error("first /rotate should turn auto-rotate on")
	}

	m, _ = submit(t, m, "/rotate off")
	if eng.Settings().AutoRotate || m.settings.AutoRotate {
		t.Error("/rotate off should turn auto-rotate off")
	}

	m, _ = submit(t, m, "/rotate sideways")
	if got := lastMessage(m); got.role != "error" {
		t.Errorf("last message = %+v, want usage error", got)
	}
}

func TestCommand_Unknown(t *testing.T) {
	m := newTestModel(render.NewHeadless())

	m, _ = submit(t, m, "/frobnicate")

	if got := lastMessage(m); !strings.Contains(got.content, "Unknown command: /frobnicate") {
		t.Errorf("last message = %+v", got)
	}
}

func TestCommand_Quit(t *testing.T) {
	for _, input := range []string{"/quit", "/exit"} {
		m := newTestModel(render.NewHeadless())
		m, cmd := submit(t, m, input)
		if cmd == nil || !m.quitting {
			t.Errorf("%s should quit", input)
		}
	}
}

func TestCommand_Clear(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m.logInfo("one")
	m.logInfo("two")

	m, _ = submit(t, m, "/clear")

	if len(m.messages) != 0 {
		t.Errorf("messages = %d, want 0", len(m.messages))
	}
}

func TestCommand_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "water.xyz")
	if err := os.WriteFile(path, []byte(waterXYZ), 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(render.NewHeadless())
	m, cmd := submit(t, m, "/load "+path)

	var loaded *MoleculeLoadedMsg
	for _, msg := range collect(cmd) {
		if msg, ok := msg.(MoleculeLoadedMsg); ok {
			loaded = &msg
		}
	}
	if loaded == nil {
		t.Fatal("expected MoleculeLoadedMsg")
	}
	if loaded.Info.Name != "Water molecule" || loaded.Info.Formula != "H2O" {
		t.Errorf("info = %+v", loaded.Info)
	}
	if loaded.Source != path {
		t.Errorf("source = %q, want %q", loaded.Source, path)
	}
}

func TestCommand_LoadMissingFile(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m, cmd := submit(t, m, "/load "+filepath.Join(t.TempDir(), "nope.xyz"))

	var failed bool
	for _, msg := range collect(cmd) {
		if _, ok := msg.(MoleculeErrMsg); ok {
			failed = true
		}
	}
	if !failed {
		t.Error("expected MoleculeErrMsg")
	}
}

func TestCommand_Export(t *testing.T) {
	m := newTestModel(render.NewHeadless())
	m = typeText(t, m, "ace")
	path := filepath.Join(t.TempDir(), "ace")

	m, cmd := submit(t, m, "/export "+path)
	if cmd == nil {
		t.Fatal("expected export command")
	}
	if m.input.Value() != "ace" {
		t.Errorf("input = %q, want the query back", m.input.Value())
	}

	done, ok := cmd().(ExportDoneMsg)
	if !ok {
		t.Fatal("expected ExportDoneMsg")
	}
	if done.Err != nil {
		t.Fatalf("export: %v", done.Err)
	}
	if done.Count != 4 {
		t.Errorf("count = %d, want 4", done.Count)
	}
	if done.Path != path+".xlsx" {
		t.Errorf("path = %q, want .xlsx suffix", done.Path)
	}
	if _, err := os.Stat(done.Path); err != nil {
		t.Errorf("exported file: %v", err)
	}
}

func TestHelpText_AllHandlers(t *testing.T) {
	text := HelpText()
	for name := range commandHandlers {
		if !strings.Contains(text, "/"+name) {
			t.Errorf("help text should mention /%s", name)
		}
	}
}
