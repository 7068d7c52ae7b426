package render

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Settings is the display state an engine holds.
type Settings struct {
	Representation Representation
	AtomScale      float64
	BondRadius     float64
	Zoom           float64
	AutoRotate     bool
	Width          int
	Height         int
}

// DefaultSettings matches the renderer's start-up state.
func DefaultSettings() Settings {
	return Settings{
		Representation: BallAndStick,
		AtomScale:      1,
		BondRadius:     0.1,
		Zoom:           1,
		Width:          1,
		Height:         1,
	}
}

// Headless keeps the engine state in memory without drawing anything. It
// stands in for the renderer when none is configured.
type Headless struct {
	mu       sync.Mutex
	settings Settings
	info     Info
	atoms    int
}

// NewHeadless returns an engine with default settings and no molecule.
func NewHeadless() *Headless {
	return &Headless{
		settings: DefaultSettings(),
		info:     Info{Name: NotAvailable, Formula: NotAvailable},
	}
}

func (h *Headless) Name() string { return "headless" }

func (h *Headless) LoadMolecule(_ context.Context, xyz string) error {
	if err := checkMolecule(xyz); err != nil {
		return err
	}
	info, atoms, err := readHeader(xyz)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.info = info
	h.atoms = atoms
	return nil
}

func (h *Headless) SetRepresentation(_ context.Context, rep Representation) error {
	if err := checkRepresentation(rep); err != nil {
		return err
	}
	h.mu.Lock()
	h.settings.Representation = rep
	h.mu.Unlock()
	return nil
}

func (h *Headless) SetAtomScale(_ context.Context, scale float64) error {
	if err := checkAtomScale(scale); err != nil {
		return err
	}
	h.mu.Lock()
	h.settings.AtomScale = scale
	h.mu.Unlock()
	return nil
}

func (h *Headless) SetBondRadius(_ context.Context, radius float64) error {
	if err := checkPositive("bond radius", radius); err != nil {
		return err
	}
	h.mu.Lock()
	h.settings.BondRadius = radius
	h.mu.Unlock()
	return nil
}

func (h *Headless) SetZoom(_ context.Context, zoom float64) error {
	if err := checkPositive("zoom", zoom); err != nil {
		return err
	}
	h.mu.Lock()
	h.settings.Zoom = zoom
	h.mu.Unlock()
	return nil
}

func (h *Headless) SetAutoRotate(_ context.Context, enabled bool) error {
	h.mu.Lock()
	h.settings.AutoRotate = enabled
	h.mu.Unlock()
	return nil
}

func (h *Headless) UpdateProjectionAspect(_ context.Context, width, height int) error {
	width, height, err := aspectSize(width, height)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.settings.Width, h.settings.Height = width, height
	h.mu.Unlock()
	return nil
}

func (h *Headless) Info(context.Context) (Info, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.info, nil
}

// Settings returns a snapshot of the display state.
func (h *Headless) Settings() Settings {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.settings
}

// Atoms returns the atom count of the loaded molecule.
func (h *Headless) Atoms() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.atoms
}

func (h *Headless) Close(context.Context) error { return nil }

// readHeader takes the atom count, the comment line as the name, and the
// first column of each atom line as its element.
func readHeader(xyz string) (Info, int, error) {
	sc := bufio.NewScanner(strings.NewReader(xyz))
	if !sc.Scan() {
		return Info{}, 0, ErrEmptyMolecule
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || n <= 0 {
		return Info{}, 0, fmt.Errorf("%w: atom count %q", ErrInvalidValue, sc.Text())
	}

	info := Info{Name: "Untitled Molecule"}
	if sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			info.Name = name
		}
	}

	counts := make(map[string]int)
	for i := 0; i < n && sc.Scan(); i++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			break
		}
		counts[fields[0]]++
	}
	info.Formula = Formula(counts)
	return info, n, sc.Err()
}

// Formula writes element counts C first, then H, then alphabetically, with
// counts of one left out.
func Formula(counts map[string]int) string {
	if len(counts) == 0 {
		return NotAvailable
	}
	var b strings.Builder
	write := func(el string) {
		b.WriteString(el)
		if c := counts[el]; c > 1 {
			b.WriteString(strconv.Itoa(c))
		}
	}

	rest := make([]string, 0, len(counts))
	for el := range counts {
		if el != "C" && el != "H" {
			rest = append(rest, el)
		}
	}
	sort.Strings(rest)

	if counts["C"] > 0 {
		write("C")
	}
	if counts["H"] > 0 {
		write("H")
	}
	for _, el := range rest {
		write(el)
	}
	return b.String()
}
