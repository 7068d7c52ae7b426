// Package render is the boundary to the molecule rendering engine.
package render

//go:generate mockgen -source=render.go -destination=mocks/mock_engine.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidValue is returned for settings the engine would reject.
	ErrInvalidValue = errors.New("render: invalid value")
	// ErrEmptyMolecule is returned when there is no XYZ data to load.
	ErrEmptyMolecule = errors.New("render: no XYZ data to load")
	// ErrMissingExport is returned when a renderer module lacks a required export.
	ErrMissingExport = errors.New("render: missing export")
)

// NotAvailable is reported for the name and formula before a molecule is loaded.
const NotAvailable = "N/A"

// Engine draws molecules. Implementations validate settings the same way.
type Engine interface {
	Name() string
	LoadMolecule(ctx context.Context, xyz string) error
	SetRepresentation(ctx context.Context, rep Representation) error
	SetAtomScale(ctx context.Context, scale float64) error
	SetBondRadius(ctx context.Context, radius float64) error
	SetZoom(ctx context.Context, zoom float64) error
	SetAutoRotate(ctx context.Context, enabled bool) error
	UpdateProjectionAspect(ctx context.Context, width, height int) error
	Info(ctx context.Context) (Info, error)
	Close(ctx context.Context) error
}

// Info describes the loaded molecule.
type Info struct {
	Name    string
	Formula string
}

// Representation is how atoms and bonds are drawn.
type Representation int

const (
	BallAndStick Representation = iota
	SpaceFill
	Licorice
)

func (r Representation) String() string {
	switch r {
	case BallAndStick:
		return "Ball and Stick"
	case SpaceFill:
		return "Space Filling"
	case Licorice:
		return "Licorice"
	}
	return fmt.Sprintf("Representation(%d)", int(r))
}

// Valid reports whether the engine knows the representation.
func (r Representation) Valid() bool {
	return r >= BallAndStick && r <= Licorice
}

// ParseRepresentation accepts a name ("ball", "space-fill", "licorice", ...)
// or the numeric value.
func ParseRepresentation(s string) (Representation, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "ball", "ballandstick", "ballstick":
		return BallAndStick, nil
	case "space", "spacefill", "spacefilling", "cpk":
		return SpaceFill, nil
	case "licorice", "stick", "sticks":
		return Licorice, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Representation(n).Valid() {
		return Representation(n), nil
	}
	return 0, fmt.Errorf("%w: representation %q", ErrInvalidValue, s)
}

func checkRepresentation(r Representation) error {
	if !r.Valid() {
		return fmt.Errorf("%w: representation %d", ErrInvalidValue, int(r))
	}
	return nil
}

func checkAtomScale(scale float64) error {
	if !(scale > 0 && scale < 10) {
		return fmt.Errorf("%w: atom scale %.2f must be between 0 and 10", ErrInvalidValue, scale)
	}
	return nil
}

func checkPositive(what string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return fmt.Errorf("%w: %s %.2f must be positive", ErrInvalidValue, what, v)
	}
	return nil
}

func checkMolecule(xyz string) error {
	if strings.TrimSpace(xyz) == "" {
		return ErrEmptyMolecule
	}
	return nil
}

// aspectSize guards the projection against a zero height.
func aspectSize(width, height int) (int, int, error) {
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("%w: viewport %dx%d", ErrInvalidValue, width, height)
	}
	if height == 0 {
		height = 1
	}
	return width, height, nil
}

// BufferSize converts a size in display units to drawing-buffer pixels.
// A ratio of zero or less counts as 1.
func BufferSize(width, height int, ratio float64) (int, int) {
	if ratio <= 0 {
		ratio = 1
	}
	return int(math.Round(float64(width) * ratio)), int(math.Round(float64(height) * ratio))
}
