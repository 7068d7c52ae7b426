package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Exports a renderer module must provide.
const (
	ExportMemory         = "memory"
	ExportMalloc         = "malloc"
	ExportFree           = "free"
	ExportLoadMolecule   = "load_molecule_from_xyz_string"
	ExportRepresentation = "set_representation"
	ExportAtomScale      = "set_atom_display_scale"
	ExportBondRadius     = "set_bond_radius_value"
	ExportZoom           = "set_zoom_level"
	ExportAutoRotate     = "set_auto_rotate"
	ExportAspect         = "update_projection_matrix_aspect"
	ExportMoleculeName   = "get_current_molecule_name"
	ExportFormula        = "get_current_molecule_formula"
)

// maxCString bounds strings read back from module memory.
const maxCString = 4096

type signature struct {
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32 = api.ValueTypeI32
	f32 = api.ValueTypeF32
)

func requiredExports() map[string]signature {
	return map[string]signature{
		ExportMalloc:         {params: []api.ValueType{i32}, results: []api.ValueType{i32}},
		ExportFree:           {params: []api.ValueType{i32}},
		ExportLoadMolecule:   {params: []api.ValueType{i32}},
		ExportRepresentation: {params: []api.ValueType{i32}},
		ExportAtomScale:      {params: []api.ValueType{f32}},
		ExportBondRadius:     {params: []api.ValueType{f32}},
		ExportZoom:           {params: []api.ValueType{f32}},
		ExportAutoRotate:     {params: []api.ValueType{i32}},
		ExportAspect:         {params: []api.ValueType{i32, i32}},
		ExportMoleculeName:   {results: []api.ValueType{i32}},
		ExportFormula:        {results: []api.ValueType{i32}},
	}
}

// Wasm runs a renderer compiled to WebAssembly. Calls are serialized.
type Wasm struct {
	mu      sync.Mutex
	runtime wazero.Runtime
	mod     api.Module
	mem     api.Memory
}

// OpenWasm reads and instantiates a renderer module from disk.
func OpenWasm(ctx context.Context, path string, out io.Writer) (*Wasm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading renderer module: %w", err)
	}
	return LoadWasm(ctx, data, out)
}

// LoadWasm compiles and instantiates a renderer module. The module's
// stdout and stderr go to out; nil discards them.
func LoadWasm(ctx context.Context, wasm []byte, out io.Writer) (*Wasm, error) {
	if len(wasm) == 0 {
		return nil, errors.New("render: empty wasm module")
	}
	if out == nil {
		out = io.Discard
	}

	runtime := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, runtime); err != nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("instantiating wasi: %w", err)
	}

	compiled, err := runtime.CompileModule(ctx, wasm)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("compiling renderer module: %w", err)
	}
	if err := validateExports(compiled); err != nil {
		_ = runtime.Close(ctx)
		return nil, err
	}

	cfg := wazero.NewModuleConfig().
		WithName("renderer").
		WithStdout(out).
		WithStderr(out).
		WithStartFunctions("_initialize")
	mod, err := runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		_ = runtime.Close(ctx)
		return nil, fmt.Errorf("instantiating renderer module: %w", err)
	}

	return &Wasm{
		runtime: runtime,
		mod:     mod,
		mem:     mod.ExportedMemory(ExportMemory),
	}, nil
}

func validateExports(compiled wazero.CompiledModule) error {
	if _, ok := compiled.ExportedMemories()[ExportMemory]; !ok {
		return fmt.Errorf("%w: %s", ErrMissingExport, ExportMemory)
	}
	funcs := compiled.ExportedFunctions()
	for name, sig := range requiredExports() {
		def, ok := funcs[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingExport, name)
		}
		if !sameTypes(def.ParamTypes(), sig.params) || !sameTypes(def.ResultTypes(), sig.results) {
			return fmt.Errorf("%w: %s has the wrong signature", ErrMissingExport, name)
		}
	}
	return nil
}

func sameTypes(got, want []api.ValueType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func (w *Wasm) Name() string { return "wasm" }

func (w *Wasm) LoadMolecule(ctx context.Context, xyz string) error {
	if err := checkMolecule(xyz); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	ptr, err := w.writeCString(ctx, xyz)
	if err != nil {
		return err
	}
	defer w.call(ctx, ExportFree, api.EncodeI32(ptr))

	_, err = w.call(ctx, ExportLoadMolecule, api.EncodeI32(ptr))
	return err
}

func (w *Wasm) SetRepresentation(ctx context.Context, rep Representation) error {
	if err := checkRepresentation(rep); err != nil {
		return err
	}
	return w.callLocked(ctx, ExportRepresentation, api.EncodeI32(int32(rep)))
}

func (w *Wasm) SetAtomScale(ctx context.Context, scale float64) error {
	if err := checkAtomScale(scale); err != nil {
		return err
	}
	return w.callLocked(ctx, ExportAtomScale, api.EncodeF32(float32(scale)))
}

func (w *Wasm) SetBondRadius(ctx context.Context, radius float64) error {
	if err := checkPositive("bond radius", radius); err != nil {
		return err
	}
	return w.callLocked(ctx, ExportBondRadius, api.EncodeF32(float32(radius)))
}

func (w *Wasm) SetZoom(ctx context.Context, zoom float64) error {
	if err := checkPositive("zoom", zoom); err != nil {
		return err
	}
	return w.callLocked(ctx, ExportZoom, api.EncodeF32(float32(zoom)))
}

func (w *Wasm) SetAutoRotate(ctx context.Context, enabled bool) error {
	var v int32
	if enabled {
		v = 1
	}
	return w.callLocked(ctx, ExportAutoRotate, api.EncodeI32(v))
}

func (w *Wasm) UpdateProjectionAspect(ctx context.Context, width, height int) error {
	width, height, err := aspectSize(width, height)
	if err != nil {
		return err
	}
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidValue, width, height)
	}
	return w.callLocked(ctx, ExportAspect, api.EncodeI32(int32(width)), api.EncodeI32(int32(height)))
}

func (w *Wasm) Info(ctx context.Context) (Info, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name, err := w.readResultString(ctx, ExportMoleculeName)
	if err != nil {
		return Info{}, err
	}
	formula, err := w.readResultString(ctx, ExportFormula)
	if err != nil {
		return Info{}, err
	}
	return Info{Name: orNotAvailable(name), Formula: orNotAvailable(formula)}, nil
}

func (w *Wasm) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.runtime == nil {
		return nil
	}
	err := w.runtime.Close(ctx)
	w.runtime, w.mod, w.mem = nil, nil, nil
	return err
}

func (w *Wasm) callLocked(ctx context.Context, name string, params ...uint64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.call(ctx, name, params...)
	return err
}

func (w *Wasm) call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	if w.mod == nil {
		return nil, errors.New("render: renderer module is closed")
	}
	fn := w.mod.ExportedFunction(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingExport, name)
	}
	res, err := fn.Call(ctx, params...)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", name, err)
	}
	return res, nil
}

func (w *Wasm) writeCString(ctx context.Context, s string) (int32, error) {
	buf := append([]byte(s), 0)
	if len(buf) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: molecule text too large", ErrInvalidValue)
	}
	res, err := w.call(ctx, ExportMalloc, api.EncodeI32(int32(len(buf))))
	if err != nil {
		return 0, err
	}
	ptr := api.DecodeI32(res[0])
	if ptr == 0 {
		return 0, errors.New("render: renderer module out of memory")
	}
	if !w.mem.Write(uint32(ptr), buf) {
		_, _ = w.call(ctx, ExportFree, api.EncodeI32(ptr))
		return 0, fmt.Errorf("render: writing %d bytes at %#x out of range", len(buf), ptr)
	}
	return ptr, nil
}

func (w *Wasm) readResultString(ctx context.Context, name string) (string, error) {
	res, err := w.call(ctx, name)
	if err != nil {
		return "", err
	}
	ptr := uint32(api.DecodeI32(res[0]))
	if ptr == 0 {
		return "", nil
	}
	var out []byte
	for i := uint32(0); i < maxCString; i++ {
		b, ok := w.mem.ReadByte(ptr + i)
		if !ok {
			return "", fmt.Errorf("render: %s returned pointer %#x out of range", name, ptr)
		}
		if b == 0 {
			return string(out), nil
		}
		out = append(out, b)
	}
	return string(out), nil
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
