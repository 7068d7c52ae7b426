package render

// A minimal renderer module assembled byte by byte. It keeps its state at
// fixed addresses so tests can inspect what the host passed in.
const (
	slotRepresentation = 16
	slotAtomScale      = 20
	slotBondRadius     = 24
	slotZoom           = 28
	slotAutoRotate     = 32
	slotAspectWidth    = 36
	slotAspectHeight   = 40
	slotLoads          = 44
	slotLoadedPtr      = 48
	slotFrees          = 52
	slotFreedPtr       = 56

	testNamePtr    = 256
	testFormulaPtr = 272
	testHeapPtr    = 1024

	// malloc hands out a pointer near the end of the single page for
	// requests above testMallocLimit, so large writes fall out of range.
	testMallocLimit = 60000
	testFarPtr      = 65000
)

const (
	testName    = "Water"
	testFormula = "H2O"
)

const (
	valI32 = 0x7f
	valF32 = 0x7d

	opIf       = 0x04
	opElse     = 0x05
	opEnd      = 0x0b
	opLocalGet = 0x20
	opI32Load  = 0x28
	opI32Store = 0x36
	opF32Store = 0x38
	opI32Const = 0x41
	opI32Eqz   = 0x45
	opI32GtU   = 0x4b
	opI32Add   = 0x6a
)

type testFunc struct {
	name    string
	params  []byte
	results []byte
	body    []byte
}

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(n int, items []byte) []byte {
	return append(uleb(uint32(n)), items...)
}

func wasmName(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func section(id byte, content []byte) []byte {
	return append(append([]byte{id}, uleb(uint32(len(content)))...), content...)
}

func i32Const(v int32) []byte { return append([]byte{opI32Const}, sleb(v)...) }

func store(op byte, slot uint32, value ...byte) []byte {
	out := i32Const(0)
	out = append(out, value...)
	return append(append(out, op, 2), uleb(slot)...)
}

func load(slot uint32) []byte {
	out := i32Const(0)
	return append(append(out, opI32Load, 2), uleb(slot)...)
}

func localGet(i byte) []byte { return []byte{opLocalGet, i} }

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// increment adds one to the i32 at slot.
func increment(slot uint32) []byte {
	return store(opI32Store, slot, concat(load(slot), i32Const(1), []byte{opI32Add})...)
}

// returnsAfterLoad yields ptr once a molecule was loaded, 0 before.
func returnsAfterLoad(ptr int32) []byte {
	return concat(
		load(slotLoads),
		[]byte{opI32Eqz, opIf, valI32},
		i32Const(0),
		[]byte{opElse},
		i32Const(ptr),
		[]byte{opEnd},
	)
}

func testRendererFuncs() []testFunc {
	oneI32, oneF32 := []byte{valI32}, []byte{valF32}
	return []testFunc{
		{name: ExportMalloc, params: oneI32, results: oneI32, body: concat(
			localGet(0),
			i32Const(testMallocLimit),
			[]byte{opI32GtU, opIf, valI32},
			i32Const(testFarPtr),
			[]byte{opElse},
			i32Const(testHeapPtr),
			[]byte{opEnd},
		)},
		{name: ExportFree, params: oneI32, body: concat(
			store(opI32Store, slotFreedPtr, localGet(0)...),
			increment(slotFrees),
		)},
		{name: ExportLoadMolecule, params: oneI32, body: concat(
			store(opI32Store, slotLoadedPtr, localGet(0)...),
			increment(slotLoads),
		)},
		{name: ExportRepresentation, params: oneI32, body: store(opI32Store, slotRepresentation, localGet(0)...)},
		{name: ExportAtomScale, params: oneF32, body: store(opF32Store, slotAtomScale, localGet(0)...)},
		{name: ExportBondRadius, params: oneF32, body: store(opF32Store, slotBondRadius, localGet(0)...)},
		{name: ExportZoom, params: oneF32, body: store(opF32Store, slotZoom, localGet(0)...)},
		{name: ExportAutoRotate, params: oneI32, body: store(opI32Store, slotAutoRotate, localGet(0)...)},
		{name: ExportAspect, params: []byte{valI32, valI32}, body: concat(
			store(opI32Store, slotAspectWidth, localGet(0)...),
			store(opI32Store, slotAspectHeight, localGet(1)...),
		)},
		{name: ExportMoleculeName, results: oneI32, body: returnsAfterLoad(testNamePtr)},
		{name: ExportFormula, results: oneI32, body: returnsAfterLoad(testFormulaPtr)},
	}
}

// testRendererModule encodes the renderer with one page of memory and the
// name and formula strings as data segments.
func testRendererModule() []byte {
	funcs := testRendererFuncs()

	var types, indices, exports, code []byte
	for i, f := range funcs {
		types = append(types, 0x60)
		types = append(types, vec(len(f.params), f.params)...)
		types = append(types, vec(len(f.results), f.results)...)

		indices = append(indices, uleb(uint32(i))...)

		exports = append(exports, wasmName(f.name)...)
		exports = append(exports, 0x00)
		exports = append(exports, uleb(uint32(i))...)

		body := concat([]byte{0x00}, f.body, []byte{opEnd})
		code = append(code, uleb(uint32(len(body)))...)
		code = append(code, body...)
	}
	exports = append(exports, wasmName(ExportMemory)...)
	exports = append(exports, 0x02, 0x00)

	segment := func(offset int32, s string) []byte {
		data := append([]byte(s), 0)
		return concat([]byte{0x00}, i32Const(offset), []byte{opEnd}, vec(len(data), data))
	}
	data := concat(segment(testNamePtr, testName), segment(testFormulaPtr, testFormula))

	return concat(
		[]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00},
		section(1, vec(len(funcs), types)),
		section(3, vec(len(funcs), indices)),
		section(5, vec(1, []byte{0x00, 0x01})),
		section(7, vec(len(funcs)+1, exports)),
		section(10, vec(len(funcs), code)),
		section(11, vec(2, data)),
	)
}
