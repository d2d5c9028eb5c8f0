// ==============================================================================================
// FILE: interp/interp.go
// ==============================================================================================
// PACKAGE: interp
// PURPOSE: The statement interpreter: program store, variable/array tables, control-flow
//          stacks, and the eval.Host implementation that lets the expression evaluator read
//          interpreter state without interp depending back on eval's internals.
// ==============================================================================================

package interp

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"applesoft/basicerr"
	"applesoft/lineio"
	"applesoft/screen"
	"applesoft/value"
)

// Interpreter holds all state for one running Applesoft session: the
// stored program, variable/array tables, control-flow stacks, the DATA
// pool, user functions, the 64KiB memory vector, and its injected
// collaborators (screen, line input, logger).
type Interpreter struct {
	lines []line // sorted ascending by num

	vars   map[string]value.Value
	arrays map[string]*array

	forStack   []forFrame
	gosubStack []gosubFrame
	userFuncs  map[string]userFunc

	data    []value.Value
	dataPtr int

	mem [65536]byte

	rng     *rand.Rand
	lastRnd float64

	screen screen.Screen
	input  lineio.Reader

	log       *logrus.Entry
	sessionID string

	traceOn bool
}

// New creates an Interpreter wired to the given collaborators. A nil
// screen or input is kept as nil: output and cursor statements then do
// nothing, POS reports 0, and INPUT raises ?INPUT ERROR.
func New(scr screen.Screen, in lineio.Reader, logger *logrus.Logger) *Interpreter {
	if logger == nil {
		logger = logrus.New()
	}
	sid := uuid.NewString()
	it := &Interpreter{
		vars:      map[string]value.Value{},
		arrays:    map[string]*array{},
		userFuncs: map[string]userFunc{},
		rng:       rand.New(rand.NewSource(1)),
		screen:    scr,
		input:     in,
		log:       logger.WithField("session", sid),
		sessionID: sid,
	}
	return it
}

// SessionID returns the correlation id this interpreter's log lines
// carry; it has no semantic effect on program execution.
func (it *Interpreter) SessionID() string { return it.sessionID }

// clearVariables implements CLEAR: variables, arrays, control-flow
// stacks, and the DATA read pointer reset, but the stored program text
// and the DATA pool are untouched. RUN performs the same reset.
func (it *Interpreter) clearVariables() {
	it.vars = map[string]value.Value{}
	it.arrays = map[string]*array{}
	it.forStack = nil
	it.gosubStack = nil
	it.dataPtr = 0
}

func (it *Interpreter) findLineIndex(num int) (int, bool) {
	i := sort.Search(len(it.lines), func(i int) bool { return it.lines[i].num >= num })
	if i < len(it.lines) && it.lines[i].num == num {
		return i, true
	}
	return i, false
}

// ---- variable / array access (eval.Host implementation lives here too) ----

func isStringName(name string) bool {
	return strings.HasSuffix(name, "$")
}

// GetVariable implements eval.Host.
func (it *Interpreter) GetVariable(name string) value.Value {
	if v, ok := it.vars[name]; ok {
		return v
	}
	if isStringName(name) {
		return value.EmptyString
	}
	return value.Zero
}

// SetVariable assigns a scalar variable, enforcing that string names
// (trailing '$') only ever hold string values and vice versa.
func (it *Interpreter) SetVariable(name string, v value.Value) error {
	if isStringName(name) != v.IsString {
		return basicerr.TypeMismatch()
	}
	it.vars[name] = v
	return nil
}

const defaultArrayDim = 10

// ensureArray returns the array for name, auto-dimensioning it to
// defaultArrayDim+1 per axis (indices 0..10) using the axis count of
// this first reference if it has never been DIMmed or referenced before.
func (it *Interpreter) ensureArray(name string, axisCount int) (*array, error) {
	if a, ok := it.arrays[name]; ok {
		if len(a.dims) != axisCount {
			return nil, basicerr.BadSubscript()
		}
		return a, nil
	}
	dims := make([]int, axisCount)
	size := 1
	for i := range dims {
		dims[i] = defaultArrayDim + 1
		size *= dims[i]
	}
	a := &array{dims: dims, isStr: isStringName(name), data: make([]value.Value, size)}
	if a.isStr {
		for i := range a.data {
			a.data[i] = value.EmptyString
		}
	}
	it.arrays[name] = a
	return a, nil
}

// dimArray explicitly DIMs name to the given per-axis sizes (as written
// in a DIM statement, where the declared bound N yields N+1 slots,
// indices 0..N). Re-DIMming an already-dimensioned array is an error.
func (it *Interpreter) dimArray(name string, bounds []float64) error {
	if _, ok := it.arrays[name]; ok {
		return basicerr.New("?REDIM'D ARRAY ERROR")
	}
	dims := make([]int, len(bounds))
	size := 1
	for i, b := range bounds {
		n := int(b)
		if n < 0 {
			return basicerr.IllegalQuantity()
		}
		dims[i] = n + 1
		size *= dims[i]
	}
	a := &array{dims: dims, isStr: isStringName(name), data: make([]value.Value, size)}
	if a.isStr {
		for i := range a.data {
			a.data[i] = value.EmptyString
		}
	}
	it.arrays[name] = a
	return nil
}

func (a *array) flatIndex(indices []float64) (int, error) {
	if len(indices) != len(a.dims) {
		return 0, basicerr.BadSubscript()
	}
	idx := 0
	for i, f := range indices {
		n := int(f)
		if n < 0 || n >= a.dims[i] {
			return 0, basicerr.BadSubscript()
		}
		idx = idx*a.dims[i] + n
	}
	return idx, nil
}

// GetArrayElement implements eval.Host.
func (it *Interpreter) GetArrayElement(name string, indices []float64) (value.Value, error) {
	a, err := it.ensureArray(name, len(indices))
	if err != nil {
		return value.Value{}, err
	}
	idx, err := a.flatIndex(indices)
	if err != nil {
		return value.Value{}, err
	}
	return a.data[idx], nil
}

// SetArrayElement assigns one array element, auto-dimensioning on first
// use exactly like GetArrayElement.
func (it *Interpreter) SetArrayElement(name string, indices []float64, v value.Value) error {
	a, err := it.ensureArray(name, len(indices))
	if err != nil {
		return err
	}
	if a.isStr != v.IsString {
		return basicerr.TypeMismatch()
	}
	idx, err := a.flatIndex(indices)
	if err != nil {
		return err
	}
	a.data[idx] = v
	return nil
}

// ---- memory ----

// Peek implements eval.Host.
func (it *Interpreter) Peek(addr int) (float64, error) {
	if addr < 0 || addr > 65535 {
		return 0, basicerr.IllegalQuantity()
	}
	return float64(it.mem[addr]), nil
}

// Poke writes one byte of the 64KiB memory vector.
func (it *Interpreter) Poke(addr int, val int) error {
	if addr < 0 || addr > 65535 || val < 0 || val > 255 {
		return basicerr.IllegalQuantity()
	}
	it.mem[addr] = byte(val)
	return nil
}

// ---- misc host methods ----

// Rnd implements eval.Host. x<0 reseeds deterministically from x so a
// program's random sequence is reproducible; x==0 repeats the previous
// draw; x>0 advances the sequence.
func (it *Interpreter) Rnd(x float64) float64 {
	switch {
	case x < 0:
		it.rng = rand.New(rand.NewSource(int64(x)))
		it.lastRnd = it.rng.Float64()
		return it.lastRnd
	case x == 0:
		return it.lastRnd
	default:
		it.lastRnd = it.rng.Float64()
		return it.lastRnd
	}
}

// Fre implements eval.Host as a fixed stub value; this interpreter has
// no real memory ceiling to report against.
func (it *Interpreter) Fre(x float64) float64 { return 38911 }

// Pos implements eval.Host.
func (it *Interpreter) Pos(x float64) float64 {
	if it.screen == nil {
		return 0
	}
	return float64(it.screen.Column())
}
