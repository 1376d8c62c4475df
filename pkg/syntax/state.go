package syntax

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// State is where highlighting stands at a line boundary. It is a cheap value:
// copies share one StateData snapshot, and a snapshot is never modified once
// it has been handed out. Use Detach or Reset to get a StateData that can be
// changed.
//
// The zero State is empty; highlighting a line from it starts in the
// initial context of the definition.
type State struct {
	d *StateData
}

// StateData is the context stack behind a State. The stack always keeps
// its first frame.
type StateData struct {
	defID uint64
	stack []stackValue
}

type stackValue struct {
	context  *Context
	captures []string
}

func (v stackValue) equal(o stackValue) bool {
	return v.context == o.context && slices.Equal(v.captures, o.captures)
}

// Reset replaces the state with a single frame holding the initial context
// of def, and returns the new data for further changes.
func (s *State) Reset(def *Definition) *StateData {
	d := &StateData{defID: def.ID()}
	if initial := def.InitialContext(); initial != nil {
		d.stack = append(d.stack, stackValue{context: initial})
	}
	s.d = d
	return d
}

// Detach gives s its own copy of the data and returns it. Other States that
// shared the old data keep seeing it unchanged.
func (s *State) Detach() *StateData {
	if s.d == nil {
		s.d = &StateData{}
		return s.d
	}
	d := &StateData{
		defID: s.d.defID,
		stack: make([]stackValue, len(s.d.stack), len(s.d.stack)+1),
	}
	copy(d.stack, s.d.stack)
	s.d = d
	return d
}

// Data returns the shared data for reading. It is nil for an empty State.
func (s State) Data() *StateData { return s.d }

func (s State) IsEmpty() bool {
	return s.d == nil || len(s.d.stack) == 0
}

// IsValidFor reports whether s was produced by highlighting with def. States
// of another definition, or of an earlier registration under the same name,
// are stale.
func (s State) IsValidFor(def *Definition) bool {
	return !s.IsEmpty() && def != nil && s.d.defID == def.ID()
}

// Equal compares definition and stacks frame by frame: same contexts and
// same captures.
func (s State) Equal(o State) bool {
	if s.d == o.d {
		return true
	}
	if s.d == nil || o.d == nil {
		return s.IsEmpty() && o.IsEmpty()
	}
	return s.d.Equal(o.d)
}

// Hash is consistent with Equal.
func (s State) Hash() uint64 {
	if s.IsEmpty() {
		return 0
	}
	return s.d.Hash()
}

func (d *StateData) Equal(o *StateData) bool {
	return d.defID == o.defID && slices.EqualFunc(d.stack, o.stack, stackValue.equal)
}

func (d *StateData) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeUint(d.defID)
	for _, v := range d.stack {
		writeUint(v.context.ID())
		writeUint(uint64(len(v.captures)))
		for _, c := range v.captures {
			writeUint(uint64(len(c)))
			h.WriteString(c)
		}
	}
	return h.Sum64()
}

func (d *StateData) DefinitionID() uint64 { return d.defID }

// Size is the number of frames on the stack.
func (d *StateData) Size() int { return len(d.stack) }

// Push enters ctx. captures are kept for dynamic rules of ctx and must not
// be modified afterwards.
func (d *StateData) Push(ctx *Context, captures []string) {
	d.stack = append(d.stack, stackValue{context: ctx, captures: captures})
}

// Pop removes up to popCount frames, never the first one. It returns false
// if the first frame would have been removed; the stack is then left with
// that frame only.
func (d *StateData) Pop(popCount int) bool {
	survived := len(d.stack) > popCount
	keep := len(d.stack) - popCount
	if keep < 1 {
		keep = 1
	}
	if keep < len(d.stack) {
		clear(d.stack[keep:])
		d.stack = d.stack[:keep]
	}
	return survived
}

func (d *StateData) TopContext() *Context {
	return d.stack[len(d.stack)-1].context
}

func (d *StateData) TopCaptures() []string {
	return d.stack[len(d.stack)-1].captures
}

// Contexts lists the stack from the bottom frame up.
func (d *StateData) Contexts() []*Context {
	ctxs := make([]*Context, len(d.stack))
	for i, v := range d.stack {
		ctxs[i] = v.context
	}
	return ctxs
}
