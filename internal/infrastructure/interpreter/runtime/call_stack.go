package runtime

import (
	"fmt"
	"io"
	"sort"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/semantic"
)

// DefaultMaxDepth bounds procedure nesting when no limit is configured
const DefaultMaxDepth = 50000

// Frame holds the variables of one activation of a scope
type Frame struct {
	Scope *semantic.Scope
	// Static is the frame of the lexically enclosing scope
	Static *Frame
	caller *Frame
	values map[string]Value
}

// CallStack is the chain of active frames
type CallStack struct {
	top      *Frame
	depth    int
	maxDepth int
	// trace receives frame dumps on variable lookup when set
	trace io.Writer
}

// NewCallStack creates an empty stack. A non-positive maxDepth selects DefaultMaxDepth.
func NewCallStack(maxDepth int, trace io.Writer) *CallStack {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &CallStack{maxDepth: maxDepth, trace: trace}
}

// Depth is the number of active frames
func (s *CallStack) Depth() int { return s.depth }

// Top returns the innermost frame
func (s *CallStack) Top() *Frame { return s.top }

// Push activates scope with the given static link
func (s *CallStack) Push(scope *semantic.Scope, static *Frame, line int) (*Frame, error) {
	if s.depth >= s.maxDepth {
		return nil, diag.Stackf(line, "call stack max depth of %d exceeded; stack overflow", s.maxDepth)
	}
	f := &Frame{
		Scope:  scope,
		Static: static,
		caller: s.top,
		values: make(map[string]Value),
	}
	s.top = f
	s.depth++
	return f, nil
}

// Pop removes the innermost frame
func (s *CallStack) Pop() {
	if s.top == nil {
		return
	}
	if s.trace != nil {
		fmt.Fprintf(s.trace, "popping frame %s\n", s.top.Scope.Name)
	}
	s.top = s.top.caller
	s.depth--
}

// FrameOf walks the static chain from the top frame to the activation of scope
func (s *CallStack) FrameOf(scope *semantic.Scope) *Frame {
	for f := s.top; f != nil; f = f.Static {
		if f.Scope == scope {
			return f
		}
	}
	return nil
}

// resolve finds the frame whose scope declares name and the declared symbol
func (s *CallStack) resolve(name string) (*Frame, *semantic.VarSymbol) {
	for f := s.top; f != nil; f = f.Static {
		if s.trace != nil {
			f.dump(s.trace)
		}
		if sym, ok := f.Scope.LookupLocal(name).(*semantic.VarSymbol); ok {
			return f, sym
		}
	}
	return nil, nil
}

// Lookup reads a variable. Reading an unassigned variable is an error.
func (s *CallStack) Lookup(name string, line int) (Value, error) {
	if s.trace != nil {
		fmt.Fprintln(s.trace, "******************************")
		defer fmt.Fprintln(s.trace, "******************************")
	}
	f, _ := s.resolve(name)
	if f == nil {
		return Value{}, diag.Runtimef(line, "could not find variable %s", name)
	}
	v, ok := f.values[name]
	if !ok {
		return Value{}, diag.Runtimef(line, "variable %s is used before being assigned", name)
	}
	return v, nil
}

// Assign stores v into the frame declaring name, converted to the declared type.
func (s *CallStack) Assign(name string, v Value, line int) error {
	f, sym := s.resolve(name)
	if f == nil {
		return diag.Runtimef(line, "failed assignment to undeclared variable %s", name)
	}
	f.values[name] = Coerce(v, sym.Type)
	return nil
}

// Bind stores v in frame f without resolution, used for parameters and record allocation
func (f *Frame) Bind(name string, v Value) {
	f.values[name] = v
}

// Values returns a copy of the assigned variables of the frame
func (f *Frame) Values() map[string]Value {
	out := make(map[string]Value, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

func (f *Frame) dump(w io.Writer) {
	names := make([]string, 0, len(f.values))
	for name := range f.values {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "Frame %s (level %d)\n", f.Scope.Name, f.Scope.Level)
	for _, name := range names {
		fmt.Fprintf(w, "  %s = %s\n", name, f.values[name])
	}
}
