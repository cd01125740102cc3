package semantic

import (
	"fmt"
	"io"
	"strings"
)

// Scope is a symbol table nested in its enclosing scope
type Scope struct {
	Name      string
	Level     int
	Enclosing *Scope

	symbols map[string]Symbol
	order   []string
	trace   io.Writer
}

// NewScope creates an empty scope. Define and Lookup calls are written to trace when it is set.
func NewScope(name string, level int, enclosing *Scope, trace io.Writer) *Scope {
	return &Scope{
		Name:      name,
		Level:     level,
		Enclosing: enclosing,
		symbols:   make(map[string]Symbol),
		trace:     trace,
	}
}

// NewBuiltinScope creates the level 0 scope holding builtin types and procedures
func NewBuiltinScope(trace io.Writer) *Scope {
	s := NewScope("BUILTINS", 0, nil, trace)
	for _, t := range []*TypeSymbol{Integer, Real, String, Any} {
		s.Define(t)
	}
	for _, b := range Builtins {
		proc := NewProcedure(b.Name)
		proc.Builtin = true
		proc.ReturnType = b.ReturnType
		for i, typ := range b.Params {
			proc.Params = append(proc.Params, NewVar(fmt.Sprintf("ARG%d", i), typ))
		}
		s.Define(proc)
	}
	return s
}

// Define adds or replaces sym in this scope
func (s *Scope) Define(sym Symbol) {
	if s.trace != nil {
		fmt.Fprintf(s.trace, "Define: %s\n", sym)
	}
	if _, exists := s.symbols[sym.Name()]; !exists {
		s.order = append(s.order, sym.Name())
	}
	s.symbols[sym.Name()] = sym
}

// Lookup searches this scope and then every enclosing scope
func (s *Scope) Lookup(name string) Symbol {
	if s.trace != nil {
		fmt.Fprintf(s.trace, "Lookup: %s\n", name)
	}
	for scope := s; scope != nil; scope = scope.Enclosing {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupLocal searches this scope only
func (s *Scope) LookupLocal(name string) Symbol {
	return s.symbols[name]
}

// Symbols returns the symbols in definition order
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}

func (s *Scope) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Symbols in %s scope, level %d\n", s.Name, s.Level)
	enclosing := "none"
	if s.Enclosing != nil {
		enclosing = s.Enclosing.Name
	}
	fmt.Fprintf(&sb, "Enclosing scope: %s\n", enclosing)
	for _, sym := range s.Symbols() {
		fmt.Fprintf(&sb, "%s : %s\n", sym.Name(), sym)
	}
	return sb.String()
}
