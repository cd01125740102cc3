package program

import (
	"context"
	"io"
)

// Options mirror the debugging switches of the interpreter command line.
type Options struct {
	PrintTokens        bool
	DumpVars           bool
	ShowSymbolTable    bool
	ShowConditions     bool
	StaticTypeChecking bool
	// MaxCallDepth limits procedure nesting at runtime; zero selects the default.
	MaxCallDepth int
	// Stdout receives builtin output (DUMP, PRINT, PRINTLN). Nil discards it.
	Stdout io.Writer
	// Trace receives debugging output selected by the switches above. Nil discards it.
	Trace io.Writer
}

// Result summarises a finished run.
type Result struct {
	ProgramName string
	Procedures  int
	Statements  int
}

// Interpreter parses, checks and executes toy-language source.
type Interpreter interface {
	Run(ctx context.Context, source string, opts Options) (*Result, error)
}
