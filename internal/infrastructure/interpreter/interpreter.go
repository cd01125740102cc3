// Package interpreter runs toy-language programs with a tree-walking evaluator.
//
// A run lexes and parses the source, resolves names and types, then executes the
// main block. Every failure is reported as a *diag.Error carrying the stage and line.
package interpreter

import (
	"context"
	"fmt"
	"io"

	"github.com/MGTheTrain/toypas/internal/domain/program"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/parser"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/runtime"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/semantic"
	"github.com/MGTheTrain/toypas/internal/pkg/logger"
)

// treeWalkingInterpreter struct that implements the program.Interpreter interface
type treeWalkingInterpreter struct {
	logger logger.Logger
}

// NewTreeWalkingInterpreter creates and returns a new instance of treeWalkingInterpreter
func NewTreeWalkingInterpreter(logger logger.Logger) (program.Interpreter, error) {
	return &treeWalkingInterpreter{
		logger: logger,
	}, nil
}

// traceIf returns w when enabled, nil otherwise
func traceIf(enabled bool, w io.Writer) io.Writer {
	if !enabled {
		return nil
	}
	return w
}

// Run parses, checks and executes source. Builtin output goes to opts.Stdout.
func (i *treeWalkingInterpreter) Run(ctx context.Context, source string, opts program.Options) (*program.Result, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	prog, err := parser.ParseSource(source, traceIf(opts.PrintTokens, opts.Trace))
	if err != nil {
		return nil, err
	}

	analysis, err := semantic.Analyze(prog, semantic.Options{
		StaticTypeChecking: opts.StaticTypeChecking,
		Trace:              traceIf(opts.ShowSymbolTable, opts.Trace),
	})
	if err != nil {
		return nil, err
	}
	i.logger.Debug(fmt.Sprintf("Program %s passed semantic analysis with %d procedures", prog.Name, analysis.Procedures))

	ev := &evaluator{
		ctx:        ctx,
		analysis:   analysis,
		stack:      runtime.NewCallStack(opts.MaxCallDepth, traceIf(opts.DumpVars, opts.Trace)),
		stdout:     stdout,
		conditions: traceIf(opts.ShowConditions, opts.Trace),
	}
	if err := ev.run(prog); err != nil {
		return nil, err
	}

	i.logger.Info(fmt.Sprintf("Program %s finished", prog.Name))
	return &program.Result{
		ProgramName: prog.Name,
		Procedures:  analysis.Procedures,
		Statements:  analysis.Statements,
	}, nil
}
