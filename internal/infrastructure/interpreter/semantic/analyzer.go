// Package semantic resolves names and checks types of a parsed program.
package semantic

import (
	"fmt"
	"io"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/ast"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/token"
)

// Options configure the analysis
type Options struct {
	// StaticTypeChecking forbids ANY-typed values in typed positions
	StaticTypeChecking bool
	// Trace receives scope activity when set
	Trace io.Writer
}

// Analysis is the resolved view of a program consumed by the evaluator
type Analysis struct {
	Builtins *Scope
	Global   *Scope
	// Calls maps every call site to its target
	Calls map[*ast.Call]*ProcedureSymbol
	// Types holds the static type of every expression with a value
	Types      map[ast.Expr]*TypeSymbol
	Procedures int
	Statements int
}

type analyzer struct {
	opts   Options
	scope  *Scope
	proc   *ProcedureSymbol
	result *Analysis
}

type bailout struct {
	err error
}

// Analyze checks prog and returns the resolution tables, or the first semantic error.
func Analyze(prog *ast.Program, opts Options) (analysis *Analysis, err error) {
	a := &analyzer{
		opts: opts,
		result: &Analysis{
			Calls: make(map[*ast.Call]*ProcedureSymbol),
			Types: make(map[ast.Expr]*TypeSymbol),
		},
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			analysis, err = nil, b.err
		}
	}()

	a.program(prog)
	return a.result, nil
}

func (a *analyzer) fail(line int, format string, args ...interface{}) {
	panic(bailout{err: diag.Semanticf(line, format, args...)})
}

func (a *analyzer) tracef(format string, args ...interface{}) {
	if a.opts.Trace != nil {
		fmt.Fprintf(a.opts.Trace, format, args...)
	}
}

func (a *analyzer) enter(name string) *Scope {
	a.tracef("ENTER scope: %s\n", name)
	a.scope = NewScope(name, a.scope.Level+1, a.scope, a.opts.Trace)
	return a.scope
}

func (a *analyzer) leave() {
	a.tracef("%s", a.scope.String())
	a.tracef("LEAVE scope: %s\n", a.scope.Name)
	a.scope = a.scope.Enclosing
}

func (a *analyzer) program(prog *ast.Program) {
	a.scope = NewBuiltinScope(a.opts.Trace)
	a.result.Builtins = a.scope
	a.result.Global = a.enter("GLOBAL")
	a.block(prog.Block)
	a.leave()
}

func (a *analyzer) block(b *ast.Block) {
	for _, decl := range b.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			a.varDecl(d)
		case *ast.ProcedureDecl:
			a.procedureDecl(d)
		case *ast.RecordDecl:
			a.recordDecl(d)
		}
	}
	a.compound(b.Body)
}

func (a *analyzer) lookupType(ref *ast.TypeRef) *TypeSymbol {
	typ, ok := a.scope.Lookup(ref.Name).(*TypeSymbol)
	if !ok {
		a.fail(ref.Line, "no type symbol found for type name %s", ref.Name)
	}
	return typ
}

func (a *analyzer) varDecl(d *ast.VarDecl) {
	typ := a.lookupType(d.Type)
	if a.scope.LookupLocal(d.Name) != nil {
		a.fail(d.Line, "duplicate identifier %s", d.Name)
	}
	a.scope.Define(NewVar(d.Name, typ))
}

func (a *analyzer) recordDecl(d *ast.RecordDecl) {
	if a.scope.LookupLocal(d.Name) != nil {
		a.fail(d.Line, "duplicate identifier %s", d.Name)
	}
	record := NewRecordType(d.Name)
	for _, field := range d.Fields {
		if record.Field(field.Name) != nil {
			a.fail(field.Line, "duplicate field %s in record %s", field.Name, d.Name)
		}
		record.Fields = append(record.Fields, NewVar(field.Name, a.lookupType(field.Type)))
	}
	a.scope.Define(record)
}

func (a *analyzer) procedureDecl(d *ast.ProcedureDecl) {
	if a.scope.Lookup(d.Name) != nil {
		a.fail(d.Line, "redefinition of procedure %s", d.Name)
	}

	proc := NewProcedure(d.Name)
	proc.Decl = d
	if d.ReturnType != nil {
		proc.ReturnType = a.lookupType(d.ReturnType)
	}
	a.scope.Define(proc)
	a.result.Procedures++

	outer := a.proc
	proc.Scope = a.enter(d.Name)
	a.proc = proc
	for _, param := range d.Params {
		if a.scope.LookupLocal(param.Name) != nil {
			a.fail(param.Line, "duplicate parameter %s in procedure %s", param.Name, d.Name)
		}
		sym := NewVar(param.Name, a.lookupType(param.Type))
		a.scope.Define(sym)
		proc.Params = append(proc.Params, sym)
	}
	a.block(d.Block)
	a.leave()
	a.proc = outer
}

func (a *analyzer) compound(c *ast.Compound) {
	for _, stmt := range c.Stmts {
		a.statement(stmt)
	}
}

func (a *analyzer) statement(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.NoOp:
		return
	case *ast.Compound:
		a.compound(s)
		return
	case *ast.Block:
		a.block(s)
		return
	case *ast.Assign:
		target := a.varRef(s.Target)
		a.result.Types[s.Target] = target
		value := a.value(s.Value, "the right hand side does not return a value")
		a.expectAssignable(s.Line, target, value)
	case *ast.If:
		a.condition(s.Cond)
		a.block(s.Then)
		if s.Else != nil {
			a.statement(s.Else)
		}
	case *ast.While:
		a.condition(s.Cond)
		a.block(s.Body)
	case *ast.Return:
		if a.proc == nil {
			a.fail(s.Line, "return statement outside of a procedure")
		}
		if a.proc.ReturnType == nil {
			a.fail(s.Line, "procedure %s has no return type", a.proc.Name())
		}
		value := a.value(s.Value, "the returned expression does not produce a value")
		a.expectAssignable(s.Line, a.proc.ReturnType, value)
	case *ast.Call:
		a.call(s)
	}
	a.result.Statements++
}

func (a *analyzer) condition(cond ast.Expr) {
	typ := a.value(cond, "the condition does not produce a value")
	if typ != Any && !typ.IsNumeric() {
		a.fail(cond.Position().Line, "condition must be numeric, got %s", typ.Name())
	}
}

func (a *analyzer) value(e ast.Expr, voidMsg string) *TypeSymbol {
	typ := a.expr(e)
	if typ == nil {
		a.fail(e.Position().Line, "%s", voidMsg)
	}
	return typ
}

func (a *analyzer) assignable(target, value *TypeSymbol) bool {
	switch {
	case target == Any:
		return true
	case value == Any:
		return !a.opts.StaticTypeChecking
	case target == value:
		return true
	case target == Real && value == Integer:
		return true
	}
	return false
}

func (a *analyzer) expectAssignable(line int, target, value *TypeSymbol) {
	if !a.assignable(target, value) {
		a.fail(line, "type mismatch between value of type %s and value of type %s", target.Name(), value.Name())
	}
}

func (a *analyzer) expr(e ast.Expr) *TypeSymbol {
	var typ *TypeSymbol
	switch n := e.(type) {
	case *ast.IntLit:
		typ = Integer
	case *ast.RealLit:
		typ = Real
	case *ast.StringLit:
		typ = String
	case *ast.VarRef:
		typ = a.varRef(n)
	case *ast.Call:
		typ = a.call(n)
	case *ast.UnaryOp:
		typ = a.unary(n)
	case *ast.BinaryOp:
		typ = a.binary(n)
	}
	if typ != nil {
		a.result.Types[e] = typ
	}
	return typ
}

func (a *analyzer) varRef(ref *ast.VarRef) *TypeSymbol {
	sym := a.scope.Lookup(ref.Name)
	if sym == nil {
		a.fail(ref.Line, "symbol not found for variable %s", ref.Name)
	}
	v, ok := sym.(*VarSymbol)
	if !ok {
		a.fail(ref.Line, "cannot use symbol %q of kind %s as a variable name", sym.Name(), symbolKind(sym))
	}
	if ref.Field == "" {
		return v.Type
	}
	if !v.Type.IsRecord() {
		a.fail(ref.Line, "variable %s of type %s is not a record", ref.Name, v.Type.Name())
	}
	field := v.Type.Field(ref.Field)
	if field == nil {
		a.fail(ref.Line, "record type %s has no field %s", v.Type.Name(), ref.Field)
	}
	return field.Type
}

func symbolKind(sym Symbol) string {
	switch s := sym.(type) {
	case *ProcedureSymbol:
		if s.Builtin {
			return "builtin procedure"
		}
		return "procedure"
	case *TypeSymbol:
		return "type"
	}
	return "variable"
}

func (a *analyzer) call(c *ast.Call) *TypeSymbol {
	sym := a.scope.Lookup(c.Name)
	proc, ok := sym.(*ProcedureSymbol)
	if !ok {
		a.fail(c.Line, "no procedure found with name %s", c.Name)
	}
	if len(c.Args) != len(proc.Params) {
		a.fail(c.Line, "expected %d arguments, got %d in call to %s", len(proc.Params), len(c.Args), c.Name)
	}
	for i, arg := range c.Args {
		param := proc.Params[i].Type
		typ := a.value(arg, fmt.Sprintf("argument %d in call to %s does not produce a value", i+1, c.Name))
		if proc.Builtin && param == Any {
			continue
		}
		if !a.assignable(param, typ) {
			a.fail(c.Line, "type mismatch between value of type %s and value of type %s in call to %s", param.Name(), typ.Name(), c.Name)
		}
	}
	a.result.Calls[c] = proc
	return proc.ReturnType
}

func (a *analyzer) unary(u *ast.UnaryOp) *TypeSymbol {
	typ := a.value(u.Operand, "the operand does not produce a value")
	if typ == Any {
		a.rejectAnyOperand(u.Line, u.Op)
		return Any
	}
	if !typ.IsNumeric() {
		a.fail(u.Line, "unary operator %q can only be used on numeric types", ast.OpSymbol(u.Op))
	}
	if u.Op == token.Bang {
		return Integer
	}
	return typ
}

func (a *analyzer) rejectAnyOperand(line int, op token.Type) {
	if a.opts.StaticTypeChecking {
		a.fail(line, "value of type ANY cannot be used with operator %s under static type checking", ast.OpSymbol(op))
	}
}

func (a *analyzer) binary(b *ast.BinaryOp) *TypeSymbol {
	left := a.value(b.Left, "the left operand does not produce a value")
	right := a.value(b.Right, "the right operand does not produce a value")

	if left == Any || right == Any {
		a.rejectAnyOperand(b.Line, b.Op)
		if isComparison(b.Op) {
			return Integer
		}
		return Any
	}

	mismatch := func() {
		a.fail(b.Line, "operator %s cannot be applied to values of type %s and %s", ast.OpSymbol(b.Op), left.Name(), right.Name())
	}

	switch b.Op {
	case token.Plus:
		if left == String && right == String {
			return String
		}
		if !left.IsNumeric() || !right.IsNumeric() {
			mismatch()
		}
		return widen(left, right)
	case token.Minus, token.Mul:
		if !left.IsNumeric() || !right.IsNumeric() {
			mismatch()
		}
		return widen(left, right)
	case token.FloatDiv:
		if !left.IsNumeric() || !right.IsNumeric() {
			mismatch()
		}
		return Real
	case token.IntDiv:
		if left != Integer || right != Integer {
			a.fail(b.Line, "operator DIV requires INTEGER operands, got %s and %s", left.Name(), right.Name())
		}
		return Integer
	}

	if left.IsNumeric() && right.IsNumeric() || left == String && right == String {
		return Integer
	}
	mismatch()
	return nil
}

func widen(left, right *TypeSymbol) *TypeSymbol {
	if left == Integer && right == Integer {
		return Integer
	}
	return Real
}

func isComparison(op token.Type) bool {
	switch op {
	case token.Equals, token.NotEquals, token.LessThan, token.GreaterThan, token.LtOrEquals, token.GtOrEquals:
		return true
	}
	return false
}
