package interpreter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/ast"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/runtime"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/semantic"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/token"
)

// evaluator walks an analysed program
type evaluator struct {
	ctx      context.Context
	analysis *semantic.Analysis
	stack    *runtime.CallStack
	stdout   io.Writer
	// conditions receives condition traces when set
	conditions io.Writer
}

func (e *evaluator) interrupted() error {
	if err := e.ctx.Err(); err != nil {
		return fmt.Errorf("execution interrupted: %w", err)
	}
	return nil
}

func (e *evaluator) run(prog *ast.Program) error {
	if _, err := e.stack.Push(e.analysis.Global, nil, prog.Line); err != nil {
		return err
	}
	defer e.stack.Pop()

	_, err := e.block(prog.Block)
	return err
}

// block allocates the records declared in b and runs its body. A non-nil value means a return was executed.
func (e *evaluator) block(b *ast.Block) (*runtime.Value, error) {
	frame := e.stack.Top()
	for _, decl := range b.Decls {
		vd, ok := decl.(*ast.VarDecl)
		if !ok {
			continue
		}
		sym, ok := frame.Scope.LookupLocal(vd.Name).(*semantic.VarSymbol)
		if ok && sym.Type.IsRecord() {
			frame.Bind(vd.Name, runtime.NewRecord(sym.Type))
		}
	}
	return e.compound(b.Body)
}

func (e *evaluator) compound(c *ast.Compound) (*runtime.Value, error) {
	for _, stmt := range c.Stmts {
		ret, err := e.statement(stmt)
		if err != nil || ret != nil {
			return ret, err
		}
	}
	return nil, nil
}

func (e *evaluator) statement(stmt ast.Stmt) (*runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.NoOp:
		return nil, nil
	case *ast.Compound:
		return e.compound(s)
	case *ast.Block:
		return e.block(s)
	case *ast.Assign:
		return nil, e.assign(s)
	case *ast.If:
		return e.ifStatement(s)
	case *ast.While:
		return e.whileStatement(s)
	case *ast.Return:
		v, err := e.expr(s.Value)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case *ast.Call:
		_, err := e.call(s)
		return nil, err
	}
	return nil, diag.Runtimef(stmt.Position().Line, "statement of type %T cannot be executed", stmt)
}

func (e *evaluator) assign(s *ast.Assign) error {
	v, err := e.expr(s.Value)
	if err != nil {
		return err
	}
	if s.Target.Field == "" {
		return e.stack.Assign(s.Target.Name, v, s.Line)
	}

	rec, err := e.stack.Lookup(s.Target.Name, s.Line)
	if err != nil {
		return err
	}
	field, err := recordField(rec, s.Target, s.Line)
	if err != nil {
		return err
	}
	field.Value = runtime.Coerce(v, e.analysis.Types[s.Target])
	return nil
}

func recordField(rec runtime.Value, ref *ast.VarRef, line int) (*runtime.Field, error) {
	if rec.Kind != runtime.KindRecord {
		return nil, diag.Runtimef(line, "variable %s holds a %s value, not a record", ref.Name, rec.Kind)
	}
	field := rec.Rec.Field(ref.Field)
	if field == nil {
		return nil, diag.Runtimef(line, "record %s has no field %s", rec.Rec.TypeName, ref.Field)
	}
	return field, nil
}

func (e *evaluator) ifStatement(s *ast.If) (*runtime.Value, error) {
	cond, err := e.expr(s.Cond)
	if err != nil {
		return nil, err
	}
	if e.conditions != nil {
		fmt.Fprintf(e.conditions, "If condition result: %s\n", cond)
	}
	if cond.Truthy() {
		return e.block(s.Then)
	}
	if s.Else != nil {
		return e.statement(s.Else)
	}
	return nil, nil
}

func (e *evaluator) whileStatement(s *ast.While) (*runtime.Value, error) {
	for {
		if err := e.interrupted(); err != nil {
			return nil, err
		}
		cond, err := e.expr(s.Cond)
		if err != nil {
			return nil, err
		}
		if !cond.Truthy() {
			return nil, nil
		}
		ret, err := e.block(s.Body)
		if err != nil || ret != nil {
			return ret, err
		}
	}
}

func (e *evaluator) call(c *ast.Call) (runtime.Value, error) {
	if err := e.interrupted(); err != nil {
		return runtime.Value{}, err
	}
	proc, ok := e.analysis.Calls[c]
	if !ok {
		return runtime.Value{}, diag.Runtimef(c.Line, "unresolved call to %s", c.Name)
	}

	args := make([]runtime.Value, len(c.Args))
	for i, arg := range c.Args {
		v, err := e.expr(arg)
		if err != nil {
			return runtime.Value{}, err
		}
		args[i] = v
	}

	if proc.Builtin {
		fn, ok := builtins[proc.Name()]
		if !ok {
			return runtime.Value{}, diag.Runtimef(c.Line, "built-in function %s is not implemented", proc.Name())
		}
		return fn(e, c.Line, args)
	}

	frame, err := e.stack.Push(proc.Scope, e.stack.FrameOf(proc.Scope.Enclosing), c.Line)
	if err != nil {
		return runtime.Value{}, err
	}
	for i, param := range proc.Params {
		frame.Bind(param.Name(), runtime.Coerce(args[i], param.Type))
	}

	ret, err := e.block(proc.Decl.Block)
	e.stack.Pop()
	if err != nil {
		return runtime.Value{}, err
	}

	if ret == nil {
		if proc.ReturnType != nil {
			return runtime.Value{}, diag.Runtimef(c.Line, "reached end of non-void procedure %s without returning a value", proc.Name())
		}
		return runtime.Value{}, nil
	}
	return runtime.Coerce(*ret, proc.ReturnType), nil
}

func (e *evaluator) expr(x ast.Expr) (runtime.Value, error) {
	switch n := x.(type) {
	case *ast.IntLit:
		return runtime.Int(n.Value), nil
	case *ast.RealLit:
		return runtime.Float(n.Value), nil
	case *ast.StringLit:
		return runtime.Str(n.Value), nil
	case *ast.VarRef:
		return e.varRef(n)
	case *ast.Call:
		v, err := e.call(n)
		if err == nil && v.IsNone() {
			return v, diag.Runtimef(n.Line, "procedure %s did not return a value", n.Name)
		}
		return v, err
	case *ast.UnaryOp:
		return e.unary(n)
	case *ast.BinaryOp:
		return e.binary(n)
	}
	return runtime.Value{}, diag.Runtimef(x.Position().Line, "expression of type %T cannot be evaluated", x)
}

func (e *evaluator) varRef(ref *ast.VarRef) (runtime.Value, error) {
	v, err := e.stack.Lookup(ref.Name, ref.Line)
	if err != nil || ref.Field == "" {
		return v, err
	}
	field, err := recordField(v, ref, ref.Line)
	if err != nil {
		return runtime.Value{}, err
	}
	if field.Value.IsNone() {
		return runtime.Value{}, diag.Runtimef(ref.Line, "field %s of %s is used before being assigned", ref.Field, ref.Name)
	}
	return field.Value, nil
}

func (e *evaluator) unary(u *ast.UnaryOp) (runtime.Value, error) {
	v, err := e.expr(u.Operand)
	if err != nil {
		return v, err
	}
	if !v.IsNumeric() {
		return runtime.Value{}, diag.Runtimef(u.Line, "unary operator %q cannot be applied to a %s value", ast.OpSymbol(u.Op), v.Kind)
	}
	switch u.Op {
	case token.Minus:
		if v.Kind == runtime.KindInteger {
			return runtime.Int(-v.Int), nil
		}
		return runtime.Float(-v.Real), nil
	case token.Bang:
		return runtime.Bool(!v.Truthy()), nil
	}
	return v, nil
}

func (e *evaluator) binary(b *ast.BinaryOp) (runtime.Value, error) {
	left, err := e.expr(b.Left)
	if err != nil {
		return left, err
	}
	right, err := e.expr(b.Right)
	if err != nil {
		return right, err
	}

	mismatch := func() (runtime.Value, error) {
		return runtime.Value{}, diag.Runtimef(b.Line, "operator %s cannot be applied to %s and %s values", ast.OpSymbol(b.Op), left.Kind, right.Kind)
	}
	bothInt := left.Kind == runtime.KindInteger && right.Kind == runtime.KindInteger
	bothNumeric := left.IsNumeric() && right.IsNumeric()
	bothString := left.Kind == runtime.KindString && right.Kind == runtime.KindString

	switch b.Op {
	case token.Plus:
		switch {
		case bothString:
			return runtime.Str(left.Str + right.Str), nil
		case bothInt:
			return runtime.Int(left.Int + right.Int), nil
		case bothNumeric:
			return runtime.Float(left.AsReal() + right.AsReal()), nil
		}
		return mismatch()
	case token.Minus:
		switch {
		case bothInt:
			return runtime.Int(left.Int - right.Int), nil
		case bothNumeric:
			return runtime.Float(left.AsReal() - right.AsReal()), nil
		}
		return mismatch()
	case token.Mul:
		switch {
		case bothInt:
			return runtime.Int(left.Int * right.Int), nil
		case bothNumeric:
			return runtime.Float(left.AsReal() * right.AsReal()), nil
		}
		return mismatch()
	case token.FloatDiv:
		if !bothNumeric {
			return mismatch()
		}
		if right.AsReal() == 0 {
			return runtime.Value{}, diag.Runtimef(b.Line, "division by zero")
		}
		return runtime.Float(left.AsReal() / right.AsReal()), nil
	case token.IntDiv:
		if !bothInt {
			return mismatch()
		}
		if right.Int == 0 {
			return runtime.Value{}, diag.Runtimef(b.Line, "division by zero")
		}
		return runtime.Int(left.Int / right.Int), nil
	}

	if e.conditions != nil {
		fmt.Fprintf(e.conditions, "left: %s right: %s\n", left, right)
	}

	var cmp int
	switch {
	case bothInt:
		cmp = compareOrdered(left.Int, right.Int)
	case bothNumeric:
		cmp = compareOrdered(left.AsReal(), right.AsReal())
	case bothString:
		cmp = strings.Compare(left.Str, right.Str)
	default:
		return runtime.Value{}, diag.Runtimef(b.Line, "mismatched runtime comparison between %s and %s values", left.Kind, right.Kind)
	}

	switch b.Op {
	case token.Equals:
		return runtime.Bool(cmp == 0), nil
	case token.NotEquals:
		return runtime.Bool(cmp != 0), nil
	case token.LessThan:
		return runtime.Bool(cmp < 0), nil
	case token.GreaterThan:
		return runtime.Bool(cmp > 0), nil
	case token.LtOrEquals:
		return runtime.Bool(cmp <= 0), nil
	case token.GtOrEquals:
		return runtime.Bool(cmp >= 0), nil
	}
	return mismatch()
}

func compareOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
