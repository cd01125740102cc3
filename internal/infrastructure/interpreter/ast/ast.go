// Package ast defines the syntax tree produced by the parser.
package ast

import "github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/token"

// Pos locates a node in the source
type Pos struct {
	Line int
}

// Position returns the node position
func (p Pos) Position() Pos { return p }

// Node is implemented by every tree node
type Node interface {
	Position() Pos
}

// Expr nodes produce values
type Expr interface {
	Node
	exprNode()
}

// Stmt nodes are executed for their effect
type Stmt interface {
	Node
	stmtNode()
}

// Decl nodes introduce names into a scope
type Decl interface {
	Node
	declNode()
}

// Program is the root node
type Program struct {
	Pos
	Name  string
	Block *Block
}

// Block is a declaration section followed by a compound statement
type Block struct {
	Pos
	Decls []Decl
	Body  *Compound
}

// TypeRef names a builtin or record type
type TypeRef struct {
	Pos
	Name string
}

// VarDecl declares a single variable
type VarDecl struct {
	Pos
	Name string
	Type *TypeRef
}

// Param is a formal procedure parameter
type Param struct {
	Pos
	Name string
	Type *TypeRef
}

// ProcedureDecl declares a procedure. ReturnType is nil for procedures without a result.
type ProcedureDecl struct {
	Pos
	Name       string
	Params     []*Param
	ReturnType *TypeRef
	Block      *Block
}

// RecordDecl declares a record type
type RecordDecl struct {
	Pos
	Name   string
	Fields []*VarDecl
}

// Compound is a BEGIN ... END statement list
type Compound struct {
	Pos
	Stmts []Stmt
}

// Assign stores Value into Target
type Assign struct {
	Pos
	Target *VarRef
	Value  Expr
}

// If runs Then when Cond holds, otherwise Else. Else is nil, an *If or a *Block.
type If struct {
	Pos
	Cond Expr
	Then *Block
	Else Stmt
}

// While repeats Body while Cond holds
type While struct {
	Pos
	Cond Expr
	Body *Block
}

// Return leaves the enclosing procedure with Value
type Return struct {
	Pos
	Value Expr
}

// NoOp is the empty statement
type NoOp struct {
	Pos
}

// Call invokes a procedure or builtin. It is both a statement and an expression.
type Call struct {
	Pos
	Name string
	Args []Expr
}

// VarRef reads a variable, or one field of a record variable when Field is set
type VarRef struct {
	Pos
	Name  string
	Field string
}

// IntLit is an integer constant
type IntLit struct {
	Pos
	Value int64
}

// RealLit is a real constant
type RealLit struct {
	Pos
	Value float64
}

// StringLit is a string constant
type StringLit struct {
	Pos
	Value string
}

// BinaryOp applies an arithmetic or comparison operator
type BinaryOp struct {
	Pos
	Op    token.Type
	Left  Expr
	Right Expr
}

// UnaryOp applies +, - or !
type UnaryOp struct {
	Pos
	Op      token.Type
	Operand Expr
}

func (*VarDecl) declNode()       {}
func (*ProcedureDecl) declNode() {}
func (*RecordDecl) declNode()    {}

func (*Block) stmtNode()    {}
func (*Compound) stmtNode() {}
func (*Assign) stmtNode()   {}
func (*If) stmtNode()       {}
func (*While) stmtNode()    {}
func (*Return) stmtNode()   {}
func (*NoOp) stmtNode()     {}
func (*Call) stmtNode()     {}

func (*Call) exprNode()      {}
func (*VarRef) exprNode()    {}
func (*IntLit) exprNode()    {}
func (*RealLit) exprNode()   {}
func (*StringLit) exprNode() {}
func (*BinaryOp) exprNode()  {}
func (*UnaryOp) exprNode()   {}

// OpSymbol renders an operator token type as written in source
func OpSymbol(op token.Type) string {
	switch op {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Mul:
		return "*"
	case token.FloatDiv:
		return "/"
	case token.IntDiv:
		return "DIV"
	case token.Equals:
		return "="
	case token.NotEquals:
		return "!="
	case token.LessThan:
		return "<"
	case token.GreaterThan:
		return ">"
	case token.LtOrEquals:
		return "<="
	case token.GtOrEquals:
		return ">="
	case token.Bang:
		return "!"
	}
	return string(op)
}
