// Package parser builds a syntax tree from toy-language tokens by recursive descent.
package parser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/ast"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/lexer"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/token"
)

// AnyType is the name of the type accepting every value
const AnyType = "ANY"

// Parser consumes a token slice. A Parser is single use.
type Parser struct {
	tokens []token.Token
	pos    int
	// trace receives consumed tokens when set
	trace io.Writer
	types map[string]bool
}

// bailout carries a parse error up to Parse
type bailout struct {
	err error
}

// New creates a Parser over tokens, which must end with EOF.
func New(tokens []token.Token, trace io.Writer) *Parser {
	return &Parser{
		tokens: tokens,
		trace:  trace,
		types: map[string]bool{
			string(token.Integer): true,
			string(token.Real):    true,
			string(token.String):  true,
			AnyType:               true,
		},
	}
}

// ParseSource lexes and parses src
func ParseSource(src string, trace io.Writer) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens, trace).Parse()
}

// Parse parses a whole program and rejects anything after its final dot.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, b.err
		}
	}()

	prog = p.program()
	if p.cur().Type != token.EOF {
		p.fail("parsing terminated before end of file")
	}
	return prog, nil
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		last := 1
		if len(p.tokens) > 0 {
			last = p.tokens[len(p.tokens)-1].Line
		}
		return token.Token{Type: token.EOF, Line: last}
	}
	return p.tokens[p.pos]
}

func (p *Parser) next() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) fail(format string, args ...interface{}) {
	panic(bailout{err: diag.Parsef(p.cur().Line, format, args...)})
}

func (p *Parser) eat(t token.Type) token.Token {
	tok := p.cur()
	if p.trace != nil {
		fmt.Fprintf(p.trace, "Consumed token %s\n", tok)
	}
	if tok.Type != t {
		p.fail("Token of type %s expected, %s with value %q found", t, tok.Type, tok.Value)
	}
	p.pos++
	return tok
}

func (p *Parser) pos0() ast.Pos {
	return ast.Pos{Line: p.cur().Line}
}

func (p *Parser) program() *ast.Program {
	pos := p.pos0()
	p.eat(token.Program)
	name := p.eat(token.ID).Value
	p.eat(token.Semi)
	block := p.block()
	p.eat(token.Dot)
	return &ast.Program{Pos: pos, Name: name, Block: block}
}

func (p *Parser) block() *ast.Block {
	pos := p.pos0()
	decls := p.declarations()
	body := p.compound()
	return &ast.Block{Pos: pos, Decls: decls, Body: body}
}

func (p *Parser) declarations() []ast.Decl {
	var decls []ast.Decl
	for {
		switch p.cur().Type {
		case token.Var:
			p.eat(token.Var)
			if p.cur().Type != token.ID {
				p.fail("Token of type %s expected, %s with value %q found", token.ID, p.cur().Type, p.cur().Value)
			}
			for p.cur().Type == token.ID {
				for _, vd := range p.varDecls() {
					decls = append(decls, vd)
				}
				p.eat(token.Semi)
			}
		case token.Procedure:
			decls = append(decls, p.procedureDecl())
		case token.Typedef:
			decls = append(decls, p.recordDecl())
		default:
			return decls
		}
	}
}

func (p *Parser) procedureDecl() *ast.ProcedureDecl {
	pos := p.pos0()
	p.eat(token.Procedure)
	decl := &ast.ProcedureDecl{Pos: pos, Name: p.eat(token.ID).Value}
	if p.cur().Type == token.LParen {
		p.eat(token.LParen)
		decl.Params = p.params()
		p.eat(token.RParen)
	}
	if p.cur().Type == token.Arrow {
		p.eat(token.Arrow)
		decl.ReturnType = p.typeSpec()
	}
	p.eat(token.Semi)
	decl.Block = p.block()
	p.eat(token.Semi)
	return decl
}

func (p *Parser) recordDecl() *ast.RecordDecl {
	pos := p.pos0()
	p.eat(token.Typedef)
	nameTok := p.cur()
	name := p.eat(token.ID).Value
	p.eat(token.Equals)
	p.eat(token.Record)
	decl := &ast.RecordDecl{Pos: pos, Name: name}
	for p.cur().Type == token.ID {
		decl.Fields = append(decl.Fields, p.varDecls()...)
		p.eat(token.Semi)
	}
	if p.types[name] {
		panic(bailout{err: diag.Parsef(nameTok.Line, "Illegal redeclaration of record %s", name)})
	}
	p.types[name] = true
	p.eat(token.End)
	p.eat(token.Semi)
	return decl
}

func (p *Parser) idList() []token.Token {
	ids := []token.Token{p.eat(token.ID)}
	for p.cur().Type == token.Comma {
		p.eat(token.Comma)
		ids = append(ids, p.eat(token.ID))
	}
	return ids
}

func (p *Parser) varDecls() []*ast.VarDecl {
	ids := p.idList()
	p.eat(token.Colon)
	typ := p.typeSpec()
	decls := make([]*ast.VarDecl, 0, len(ids))
	for _, id := range ids {
		decls = append(decls, &ast.VarDecl{Pos: ast.Pos{Line: id.Line}, Name: id.Value, Type: typ})
	}
	return decls
}

func (p *Parser) params() []*ast.Param {
	if p.cur().Type != token.ID {
		return nil
	}
	params := p.paramGroup()
	for p.cur().Type == token.Semi {
		p.eat(token.Semi)
		params = append(params, p.paramGroup()...)
	}
	return params
}

func (p *Parser) paramGroup() []*ast.Param {
	ids := p.idList()
	p.eat(token.Colon)
	typ := p.typeSpec()
	params := make([]*ast.Param, 0, len(ids))
	for _, id := range ids {
		params = append(params, &ast.Param{Pos: ast.Pos{Line: id.Line}, Name: id.Value, Type: typ})
	}
	return params
}

func (p *Parser) typeSpec() *ast.TypeRef {
	tok := p.cur()
	if !tok.IsTypeName() || !p.types[tok.Value] {
		p.fail("%s is not a valid type", tok.Value)
	}
	p.eat(tok.Type)
	return &ast.TypeRef{Pos: ast.Pos{Line: tok.Line}, Name: tok.Value}
}

func (p *Parser) compound() *ast.Compound {
	pos := p.pos0()
	p.eat(token.Begin)
	stmts := []ast.Stmt{p.statement()}
	for p.cur().Type == token.Semi {
		p.eat(token.Semi)
		stmts = append(stmts, p.statement())
	}
	p.eat(token.End)
	return &ast.Compound{Pos: pos, Stmts: stmts}
}

func (p *Parser) statement() ast.Stmt {
	switch p.cur().Type {
	case token.Begin:
		return p.compound()
	case token.If:
		return p.ifStatement(false)
	case token.While:
		return p.whileStatement()
	case token.Return:
		pos := p.pos0()
		p.eat(token.Return)
		return &ast.Return{Pos: pos, Value: p.expr()}
	case token.ID:
		if p.next().Type == token.LParen {
			return p.call()
		}
		return p.assignment()
	}
	return &ast.NoOp{Pos: p.pos0()}
}

func (p *Parser) ifStatement(elseIf bool) *ast.If {
	pos := p.pos0()
	p.eat(token.If)
	p.eat(token.LParen)
	cond := p.expr()
	p.eat(token.RParen)
	if !elseIf || p.cur().Type == token.Then {
		p.eat(token.Then)
	}
	stmt := &ast.If{Pos: pos, Cond: cond, Then: p.block()}
	if p.cur().Type != token.Else {
		return stmt
	}
	p.eat(token.Else)
	if p.cur().Type == token.If {
		stmt.Else = p.ifStatement(true)
	} else {
		stmt.Else = p.block()
	}
	return stmt
}

func (p *Parser) whileStatement() *ast.While {
	pos := p.pos0()
	p.eat(token.While)
	p.eat(token.LParen)
	cond := p.expr()
	p.eat(token.RParen)
	p.eat(token.Do)
	return &ast.While{Pos: pos, Cond: cond, Body: p.block()}
}

func (p *Parser) call() *ast.Call {
	pos := p.pos0()
	call := &ast.Call{Pos: pos, Name: p.eat(token.ID).Value}
	p.eat(token.LParen)
	if p.cur().Type != token.RParen {
		call.Args = append(call.Args, p.expr())
		for p.cur().Type == token.Comma {
			p.eat(token.Comma)
			call.Args = append(call.Args, p.expr())
		}
	}
	p.eat(token.RParen)
	return call
}

func (p *Parser) assignment() *ast.Assign {
	pos := p.pos0()
	target := p.variable()
	p.eat(token.Assign)
	return &ast.Assign{Pos: pos, Target: target, Value: p.expr()}
}

func (p *Parser) variable() *ast.VarRef {
	pos := p.pos0()
	ref := &ast.VarRef{Pos: pos, Name: p.eat(token.ID).Value}
	if p.cur().Type == token.Dot && p.next().Type == token.ID {
		p.eat(token.Dot)
		ref.Field = p.eat(token.ID).Value
	}
	return ref
}

func isComparison(t token.Type) bool {
	switch t {
	case token.Equals, token.NotEquals, token.LessThan, token.GreaterThan, token.LtOrEquals, token.GtOrEquals:
		return true
	}
	return false
}

func (p *Parser) expr() ast.Expr {
	left := p.additive()
	if isComparison(p.cur().Type) {
		pos := p.pos0()
		op := p.eat(p.cur().Type).Type
		return &ast.BinaryOp{Pos: pos, Op: op, Left: left, Right: p.additive()}
	}
	return left
}

func (p *Parser) additive() ast.Expr {
	node := p.term()
	for p.cur().Type == token.Plus || p.cur().Type == token.Minus {
		pos := p.pos0()
		op := p.eat(p.cur().Type).Type
		node = &ast.BinaryOp{Pos: pos, Op: op, Left: node, Right: p.term()}
	}
	return node
}

func (p *Parser) term() ast.Expr {
	node := p.unary()
	for p.cur().Type == token.Mul || p.cur().Type == token.FloatDiv || p.cur().Type == token.IntDiv {
		pos := p.pos0()
		op := p.eat(p.cur().Type).Type
		node = &ast.BinaryOp{Pos: pos, Op: op, Left: node, Right: p.unary()}
	}
	return node
}

func (p *Parser) unary() ast.Expr {
	switch p.cur().Type {
	case token.Plus, token.Minus, token.Bang:
		pos := p.pos0()
		op := p.eat(p.cur().Type).Type
		return &ast.UnaryOp{Pos: pos, Op: op, Operand: p.unary()}
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	tok := p.cur()
	pos := ast.Pos{Line: tok.Line}
	switch tok.Type {
	case token.IntConst:
		p.eat(token.IntConst)
		v, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			panic(bailout{err: diag.Parsef(tok.Line, "integer constant %s out of range", tok.Value)})
		}
		return &ast.IntLit{Pos: pos, Value: v}
	case token.RealConst:
		p.eat(token.RealConst)
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			panic(bailout{err: diag.Parsef(tok.Line, "invalid real constant %s", tok.Value)})
		}
		return &ast.RealLit{Pos: pos, Value: v}
	case token.StringLiteral:
		p.eat(token.StringLiteral)
		return &ast.StringLit{Pos: pos, Value: tok.Value}
	case token.LParen:
		p.eat(token.LParen)
		node := p.expr()
		p.eat(token.RParen)
		return node
	case token.ID:
		if p.next().Type == token.LParen {
			return p.call()
		}
		return p.variable()
	}
	p.fail("unexpected %s with value %q in expression", tok.Type, tok.Value)
	return nil
}
