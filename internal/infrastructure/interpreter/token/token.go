// Package token defines the lexical tokens of the toy language.
package token

import (
	"fmt"
	"strings"
)

// Type identifies the kind of a token
type Type string

// Token types
const (
	EOF           Type = "EOF"
	ID            Type = "ID"
	IntConst      Type = "INTEGER_CONST"
	RealConst     Type = "REAL_CONST"
	StringLiteral Type = "STRING_LITERAL"

	// Keywords
	Program   Type = "PROGRAM"
	Var       Type = "VAR"
	Begin     Type = "BEGIN"
	End       Type = "END"
	Procedure Type = "PROCEDURE"
	Return    Type = "RETURN"
	If        Type = "IF"
	Then      Type = "THEN"
	Else      Type = "ELSE"
	While     Type = "WHILE"
	Do        Type = "DO"
	IntDiv    Type = "INTEGER_DIV"
	Integer   Type = "INTEGER"
	Real      Type = "REAL"
	String    Type = "STRING"
	Typedef   Type = "TYPE"
	Record    Type = "RECORD"

	// Punctuation and operators
	Assign      Type = "ASSIGN"
	Colon       Type = "COLON"
	Semi        Type = "SEMI"
	Dot         Type = "DOT"
	Comma       Type = "COMMA"
	Arrow       Type = "ARROW"
	Plus        Type = "PLUS"
	Minus       Type = "MINUS"
	Mul         Type = "MUL"
	FloatDiv    Type = "FLOAT_DIV"
	LParen      Type = "("
	RParen      Type = ")"
	Equals      Type = "EQUALS"
	NotEquals   Type = "NOT_EQUALS"
	LessThan    Type = "LESS_THAN"
	GreaterThan Type = "GREATER_THAN"
	LtOrEquals  Type = "LT_OR_EQUALS"
	GtOrEquals  Type = "GT_OR_EQUALS"
	Bang        Type = "BANG"
)

var keywords = map[string]Type{
	"PROGRAM":   Program,
	"VAR":       Var,
	"BEGIN":     Begin,
	"END":       End,
	"PROCEDURE": Procedure,
	"RETURN":    Return,
	"IF":        If,
	"THEN":      Then,
	"ELSE":      Else,
	"WHILE":     While,
	"DO":        Do,
	"DIV":       IntDiv,
	"INTEGER":   Integer,
	"REAL":      Real,
	"STRING":    String,
	"TYPE":      Typedef,
	"RECORD":    Record,
}

// Token is a lexeme with its type and 1-based source line
type Token struct {
	Type  Type
	Value string
	Line  int
}

// Lookup maps an upper-cased word to its keyword type, or ID
func Lookup(word string) Type {
	if t, ok := keywords[strings.ToUpper(word)]; ok {
		return t
	}
	return ID
}

// IsTypeName reports whether the token can start a type specification
func (t Token) IsTypeName() bool {
	switch t.Type {
	case Integer, Real, String, ID:
		return true
	}
	return false
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, line %d)", t.Type, t.Value, t.Line)
}
