// Package lexer turns toy-language source into tokens.
package lexer

import (
	"strings"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/token"
)

// Lexer scans source text one token at a time
type Lexer struct {
	input []rune
	pos   int
	line  int
}

// New creates a Lexer positioned at the start of input
func New(input string) *Lexer {
	return &Lexer{input: []rune(input), line: 1}
}

// Tokenize scans the whole input. The last token is always EOF.
func Tokenize(input string) ([]token.Token, error) {
	lx := New(input)
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) current() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) advance() {
	if l.current() == '\n' {
		l.line++
	}
	l.pos++
}

func (l *Lexer) emit(t token.Type, value string, width int) token.Token {
	tok := token.Token{Type: t, Value: value, Line: l.line}
	for i := 0; i < width; i++ {
		l.advance()
	}
	return tok
}

// Next returns the next token, or EOF once the input is exhausted.
func (l *Lexer) Next() (token.Token, error) {
	for l.pos < len(l.input) {
		ch := l.current()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.advance()
			continue
		case ch == '{':
			if err := l.skipComment(); err != nil {
				return token.Token{}, err
			}
			continue
		case ch == '"':
			return l.stringLiteral()
		case isDigit(ch), ch == '.' && isDigit(l.peek()):
			return l.number(), nil
		case isLetter(ch):
			return l.identifier(), nil
		}

		next := l.peek()
		switch ch {
		case ':':
			if next == '=' {
				return l.emit(token.Assign, ":=", 2), nil
			}
			return l.emit(token.Colon, ":", 1), nil
		case ';':
			return l.emit(token.Semi, ";", 1), nil
		case '.':
			return l.emit(token.Dot, ".", 1), nil
		case ',':
			return l.emit(token.Comma, ",", 1), nil
		case '+':
			return l.emit(token.Plus, "+", 1), nil
		case '-':
			if next == '>' {
				return l.emit(token.Arrow, "->", 2), nil
			}
			return l.emit(token.Minus, "-", 1), nil
		case '*':
			return l.emit(token.Mul, "*", 1), nil
		case '/':
			return l.emit(token.FloatDiv, "/", 1), nil
		case '(':
			return l.emit(token.LParen, "(", 1), nil
		case ')':
			return l.emit(token.RParen, ")", 1), nil
		case '=':
			return l.emit(token.Equals, "=", 1), nil
		case '!':
			if next == '=' {
				return l.emit(token.NotEquals, "!=", 2), nil
			}
			return l.emit(token.Bang, "!", 1), nil
		case '<':
			if next == '=' {
				return l.emit(token.LtOrEquals, "<=", 2), nil
			}
			return l.emit(token.LessThan, "<", 1), nil
		case '>':
			if next == '=' {
				return l.emit(token.GtOrEquals, ">=", 2), nil
			}
			return l.emit(token.GreaterThan, ">", 1), nil
		}
		return token.Token{}, diag.Lexf(l.line, string(ch), "Invalid character")
	}
	return token.Token{Type: token.EOF, Line: l.line}, nil
}

func (l *Lexer) skipComment() error {
	start := l.line
	l.advance()
	for l.current() != '}' {
		if l.pos >= len(l.input) {
			return diag.Lexf(start, "{", "Unterminated comment")
		}
		l.advance()
	}
	l.advance()
	return nil
}

func (l *Lexer) stringLiteral() (token.Token, error) {
	start := l.line
	l.advance()
	var sb strings.Builder
	for l.current() != '"' {
		if l.pos >= len(l.input) {
			return token.Token{}, diag.Lexf(start, `"`, "Unterminated string")
		}
		sb.WriteRune(l.current())
		l.advance()
	}
	l.advance()
	return token.Token{Type: token.StringLiteral, Value: sb.String(), Line: start}, nil
}

func (l *Lexer) number() token.Token {
	start := l.pos
	for isDigit(l.current()) {
		l.advance()
	}
	if l.current() == '.' && isDigit(l.peek()) {
		l.advance()
		for isDigit(l.current()) {
			l.advance()
		}
		return token.Token{Type: token.RealConst, Value: string(l.input[start:l.pos]), Line: l.line}
	}
	return token.Token{Type: token.IntConst, Value: string(l.input[start:l.pos]), Line: l.line}
}

func (l *Lexer) identifier() token.Token {
	start := l.pos
	for isLetter(l.current()) || isDigit(l.current()) || l.current() == '_' {
		l.advance()
	}
	word := strings.ToUpper(string(l.input[start:l.pos]))
	return token.Token{Type: token.Lookup(word), Value: word, Line: l.line}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
