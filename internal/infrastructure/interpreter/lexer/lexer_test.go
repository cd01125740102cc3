//go:build unit
// +build unit

package lexer

import (
	"testing"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/diag"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/token"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{
			name:  "empty input",
			input: "",
			want:  []token.Token{{Type: token.EOF, Line: 1}},
		},
		{
			name:  "keywords fold case",
			input: "Program main; BEGIN end.",
			want: []token.Token{
				{Type: token.Program, Value: "PROGRAM", Line: 1},
				{Type: token.ID, Value: "MAIN", Line: 1},
				{Type: token.Semi, Value: ";", Line: 1},
				{Type: token.Begin, Value: "BEGIN", Line: 1},
				{Type: token.End, Value: "END", Line: 1},
				{Type: token.Dot, Value: ".", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "procedure header with arrow",
			input: "procedure r0() -> real;",
			want: []token.Token{
				{Type: token.Procedure, Value: "PROCEDURE", Line: 1},
				{Type: token.ID, Value: "R0", Line: 1},
				{Type: token.LParen, Value: "(", Line: 1},
				{Type: token.RParen, Value: ")", Line: 1},
				{Type: token.Arrow, Value: "->", Line: 1},
				{Type: token.Real, Value: "REAL", Line: 1},
				{Type: token.Semi, Value: ";", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "numbers",
			input: "12 3.5 .25",
			want: []token.Token{
				{Type: token.IntConst, Value: "12", Line: 1},
				{Type: token.RealConst, Value: "3.5", Line: 1},
				{Type: token.RealConst, Value: ".25", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "operators",
			input: ":= : <= >= < > = != ! - * / div",
			want: []token.Token{
				{Type: token.Assign, Value: ":=", Line: 1},
				{Type: token.Colon, Value: ":", Line: 1},
				{Type: token.LtOrEquals, Value: "<=", Line: 1},
				{Type: token.GtOrEquals, Value: ">=", Line: 1},
				{Type: token.LessThan, Value: "<", Line: 1},
				{Type: token.GreaterThan, Value: ">", Line: 1},
				{Type: token.Equals, Value: "=", Line: 1},
				{Type: token.NotEquals, Value: "!=", Line: 1},
				{Type: token.Bang, Value: "!", Line: 1},
				{Type: token.Minus, Value: "-", Line: 1},
				{Type: token.Mul, Value: "*", Line: 1},
				{Type: token.FloatDiv, Value: "/", Line: 1},
				{Type: token.IntDiv, Value: "DIV", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name:  "strings keep case and comments are skipped",
			input: "{ a\ncomment }\nprintln(\"Hello World\")",
			want: []token.Token{
				{Type: token.ID, Value: "PRINTLN", Line: 3},
				{Type: token.LParen, Value: "(", Line: 3},
				{Type: token.StringLiteral, Value: "Hello World", Line: 3},
				{Type: token.RParen, Value: ")", Line: 3},
				{Type: token.EOF, Line: 3},
			},
		},
		{
			name:  "identifiers with digits and underscores",
			input: "my_var2 any",
			want: []token.Token{
				{Type: token.ID, Value: "MY_VAR2", Line: 1},
				{Type: token.ID, Value: "ANY", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid character", "begin\n  x := 1 # 2", "Invalid character at line 2: '#'"},
		{"unterminated comment", "{ never closed", "Unterminated comment at line 1: '{'"},
		{"unterminated string", "\n\"abc", "Unterminated string at line 2: '\"'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)

			kind, ok := diag.KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, diag.KindLex, kind)
		})
	}
}
