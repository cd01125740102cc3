//go:build unit
// +build unit

package diag

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"lex", Lexf(3, "#", "Invalid character"), "Invalid character at line 3: '#'"},
		{"parse", Parsef(1, "Token of type %s expected", "SEMI"), "Parse error on line 1: Token of type SEMI expected"},
		{"semantic", Semanticf(7, "duplicate identifier %s", "X"), "Semantic error on line 7: duplicate identifier X"},
		{"runtime", Runtimef(2, "division by zero"), "Runtime error on line 2: division by zero"},
		{"stack", Stackf(9, "call stack max depth exceeded"), "Stack error on line 9: call stack max depth exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("run failed: %w", Runtimef(1, "boom"))

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindRuntime, kind)

	_, ok = KindOf(context.Canceled)
	assert.False(t, ok)
}
