//go:build unit
// +build unit

package runtime

import (
	"testing"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/semantic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pointType() *semantic.TypeSymbol {
	point := semantic.NewRecordType("POINT")
	point.Fields = []*semantic.VarSymbol{
		semantic.NewVar("X", semantic.Integer),
		semantic.NewVar("Y", semantic.Real),
	}
	return point
}

func TestValueString(t *testing.T) {
	rec := NewRecord(pointType())
	rec.Rec.Field("X").Value = Int(1)
	rec.Rec.Field("Y").Value = Float(2)

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"integer", Int(-42), "-42"},
		{"real", Float(5), "5.000000"},
		{"real fraction", Float(3.14159265), "3.141593"},
		{"string", Str("Hello World"), "Hello World"},
		{"record", rec, "POINT(X=1, Y=2.000000)"},
		{"none", Value{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValueTruthy(t *testing.T) {
	assert.True(t, Int(2).Truthy())
	assert.False(t, Int(0).Truthy())
	assert.True(t, Float(0.5).Truthy())
	assert.False(t, Str("x").Truthy())
	assert.Equal(t, Int(1), Bool(true))
	assert.Equal(t, Int(0), Bool(false))
}

func TestRecordCopyIsDeep(t *testing.T) {
	outer := semantic.NewRecordType("LINE")
	outer.Fields = []*semantic.VarSymbol{semantic.NewVar("FROM", pointType())}

	original := NewRecord(outer)
	from := original.Rec.Field("FROM")
	require.NotNil(t, from)
	require.Equal(t, KindRecord, from.Value.Kind)

	clone := original.Copy()
	clone.Rec.Field("FROM").Value.Rec.Field("X").Value = Int(9)

	assert.True(t, original.Rec.Field("FROM").Value.Rec.Field("X").Value.IsNone())
	assert.Equal(t, "LINE(FROM=POINT(X=9, Y=))", clone.String())
}

func TestCoerce(t *testing.T) {
	assert.Equal(t, Float(5), Coerce(Int(5), semantic.Real))
	assert.Equal(t, Int(5), Coerce(Int(5), semantic.Integer))
	assert.Equal(t, Int(5), Coerce(Int(5), semantic.Any))
	assert.Equal(t, Str("s"), Coerce(Str("s"), semantic.String))
}
