// Package runtime holds the values and call stack of a running program.
package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/semantic"
)

// Kind is the dynamic type of a Value
type Kind int

// Value kinds
const (
	KindNone Kind = iota
	KindInteger
	KindReal
	KindString
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "INTEGER"
	case KindReal:
		return "REAL"
	case KindString:
		return "STRING"
	case KindRecord:
		return "RECORD"
	}
	return "NONE"
}

// Value is a dynamically typed program value. The zero Value is NONE.
type Value struct {
	Kind Kind
	Int  int64
	Real float64
	Str  string
	Rec  *Record
}

// Field is a named record slot
type Field struct {
	Name  string
	Value Value
}

// Record is an instance of a declared record type
type Record struct {
	TypeName string
	Fields   []Field
}

// Int creates an INTEGER value
func Int(i int64) Value { return Value{Kind: KindInteger, Int: i} }

// Float creates a REAL value
func Float(f float64) Value { return Value{Kind: KindReal, Real: f} }

// Str creates a STRING value
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool creates the INTEGER 1 or 0
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// NewRecord allocates a record of typ with unassigned fields. Nested record fields are allocated too.
func NewRecord(typ *semantic.TypeSymbol) Value {
	rec := &Record{TypeName: typ.Name(), Fields: make([]Field, 0, len(typ.Fields))}
	for _, f := range typ.Fields {
		var v Value
		if f.Type.IsRecord() {
			v = NewRecord(f.Type)
		}
		rec.Fields = append(rec.Fields, Field{Name: f.Name(), Value: v})
	}
	return Value{Kind: KindRecord, Rec: rec}
}

// IsNone reports whether v was never assigned
func (v Value) IsNone() bool { return v.Kind == KindNone }

// IsNumeric reports whether v is INTEGER or REAL
func (v Value) IsNumeric() bool { return v.Kind == KindInteger || v.Kind == KindReal }

// AsReal returns a numeric value as float64
func (v Value) AsReal() float64 {
	if v.Kind == KindInteger {
		return float64(v.Int)
	}
	return v.Real
}

// Truthy is true for non-zero numbers
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindInteger:
		return v.Int != 0
	case KindReal:
		return v.Real != 0
	}
	return false
}

// Copy returns v with record contents duplicated
func (v Value) Copy() Value {
	if v.Kind != KindRecord || v.Rec == nil {
		return v
	}
	rec := &Record{TypeName: v.Rec.TypeName, Fields: make([]Field, len(v.Rec.Fields))}
	for i, f := range v.Rec.Fields {
		rec.Fields[i] = Field{Name: f.Name, Value: f.Value.Copy()}
	}
	return Value{Kind: KindRecord, Rec: rec}
}

// Coerce converts v for storage in a slot of type typ. INTEGER widens to REAL; records are copied.
func Coerce(v Value, typ *semantic.TypeSymbol) Value {
	if typ == semantic.Real && v.Kind == KindInteger {
		return Float(float64(v.Int))
	}
	return v.Copy()
}

// Field returns the slot of a record field, or nil
func (r *Record) Field(name string) *Field {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i]
		}
	}
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return fmt.Sprintf("%f", v.Real)
	case KindString:
		return v.Str
	case KindRecord:
		parts := make([]string, 0, len(v.Rec.Fields))
		for _, f := range v.Rec.Fields {
			parts = append(parts, f.Name+"="+f.Value.String())
		}
		return v.Rec.TypeName + "(" + strings.Join(parts, ", ") + ")"
	}
	return ""
}
