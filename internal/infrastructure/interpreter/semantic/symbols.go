package semantic

import (
	"fmt"
	"strings"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/ast"
)

// Symbol is a named entry of a scope
type Symbol interface {
	Name() string
	String() string
}

// TypeSymbol is a builtin type or a declared record type
type TypeSymbol struct {
	name   string
	record bool
	// Fields lists record fields in declaration order
	Fields []*VarSymbol
}

// VarSymbol is a variable, parameter or record field
type VarSymbol struct {
	name string
	Type *TypeSymbol
}

// ProcedureSymbol is a declared procedure or a builtin
type ProcedureSymbol struct {
	name       string
	Params     []*VarSymbol
	ReturnType *TypeSymbol
	Builtin    bool
	// Decl and Scope are nil for builtins
	Decl  *ast.ProcedureDecl
	Scope *Scope
}

// Builtin types
var (
	Integer = &TypeSymbol{name: "INTEGER"}
	Real    = &TypeSymbol{name: "REAL"}
	String  = &TypeSymbol{name: "STRING"}
	Any     = &TypeSymbol{name: "ANY"}
)

// NewRecordType creates a record type symbol without fields
func NewRecordType(name string) *TypeSymbol {
	return &TypeSymbol{name: name, record: true}
}

// NewVar creates a variable symbol
func NewVar(name string, typ *TypeSymbol) *VarSymbol {
	return &VarSymbol{name: name, Type: typ}
}

// NewProcedure creates a procedure symbol
func NewProcedure(name string) *ProcedureSymbol {
	return &ProcedureSymbol{name: name}
}

func (t *TypeSymbol) Name() string      { return t.name }
func (v *VarSymbol) Name() string       { return v.name }
func (p *ProcedureSymbol) Name() string { return p.name }

// IsRecord reports whether t is a declared record type
func (t *TypeSymbol) IsRecord() bool { return t.record }

// IsNumeric reports whether t is INTEGER or REAL
func (t *TypeSymbol) IsNumeric() bool { return t == Integer || t == Real }

// Field finds a record field by name
func (t *TypeSymbol) Field(name string) *VarSymbol {
	for _, f := range t.Fields {
		if f.name == name {
			return f
		}
	}
	return nil
}

func (t *TypeSymbol) String() string {
	if t.record {
		names := make([]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			names = append(names, f.name+": "+f.Type.name)
		}
		return fmt.Sprintf("<RecordTypeSymbol(name=%s, fields=[%s])>", t.name, strings.Join(names, ", "))
	}
	return fmt.Sprintf("<BuiltinTypeSymbol(name=%s)>", t.name)
}

func (v *VarSymbol) String() string {
	return fmt.Sprintf("<VarSymbol(name=%s, type=%s)>", v.name, v.Type.name)
}

func (p *ProcedureSymbol) String() string {
	params := make([]string, 0, len(p.Params))
	for _, param := range p.Params {
		params = append(params, param.String())
	}
	ret := "none"
	if p.ReturnType != nil {
		ret = p.ReturnType.name
	}
	return fmt.Sprintf("<ProcedureSymbol(name=%s, parameters=[%s], returns=%s)>", p.name, strings.Join(params, ", "), ret)
}

// Builtin describes the signature of a native procedure
type Builtin struct {
	Name       string
	Params     []*TypeSymbol
	ReturnType *TypeSymbol
}

// Builtins are visible from every scope. An ANY parameter accepts every value even in strict mode.
var Builtins = []Builtin{
	{Name: "DUMP", Params: []*TypeSymbol{Any}},
	{Name: "PRINT", Params: []*TypeSymbol{String}},
	{Name: "PRINTLN", Params: []*TypeSymbol{String}},
	{Name: "SLEEP", Params: []*TypeSymbol{Real}},
	{Name: "STOI", Params: []*TypeSymbol{String}, ReturnType: Integer},
}
