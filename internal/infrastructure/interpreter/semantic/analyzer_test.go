//go:build unit
// +build unit

package semantic

import (
	"bytes"
	"testing"

	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/ast"
	"github.com/MGTheTrain/toypas/internal/infrastructure/interpreter/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, src string, opts Options) (*Analysis, error) {
	t.Helper()
	prog, err := parser.ParseSource(src, nil)
	require.NoError(t, err)
	return Analyze(prog, opts)
}

func TestAnalyzeValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "procedure chain",
			src: `program Main; var v : real;
procedure r0() -> real; begin return 5; end;
procedure r1() -> real; begin return r0(); end;
begin v := r1(); dump(v); end.`,
		},
		{
			name: "recursion",
			src: `program P;
procedure fact(n : integer) -> integer;
begin
  if (n <= 1) then begin return 1 end;
  return n * fact(n - 1)
end;
begin dump(fact(5)) end.`,
		},
		{
			name: "integer arithmetic widens into real",
			src:  `program P; var r : real; i : integer; begin i := 7 div 2; r := i + 0.5; r := i / 2 end.`,
		},
		{
			name: "string concatenation and comparison",
			src:  `program P; var s : string; begin s := "a" + "b"; if (s = "ab") then begin println(s) end end.`,
		},
		{
			name: "records",
			src: `program P;
type Point = record x, y : integer; end;
var p : Point;
procedure shift(q : Point) -> Point; begin q.x := q.x + 1; return q end;
begin p.x := 1; p.y := 2; p := shift(p); dump(p) end.`,
		},
		{
			name: "any accepts everything",
			src:  `program P; var a : any; i : integer; begin a := "s"; a := 1; i := a; a := a + 1 end.`,
		},
		{
			name: "builtins",
			src:  `program P; var i : integer; begin i := stoi("42"); sleep(1.5); print("x"); dump(i) end.`,
		},
		{
			name: "nested procedures see enclosing variables",
			src: `program P; var g : integer;
procedure outer();
  var l : integer;
  procedure inner(); begin l := g end;
begin inner() end;
begin g := 1; outer() end.`,
		},
		{
			name: "sibling procedures may reuse local names",
			src: `program P;
procedure a(); var x : integer; begin x := 1 end;
procedure b(); var x : string; begin x := "s" end;
begin a(); b() end.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.src, Options{})
			assert.NoError(t, err)
		})
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		strict bool
		want   string
	}{
		{
			name: "duplicate identifier",
			src:  "program P;\nvar x : integer;\nvar x : real;\nbegin end.",
			want: "Semantic error on line 3: duplicate identifier X",
		},
		{
			name: "unknown variable",
			src:  "program P;\nbegin\n  y := 1\nend.",
			want: "Semantic error on line 3: symbol not found for variable Y",
		},
		{
			name: "call before declaration",
			src:  "program P;\nprocedure a(); begin b() end;\nprocedure b(); begin end;\nbegin end.",
			want: "Semantic error on line 2: no procedure found with name B",
		},
		{
			name: "procedure shadowing",
			src:  "program P;\nprocedure a();\n  procedure a(); begin end;\nbegin end;\nbegin end.",
			want: "Semantic error on line 3: redefinition of procedure A",
		},
		{
			name: "redefining a builtin",
			src:  "program P;\nprocedure dump(); begin end;\nbegin end.",
			want: "Semantic error on line 2: redefinition of procedure DUMP",
		},
		{
			name: "wrong arity",
			src:  "program P;\nprocedure a(x : integer); begin end;\nbegin a(1, 2) end.",
			want: "Semantic error on line 3: expected 1 arguments, got 2 in call to A",
		},
		{
			name: "argument type mismatch",
			src:  "program P;\nprocedure a(x : integer); begin end;\nbegin a(\"s\") end.",
			want: "Semantic error on line 3: type mismatch between value of type INTEGER and value of type STRING in call to A",
		},
		{
			name: "real does not narrow to integer",
			src:  "program P;\nvar i : integer;\nbegin i := 1.5 end.",
			want: "Semantic error on line 3: type mismatch between value of type INTEGER and value of type REAL",
		},
		{
			name: "division yields real",
			src:  "program P;\nvar i : integer;\nbegin i := 4 / 2 end.",
			want: "Semantic error on line 3: type mismatch between value of type INTEGER and value of type REAL",
		},
		{
			name: "div requires integers",
			src:  "program P;\nvar r : real;\nbegin r := 4.0 div 2 end.",
			want: "Semantic error on line 3: operator DIV requires INTEGER operands, got REAL and INTEGER",
		},
		{
			name: "void call used as value",
			src:  "program P;\nvar i : integer;\nprocedure a(); begin end;\nbegin i := a() end.",
			want: "Semantic error on line 4: the right hand side does not return a value",
		},
		{
			name: "return outside procedure",
			src:  "program P;\nbegin\n  return 1\nend.",
			want: "Semantic error on line 3: return statement outside of a procedure",
		},
		{
			name: "return in void procedure",
			src:  "program P;\nprocedure a();\nbegin return 1 end;\nbegin end.",
			want: "Semantic error on line 3: procedure A has no return type",
		},
		{
			name: "return type mismatch",
			src:  "program P;\nprocedure a() -> integer;\nbegin return \"s\" end;\nbegin end.",
			want: "Semantic error on line 3: type mismatch between value of type INTEGER and value of type STRING",
		},
		{
			name: "procedure used as variable",
			src:  "program P;\nvar i : integer;\nprocedure a(); begin end;\nbegin i := a end.",
			want: `Semantic error on line 4: cannot use symbol "A" of kind procedure as a variable name`,
		},
		{
			name: "unary minus on string",
			src:  "program P;\nvar s : string;\nbegin s := -\"x\" end.",
			want: `Semantic error on line 3: unary operator "-" can only be used on numeric types`,
		},
		{
			name: "unknown record field",
			src:  "program P;\ntype R = record a : integer; end;\nvar x : R;\nbegin x.b := 1 end.",
			want: "Semantic error on line 4: record type R has no field B",
		},
		{
			name: "field access on scalar",
			src:  "program P;\nvar i : integer;\nbegin i.a := 1 end.",
			want: "Semantic error on line 3: variable I of type INTEGER is not a record",
		},
		{
			name: "string condition",
			src:  "program P;\nbegin\n  while (\"s\") do begin end\nend.",
			want: "Semantic error on line 3: condition must be numeric, got STRING",
		},
		{
			name: "builtin argument type",
			src:  "program P;\nbegin println(1) end.",
			want: "Semantic error on line 2: type mismatch between value of type STRING and value of type INTEGER in call to PRINTLN",
		},
		{
			name:   "strict mode rejects any into typed variable",
			src:    "program P;\nvar a : any; i : integer;\nbegin i := a end.",
			strict: true,
			want:   "Semantic error on line 3: type mismatch between value of type INTEGER and value of type ANY",
		},
		{
			name:   "strict mode rejects any operands",
			src:    "program P;\nvar a : any; i : integer;\nbegin a := a + 1 end.",
			strict: true,
			want:   "Semantic error on line 3: value of type ANY cannot be used with operator + under static type checking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analyze(t, tt.src, Options{StaticTypeChecking: tt.strict})
			require.Error(t, err)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestAnalyzeStrictModeKeepsPolymorphicBuiltins(t *testing.T) {
	_, err := analyze(t, "program P; var a : any; begin a := 1; dump(a) end.", Options{StaticTypeChecking: true})
	assert.NoError(t, err)
}

func TestAnalysisTables(t *testing.T) {
	src := `program P; var v : real;
procedure r0() -> real; begin return 5 end;
begin v := r0(); dump(v) end.`
	prog, err := parser.ParseSource(src, nil)
	require.NoError(t, err)

	analysis, err := Analyze(prog, Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, analysis.Procedures)
	assert.Equal(t, 3, analysis.Statements)

	r0, ok := analysis.Global.LookupLocal("R0").(*ProcedureSymbol)
	require.True(t, ok)
	assert.Equal(t, Real, r0.ReturnType)
	assert.Equal(t, analysis.Global, r0.Scope.Enclosing)
	assert.Equal(t, 2, r0.Scope.Level)

	assign := prog.Block.Body.Stmts[0].(*ast.Assign)
	call := assign.Value.(*ast.Call)
	assert.Same(t, r0, analysis.Calls[call])
	assert.Equal(t, Real, analysis.Types[call])

	dump := prog.Block.Body.Stmts[1].(*ast.Call)
	assert.True(t, analysis.Calls[dump].Builtin)
}

func TestAnalyzeTracesScopes(t *testing.T) {
	var trace bytes.Buffer
	_, err := analyze(t, "program P; var x : integer; procedure a(); begin end; begin x := 1 end.", Options{Trace: &trace})
	require.NoError(t, err)

	out := trace.String()
	assert.Contains(t, out, "ENTER scope: GLOBAL")
	assert.Contains(t, out, "Define: <VarSymbol(name=X, type=INTEGER)>")
	assert.Contains(t, out, "ENTER scope: A")
	assert.Contains(t, out, "LEAVE scope: A")
	assert.Contains(t, out, "Symbols in GLOBAL scope, level 1")
	assert.Contains(t, out, "Lookup: X")
}
