package elaborator

import (
	"strings"
	"testing"

	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/config"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/lexer"
	"github.com/funvibe/minitt/internal/parser"
	"github.com/funvibe/minitt/internal/pipeline"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/universe"
)

// lowerExpr parses `infer EXPR` and lowers the expression with a fresh
// elaborator.
func lowerExpr(t *testing.T, src string) (*Elaborator, term.TermId) {
	t.Helper()
	program, errs := parser.Parse("infer " + src)
	if len(errs) > 0 {
		t.Fatalf("parse %q: %v", src, errs)
	}
	elab := New(config.DefaultLimits())
	if elab == nil {
		t.Fatal("New returned nil with default limits")
	}
	expr := program.Statements[0].(*ast.InferStatement).Term
	id, derr := elab.LowerTerm(expr)
	if derr != nil {
		t.Fatalf("LowerTerm %q: %v", src, derr)
	}
	return elab, id
}

func TestLowerDeBruijnIndices(t *testing.T) {
	tests := []struct {
		src  string
		path []int // 0 descends into Body; the walk ends at the variable
		want uint32
	}{
		{"fun (x : Nat) => x", []int{0}, 0},
		{"fun (x : Nat) => fun (y : Nat) => x", []int{0, 0}, 1},
		{"fun (x : Nat) => fun (y : Nat) => y", []int{0, 0}, 0},
		{"pi (A : Type) -> A", []int{0}, 0},
		{"let y : Nat := zero in y", []int{0}, 0},
	}
	for _, tt := range tests {
		elab, id := lowerExpr(t, tt.src)
		for range tt.path {
			id = elab.Terms.Get(id).Body
		}
		n := elab.Terms.Get(id)
		if n.Kind != term.KindVar || n.Index != tt.want {
			t.Errorf("%q: innermost body = %+v, want Var %d", tt.src, n, tt.want)
		}
	}
}

func TestLowerShadowing(t *testing.T) {
	elab, id := lowerExpr(t, "fun (x : Nat) => fun (x : Type) => x")
	inner := elab.Terms.Get(elab.Terms.Get(id).Body)
	v := elab.Terms.Get(inner.Body)
	if v.Kind != term.KindVar || v.Index != 0 {
		t.Fatalf("shadowed occurrence = %+v, want the inner binder (Var 0)", v)
	}
}

func TestLowerUnboundNameIsConst(t *testing.T) {
	elab, id := lowerExpr(t, "Nat")
	n := elab.Terms.Get(id)
	if n.Kind != term.KindConst {
		t.Fatalf("unbound name lowered to kind %d, want Const", n.Kind)
	}
	if elab.Symbols.Name(n.Name) != "Nat" {
		t.Errorf("const symbol = %q, want Nat", elab.Symbols.Name(n.Name))
	}
}

func TestLowerMetaIdentity(t *testing.T) {
	// the same named meta resolves to one id; every hole is fresh
	elab, id := lowerExpr(t, "f ?h ?h")
	outer := elab.Terms.Get(id)
	inner := elab.Terms.Get(outer.Fn)
	m1 := elab.Terms.Get(inner.Arg)
	m2 := elab.Terms.Get(outer.Arg)
	if m1.Kind != term.KindMeta || m2.Kind != term.KindMeta {
		t.Fatal("?h did not lower to metas")
	}
	if m1.Meta != m2.Meta {
		t.Errorf("two occurrences of ?h got ids %d and %d, want equal", m1.Meta, m2.Meta)
	}

	elab, id = lowerExpr(t, "f _ _")
	outer = elab.Terms.Get(id)
	inner = elab.Terms.Get(outer.Fn)
	m1 = elab.Terms.Get(inner.Arg)
	m2 = elab.Terms.Get(outer.Arg)
	if m1.Meta == m2.Meta {
		t.Errorf("two holes share meta id %d, want distinct", m1.Meta)
	}
}

func TestLowerLevels(t *testing.T) {
	elab, id := lowerExpr(t, "Sort 0")
	n := elab.Terms.Get(id)
	if n.Kind != term.KindSort || n.Level != universe.Zero {
		t.Errorf("Sort 0 lowered to %+v, want the reserved zero level", n)
	}

	elab, id = lowerExpr(t, "Type")
	n = elab.Terms.Get(id)
	if n.Kind != term.KindSort || n.Level != universe.One {
		t.Errorf("Type lowered to %+v, want the reserved level 1", n)
	}

	elab, id = lowerExpr(t, "Sort max(1, 0)")
	n = elab.Terms.Get(id)
	lvl := elab.Levels.Get(n.Level)
	if lvl.Kind != universe.KindMax {
		t.Errorf("max level lowered to kind %d, want Max", lvl.Kind)
	}
	if !elab.Levels.NormEq(n.Level, universe.One) {
		t.Errorf("max(1, 0) does not normalize to 1")
	}
}

// run pushes a document through the full pipeline with default limits.
func run(t *testing.T, source string) *pipeline.PipelineContext {
	t.Helper()
	ctx := pipeline.NewContext("test.mtt", source, config.DefaultLimits())
	p := pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}, &ElaborationProcessor{})
	return p.Run(ctx)
}

func TestProcessGoodProgram(t *testing.T) {
	ctx := run(t, `axiom Nat : Type
axiom zero : Nat
def idNat : Nat -> Nat := fun (x : Nat) => x
check idNat zero : Nat
infer zero
`)
	if ctx.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", ctx.Errors)
	}
	if ctx.Env.Len() != 3 {
		t.Errorf("environment has %d declarations, want 3", ctx.Env.Len())
	}
	if len(ctx.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(ctx.Results))
	}
	if ctx.Results[0].Line != 4 || !strings.HasPrefix(ctx.Results[0].Output, "ok: ") {
		t.Errorf("check result = %+v, want ok on line 4", ctx.Results[0])
	}
	if ctx.Results[1].Line != 5 || !strings.Contains(ctx.Results[1].Output, " : Nat") {
		t.Errorf("infer result = %+v, want `zero : Nat` on line 5", ctx.Results[1])
	}
}

func TestProcessDiagnostics(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   diagnostics.ErrorCode
	}{
		{
			"duplicate declaration",
			"axiom Nat : Type\naxiom Nat : Type",
			diagnostics.ErrE001,
		},
		{
			"type mismatch",
			"axiom Nat : Type\naxiom Bool : Type\naxiom zero : Nat\ncheck zero : Bool",
			diagnostics.ErrK001,
		},
		{
			"unknown constant",
			"infer ghost",
			diagnostics.ErrK005,
		},
		{
			"axiom type is not a type",
			"axiom Nat : Type\naxiom zero : Nat\naxiom bad : zero",
			diagnostics.ErrK004,
		},
		{
			"applying a non-function",
			"axiom Nat : Type\naxiom zero : Nat\ninfer zero zero",
			diagnostics.ErrK003,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := run(t, tt.source)
			if len(ctx.Errors) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(ctx.Errors), ctx.Errors)
			}
			if ctx.Errors[0].Code != tt.code {
				t.Errorf("code = %s, want %s", ctx.Errors[0].Code, tt.code)
			}
			if ctx.Errors[0].File != "test.mtt" {
				t.Errorf("diagnostic file = %q, want test.mtt", ctx.Errors[0].File)
			}
		})
	}
}

func TestProcessContinuesAfterFailure(t *testing.T) {
	ctx := run(t, `axiom Nat : Type
axiom zero : Nat
check zero : zero
infer zero
`)
	if len(ctx.Errors) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(ctx.Errors), ctx.Errors)
	}
	if len(ctx.Results) != 1 {
		t.Fatalf("statements after the failure did not run: %d results", len(ctx.Results))
	}
	if ctx.Results[0].Line != 4 {
		t.Errorf("surviving result on line %d, want 4", ctx.Results[0].Line)
	}
}

func TestFailedDefIsNotRegistered(t *testing.T) {
	ctx := run(t, `axiom Nat : Type
axiom Bool : Type
axiom zero : Nat
def bad : Bool := zero
infer bad
`)
	if len(ctx.Errors) != 2 {
		t.Fatalf("got %d diagnostics, want mismatch then unknown constant: %v", len(ctx.Errors), ctx.Errors)
	}
	if ctx.Errors[0].Code != diagnostics.ErrK001 || ctx.Errors[1].Code != diagnostics.ErrK005 {
		t.Errorf("codes = %s, %s; want %s, %s",
			ctx.Errors[0].Code, ctx.Errors[1].Code, diagnostics.ErrK001, diagnostics.ErrK005)
	}
}

func TestElaboratorReset(t *testing.T) {
	elab, _ := lowerExpr(t, "fun (x : Nat) => x")
	elab.Reset()
	if elab.Terms.Len() != 0 || elab.Symbols.Len() != 0 || elab.Env.Len() != 0 {
		t.Errorf("Reset left stores populated: %d terms, %d symbols, %d decls",
			elab.Terms.Len(), elab.Symbols.Len(), elab.Env.Len())
	}
	if elab.Levels.Len() != 2 {
		t.Errorf("Reset left %d levels, want the 2 reserved handles", elab.Levels.Len())
	}
	if _, id := lowerExpr(t, "Nat"); !id.IsValid() {
		t.Error("lowering after reset failed")
	}
}
