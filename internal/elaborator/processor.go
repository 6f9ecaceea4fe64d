package elaborator

import (
	"fmt"

	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/kernel"
	"github.com/funvibe/minitt/internal/pipeline"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/token"
)

// ElaborationProcessor lowers the parsed program and verifies it statement by
// statement. Statements after a failed one still run: each failure is its own
// diagnostic, and the environment only ever contains declarations that
// checked.
type ElaborationProcessor struct{}

func (ep *ElaborationProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	elab := New(ctx.Limits)
	if elab == nil {
		ctx.Errors = append(ctx.Errors, diagnostics.NewFileError(diagnostics.ErrE002, ctx.FilePath, "limits too small to build the kernel stores"))
		return ctx
	}

	ctx.Symbols = elab.Symbols
	ctx.Terms = elab.Terms
	ctx.Levels = elab.Levels
	ctx.Env = elab.Env

	for _, stmt := range ctx.AstRoot.Statements {
		if derr := elab.runStatement(stmt, ctx); derr != nil {
			if derr.File == "" {
				derr.File = ctx.FilePath
			}
			ctx.Errors = append(ctx.Errors, derr)
		}
	}
	return ctx
}

func (e *Elaborator) runStatement(stmt ast.Statement, ctx *pipeline.PipelineContext) *diagnostics.DiagnosticError {
	switch s := stmt.(type) {
	case *ast.AxiomStatement:
		ty, derr := e.LowerTerm(s.Ty)
		if derr != nil {
			return derr
		}
		if _, kerr := e.Checker.SortOf(ty); kerr != nil {
			return e.kernelError(kerr, s.GetToken())
		}
		return e.register(s.Name, ty, term.NoTerm)

	case *ast.DefStatement:
		ty, derr := e.LowerTerm(s.Ty)
		if derr != nil {
			return derr
		}
		if _, kerr := e.Checker.SortOf(ty); kerr != nil {
			return e.kernelError(kerr, s.GetToken())
		}
		val, derr := e.LowerTerm(s.Value)
		if derr != nil {
			return derr
		}
		if kerr := e.Checker.Check(val, ty); kerr != nil {
			return e.kernelError(kerr, s.GetToken())
		}
		return e.register(s.Name, ty, val)

	case *ast.CheckStatement:
		t, derr := e.LowerTerm(s.Term)
		if derr != nil {
			return derr
		}
		ty, derr := e.LowerTerm(s.Ty)
		if derr != nil {
			return derr
		}
		if _, kerr := e.Checker.SortOf(ty); kerr != nil {
			return e.kernelError(kerr, s.GetToken())
		}
		if kerr := e.Checker.Check(t, ty); kerr != nil {
			return e.kernelError(kerr, s.GetToken())
		}
		ctx.Results = append(ctx.Results, pipeline.Result{
			Line:   s.Token.Line,
			Output: fmt.Sprintf("ok: %s : %s", e.Printer.Print(t), e.Printer.Print(ty)),
		})
		return nil

	case *ast.InferStatement:
		t, derr := e.LowerTerm(s.Term)
		if derr != nil {
			return derr
		}
		ty, kerr := e.Checker.Infer(t)
		if kerr != nil {
			return e.kernelError(kerr, s.GetToken())
		}
		ctx.Results = append(ctx.Results, pipeline.Result{
			Line:   s.Token.Line,
			Output: fmt.Sprintf("%s : %s", e.Printer.Print(t), e.Printer.Print(ty)),
		})
		return nil
	}
	return diagnostics.NewError(diagnostics.ErrP003, stmt.GetToken(), "unsupported statement")
}

func (e *Elaborator) register(name *ast.Identifier, ty, val term.TermId) *diagnostics.DiagnosticError {
	sym, derr := e.intern(name.Value, name)
	if derr != nil {
		return derr
	}
	if _, dup := e.Env.Lookup(sym); dup {
		return diagnostics.NewError(diagnostics.ErrE001, name.GetToken(), "%q is already declared", name.Value)
	}
	if !e.Env.Register(sym, ty, val) {
		return diagnostics.NewError(diagnostics.ErrE002, name.GetToken(), "environment full; raise the env limit")
	}
	return nil
}

// kernelError maps a checker failure onto a K-coded diagnostic, rendering the
// involved terms where handles are available.
func (e *Elaborator) kernelError(kerr *kernel.TypeError, tok token.Token) *diagnostics.DiagnosticError {
	switch kerr.Code {
	case kernel.TypeMismatch:
		return diagnostics.NewError(diagnostics.ErrK001, tok, "type mismatch: %s has type %s, expected %s",
			e.Printer.Print(kerr.Term), e.Printer.Print(kerr.Actual), e.Printer.Print(kerr.Expected))
	case kernel.VarOutOfScope:
		return diagnostics.NewError(diagnostics.ErrK002, tok, "variable out of scope: index %d at depth %d", kerr.Index, kerr.Depth)
	case kernel.ExpectedPi:
		return diagnostics.NewError(diagnostics.ErrK003, tok, "%s is not a function: its type is %s",
			e.Printer.Print(kerr.Term), e.Printer.Print(kerr.Actual))
	case kernel.ExpectedSort:
		return diagnostics.NewError(diagnostics.ErrK004, tok, "%s is not a type: its type is %s",
			e.Printer.Print(kerr.Term), e.Printer.Print(kerr.Actual))
	case kernel.UnknownConst:
		return diagnostics.NewError(diagnostics.ErrK005, tok, "unknown constant %q", e.Symbols.Name(kerr.Name))
	case kernel.ContextOverflow:
		return diagnostics.NewError(diagnostics.ErrK006, tok, "binders nested deeper than the context bound (%d)", e.Checker.Ctx.Cap())
	case kernel.StoreOverflow:
		return diagnostics.NewError(diagnostics.ErrK007, tok, "term or level store exhausted during checking; raise the limits")
	}
	return diagnostics.NewError(diagnostics.ErrK007, tok, "kernel error: %s", kerr.Error())
}
