package elaborator

import (
	"github.com/funvibe/minitt/internal/arena"
	"github.com/funvibe/minitt/internal/ast"
	"github.com/funvibe/minitt/internal/config"
	"github.com/funvibe/minitt/internal/diagnostics"
	"github.com/funvibe/minitt/internal/kernel"
	"github.com/funvibe/minitt/internal/prettyprinter"
	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/universe"
)

// Elaborator lowers parsed statements into the kernel stores and drives the
// checker over them. Name resolution happens here: an identifier bound by an
// enclosing fun/pi/let becomes a de Bruijn variable, anything else becomes a
// constant that must be in the environment by the time it is checked.
type Elaborator struct {
	Symbols *symbols.Table
	Terms   *term.Store
	Levels  *universe.Store
	Env     *kernel.Environment
	Checker *kernel.Checker
	Printer *prettyprinter.Printer

	binders []string // enclosing binder names, innermost last
	metas   map[string]uint32
	nextMet uint32
}

// New builds an elaborator with fresh stores sized by limits. The term and
// level stores are carved out of one arena; a nil return means the limits are
// unsatisfiable.
func New(limits config.Limits) *Elaborator {
	a := arena.New(limits.ArenaBytes())
	terms, ok := term.NewStore(a, limits.Terms)
	if !ok {
		return nil
	}
	levels, ok := universe.NewStore(a, limits.Levels)
	if !ok {
		return nil
	}
	syms := symbols.NewTable(limits.Symbols)
	env := kernel.NewEnvironment(limits.Env)
	ctx := kernel.NewContext(limits.ContextDepth)
	return &Elaborator{
		Symbols: syms,
		Terms:   terms,
		Levels:  levels,
		Env:     env,
		Checker: kernel.New(terms, levels, ctx, env),
		Printer: prettyprinter.New(terms, levels, syms),
		metas:   make(map[string]uint32),
	}
}

func overflow(node ast.Node) *diagnostics.DiagnosticError {
	return diagnostics.NewError(diagnostics.ErrE002, node.GetToken(), "term or level store exhausted; raise the limits for this document")
}

func (e *Elaborator) intern(name string, node ast.Node) (symbols.SymbolId, *diagnostics.DiagnosticError) {
	id, ok := e.Symbols.Intern(name)
	if !ok {
		return symbols.NoSymbol, diagnostics.NewError(diagnostics.ErrE003, node.GetToken(), "symbol table exhausted at %q", name)
	}
	return id, nil
}

// LowerTerm resolves names and appends the term to the store.
func (e *Elaborator) LowerTerm(expr ast.Expression) (term.TermId, *diagnostics.DiagnosticError) {
	switch n := expr.(type) {
	case *ast.Identifier:
		for i := len(e.binders) - 1; i >= 0; i-- {
			if e.binders[i] == n.Value {
				id, ok := e.Terms.MkVar(uint32(len(e.binders) - 1 - i))
				if !ok {
					return term.NoTerm, overflow(n)
				}
				return id, nil
			}
		}
		sym, derr := e.intern(n.Value, n)
		if derr != nil {
			return term.NoTerm, derr
		}
		id, ok := e.Terms.MkConst(sym)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil

	case *ast.SortExpression:
		lvl, derr := e.LowerLevel(n.Level)
		if derr != nil {
			return term.NoTerm, derr
		}
		id, ok := e.Terms.MkSort(lvl)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil

	case *ast.MetaExpression:
		var mid uint32
		if n.Name == "_" {
			// every hole is a distinct metavariable
			mid = e.nextMet
			e.nextMet++
		} else if known, ok := e.metas[n.Name]; ok {
			mid = known
		} else {
			mid = e.nextMet
			e.nextMet++
			e.metas[n.Name] = mid
		}
		id, ok := e.Terms.MkMeta(mid)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil

	case *ast.LambdaExpression:
		ty, derr := e.LowerTerm(n.ParamType)
		if derr != nil {
			return term.NoTerm, derr
		}
		sym, derr := e.binderSymbol(n.Param, n)
		if derr != nil {
			return term.NoTerm, derr
		}
		e.binders = append(e.binders, n.Param)
		body, derr := e.LowerTerm(n.Body)
		e.binders = e.binders[:len(e.binders)-1]
		if derr != nil {
			return term.NoTerm, derr
		}
		id, ok := e.Terms.MkLam(sym, ty, body)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil

	case *ast.PiExpression:
		ty, derr := e.LowerTerm(n.ParamType)
		if derr != nil {
			return term.NoTerm, derr
		}
		sym, derr := e.binderSymbol(n.Param, n)
		if derr != nil {
			return term.NoTerm, derr
		}
		e.binders = append(e.binders, n.Param)
		body, derr := e.LowerTerm(n.Body)
		e.binders = e.binders[:len(e.binders)-1]
		if derr != nil {
			return term.NoTerm, derr
		}
		id, ok := e.Terms.MkPi(sym, ty, body)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil

	case *ast.LetExpression:
		ty, derr := e.LowerTerm(n.Ty)
		if derr != nil {
			return term.NoTerm, derr
		}
		val, derr := e.LowerTerm(n.Value)
		if derr != nil {
			return term.NoTerm, derr
		}
		sym, derr := e.binderSymbol(n.Name, n)
		if derr != nil {
			return term.NoTerm, derr
		}
		e.binders = append(e.binders, n.Name)
		body, derr := e.LowerTerm(n.Body)
		e.binders = e.binders[:len(e.binders)-1]
		if derr != nil {
			return term.NoTerm, derr
		}
		id, ok := e.Terms.MkLet(sym, ty, val, body)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil

	case *ast.ApplyExpression:
		fn, derr := e.LowerTerm(n.Fn)
		if derr != nil {
			return term.NoTerm, derr
		}
		arg, derr := e.LowerTerm(n.Arg)
		if derr != nil {
			return term.NoTerm, derr
		}
		id, ok := e.Terms.MkApp(fn, arg)
		if !ok {
			return term.NoTerm, overflow(n)
		}
		return id, nil
	}
	return term.NoTerm, diagnostics.NewError(diagnostics.ErrP001, expr.GetToken(), "unsupported expression")
}

// binderSymbol interns a binder name; "_" stays anonymous so shadow lookups
// and the printer treat it as unnamed.
func (e *Elaborator) binderSymbol(name string, node ast.Node) (symbols.SymbolId, *diagnostics.DiagnosticError) {
	if name == "_" {
		return symbols.NoSymbol, nil
	}
	return e.intern(name, node)
}

// LowerLevel appends a universe level to the level store.
func (e *Elaborator) LowerLevel(expr ast.LevelExpression) (universe.LevelId, *diagnostics.DiagnosticError) {
	switch n := expr.(type) {
	case *ast.LevelLiteral:
		lvl := universe.Zero
		for i := 0; i < n.Value; i++ {
			next, ok := e.Levels.MkSucc(lvl)
			if !ok {
				return universe.NoLevel, overflow(n)
			}
			lvl = next
		}
		return lvl, nil
	case *ast.LevelParam:
		sym, derr := e.intern(n.Name, n)
		if derr != nil {
			return universe.NoLevel, derr
		}
		id, ok := e.Levels.MkParam(sym)
		if !ok {
			return universe.NoLevel, overflow(n)
		}
		return id, nil
	case *ast.LevelMax:
		left, derr := e.LowerLevel(n.Left)
		if derr != nil {
			return universe.NoLevel, derr
		}
		right, derr := e.LowerLevel(n.Right)
		if derr != nil {
			return universe.NoLevel, derr
		}
		var (
			id universe.LevelId
			ok bool
		)
		if n.Impredicative {
			id, ok = e.Levels.MkIMax(left, right)
		} else {
			id, ok = e.Levels.MkMax(left, right)
		}
		if !ok {
			return universe.NoLevel, overflow(n)
		}
		return id, nil
	}
	return universe.NoLevel, diagnostics.NewError(diagnostics.ErrP001, expr.GetToken(), "unsupported level expression")
}

// Reset clears every store for a fresh session. Handles from before the reset
// are invalid afterwards.
func (e *Elaborator) Reset() {
	e.Terms.Reset()
	e.Levels.Reset()
	e.Symbols.Reset()
	e.Env.Reset()
	e.Checker.Ctx.Reset()
	e.binders = e.binders[:0]
	e.metas = make(map[string]uint32)
	e.nextMet = 0
}
