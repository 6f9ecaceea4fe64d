package kernel

import (
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/universe"
)

// Checker implements the bidirectional judgments over one session's stores:
// Infer computes a type, Check verifies against an expected one, Conv decides
// definitional equality. All three are synchronous and allocation-bounded; the
// only failure modes are the TypeError taxonomy.
type Checker struct {
	Terms  *term.Store
	Levels *universe.Store
	Ctx    *Context
	Env    *Environment
}

// New creates a checker over the given stores. env may be nil, in which case
// every constant is unknown.
func New(terms *term.Store, levels *universe.Store, ctx *Context, env *Environment) *Checker {
	return &Checker{Terms: terms, Levels: levels, Ctx: ctx, Env: env}
}

// Infer computes the type of t under the current context.
func (c *Checker) Infer(t term.TermId) (term.TermId, *TypeError) {
	n := c.Terms.Get(t)
	switch n.Kind {
	case term.KindSort:
		// Sort l : Sort (l+1)
		succ, ok := c.Levels.MkSucc(n.Level)
		if !ok {
			return term.NoTerm, NewStoreOverflow()
		}
		return c.mkSort(succ)

	case term.KindVar:
		ty, err := c.Ctx.GetType(n.Index)
		if err != nil {
			return term.NoTerm, err
		}
		// The stored type is expressed at its binding depth; lift it past
		// the binders between there and here.
		lifted, ok := c.Terms.Shift(ty, int(n.Index)+1, 0)
		if !ok {
			return term.NoTerm, NewStoreOverflow()
		}
		return lifted, nil

	case term.KindConst:
		if c.Env == nil {
			return term.NoTerm, NewUnknownConst(n.Name)
		}
		d, ok := c.Env.Lookup(n.Name)
		if !ok {
			return term.NoTerm, NewUnknownConst(n.Name)
		}
		return d.Ty, nil

	case term.KindApp:
		fnTy, err := c.Infer(n.Fn)
		if err != nil {
			return term.NoTerm, err
		}
		w := c.Whnf(fnTy)
		pi := c.Terms.Get(w)
		if pi.Kind != term.KindPi {
			return term.NoTerm, NewExpectedPi(n.Fn, w)
		}
		if err := c.Check(n.Arg, pi.Ty); err != nil {
			return term.NoTerm, err
		}
		out, ok := c.Terms.Instantiate(pi.Body, n.Arg)
		if !ok {
			return term.NoTerm, NewStoreOverflow()
		}
		return out, nil

	case term.KindLam:
		if _, err := c.SortOf(n.Ty); err != nil {
			return term.NoTerm, err
		}
		if err := c.Ctx.Extend(n.Name, n.Ty); err != nil {
			return term.NoTerm, err
		}
		bodyTy, err := c.Infer(n.Body)
		c.Ctx.Pop()
		if err != nil {
			return term.NoTerm, err
		}
		out, ok := c.Terms.MkPi(n.Name, n.Ty, bodyTy)
		if !ok {
			return term.NoTerm, NewStoreOverflow()
		}
		return out, nil

	case term.KindPi:
		s1, err := c.SortOf(n.Ty)
		if err != nil {
			return term.NoTerm, err
		}
		if err := c.Ctx.Extend(n.Name, n.Ty); err != nil {
			return term.NoTerm, err
		}
		s2, err := c.SortOf(n.Body)
		c.Ctx.Pop()
		if err != nil {
			return term.NoTerm, err
		}
		im, ok := c.Levels.MkIMax(s1, s2)
		if !ok {
			return term.NoTerm, NewStoreOverflow()
		}
		return c.mkSort(im)

	case term.KindLet:
		if _, err := c.SortOf(n.Ty); err != nil {
			return term.NoTerm, err
		}
		if err := c.Check(n.Val, n.Ty); err != nil {
			return term.NoTerm, err
		}
		if err := c.Ctx.Define(n.Name, n.Ty, n.Val); err != nil {
			return term.NoTerm, err
		}
		bodyTy, err := c.Infer(n.Body)
		c.Ctx.Pop()
		if err != nil {
			return term.NoTerm, err
		}
		out, ok := c.Terms.Instantiate(bodyTy, n.Val)
		if !ok {
			return term.NoTerm, NewStoreOverflow()
		}
		return out, nil

	case term.KindMeta:
		// Metavariable resolution lives outside the kernel; an unsolved meta
		// is given the base sort as an opaque placeholder.
		return c.mkSort(universe.Zero)
	}
	return term.NoTerm, NewStoreOverflow()
}

// Check infers the type of t and requires it be definitionally equal to
// expected.
func (c *Checker) Check(t, expected term.TermId) *TypeError {
	actual, err := c.Infer(t)
	if err != nil {
		return err
	}
	if !c.Conv(actual, expected) {
		return NewTypeMismatch(t, expected, actual)
	}
	return nil
}

// SortOf infers the type of t and requires it reduce to a sort, returning the
// universe level. This is the "t is a type" judgment; binder domains and
// declaration types go through it.
func (c *Checker) SortOf(t term.TermId) (universe.LevelId, *TypeError) {
	ty, err := c.Infer(t)
	if err != nil {
		return universe.NoLevel, err
	}
	w := c.Whnf(ty)
	n := c.Terms.Get(w)
	if n.Kind != term.KindSort {
		return universe.NoLevel, NewExpectedSort(t, w)
	}
	return n.Level, nil
}

func (c *Checker) mkSort(l universe.LevelId) (term.TermId, *TypeError) {
	id, ok := c.Terms.MkSort(l)
	if !ok {
		return term.NoTerm, NewStoreOverflow()
	}
	return id, nil
}
