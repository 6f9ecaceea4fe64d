package kernel

import "github.com/funvibe/minitt/internal/term"

// Conv decides definitional equality. Identical handles are equal outright;
// otherwise both sides are reduced to weak head normal form (beta, zeta,
// delta) and compared structurally, recursing through payloads. Sorts compare
// through the level normalizer. Eta conversion is not implemented.
func (c *Checker) Conv(a, b term.TermId) bool {
	if a == b {
		return true
	}
	a, b = c.Whnf(a), c.Whnf(b)
	if a == b {
		return true
	}
	na, nb := c.Terms.Get(a), c.Terms.Get(b)
	if na.Kind != nb.Kind {
		return false
	}
	switch na.Kind {
	case term.KindSort:
		return c.Levels.NormEq(na.Level, nb.Level)
	case term.KindVar:
		return na.Index == nb.Index
	case term.KindConst:
		// Whnf already unfolded defined constants, so two surviving consts
		// are opaque; they are equal only by name.
		return na.Name == nb.Name
	case term.KindApp:
		return c.Conv(na.Fn, nb.Fn) && c.Conv(na.Arg, nb.Arg)
	case term.KindLam, term.KindPi:
		return c.Conv(na.Ty, nb.Ty) && c.Conv(na.Body, nb.Body)
	case term.KindLet:
		// Unreachable after Whnf except when the store filled mid-reduction.
		return c.Conv(na.Ty, nb.Ty) && c.Conv(na.Val, nb.Val) && c.Conv(na.Body, nb.Body)
	case term.KindMeta:
		return na.Meta == nb.Meta
	}
	return false
}
