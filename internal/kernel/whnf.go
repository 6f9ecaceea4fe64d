package kernel

import "github.com/funvibe/minitt/internal/term"

// maxReductionSteps bounds the work Whnf may do. Checking well-typed input
// never comes near it; on ill-formed input the reducer stops and returns the
// partially reduced term, which can only make Conv reject.
const maxReductionSteps = 10000

// Whnf reduces t to weak head normal form: beta redexes at the head, let
// unfolding (zeta), and defined constants from the environment (delta). If a
// reduction step would need a node the store cannot hold, reduction stops at
// the term reached so far. Variables are never unfolded here: Conv recurses
// under binders, where context-relative indices would not line up.
func (c *Checker) Whnf(t term.TermId) term.TermId {
	for steps := 0; steps < maxReductionSteps; steps++ {
		n := c.Terms.Get(t)
		switch n.Kind {
		case term.KindApp:
			fn := c.Whnf(n.Fn)
			fnNode := c.Terms.Get(fn)
			if fnNode.Kind == term.KindLam {
				red, ok := c.Terms.Instantiate(fnNode.Body, n.Arg)
				if !ok {
					return t
				}
				t = red
				continue
			}
			if fn == n.Fn {
				return t
			}
			out, ok := c.Terms.MkApp(fn, n.Arg)
			if !ok {
				return t
			}
			return out

		case term.KindLet:
			red, ok := c.Terms.Instantiate(n.Body, n.Val)
			if !ok {
				return t
			}
			t = red

		case term.KindConst:
			if c.Env == nil {
				return t
			}
			d, ok := c.Env.Lookup(n.Name)
			if !ok || !d.Value.IsValid() {
				return t
			}
			t = d.Value

		default:
			return t
		}
	}
	return t
}
