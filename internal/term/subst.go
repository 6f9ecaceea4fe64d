package term

// De Bruijn shifting and substitution over store handles. Both operations
// return the input handle unchanged when no variable is touched, so closed
// terms never cost an allocation. The second result is false only when the
// store ran out of capacity mid-rewrite; callers treat that as store overflow.

// Shift adds d to every free variable of t whose index is at least cutoff.
func (s *Store) Shift(t TermId, d int, cutoff uint32) (TermId, bool) {
	if d == 0 {
		return t, true
	}
	n := s.Get(t)
	switch n.Kind {
	case KindSort, KindConst, KindMeta:
		return t, true
	case KindVar:
		if n.Index < cutoff {
			return t, true
		}
		return s.MkVar(uint32(int(n.Index) + d))
	case KindApp:
		fn, ok := s.Shift(n.Fn, d, cutoff)
		if !ok {
			return NoTerm, false
		}
		arg, ok := s.Shift(n.Arg, d, cutoff)
		if !ok {
			return NoTerm, false
		}
		if fn == n.Fn && arg == n.Arg {
			return t, true
		}
		return s.MkApp(fn, arg)
	case KindLam, KindPi:
		ty, ok := s.Shift(n.Ty, d, cutoff)
		if !ok {
			return NoTerm, false
		}
		body, ok := s.Shift(n.Body, d, cutoff+1)
		if !ok {
			return NoTerm, false
		}
		if ty == n.Ty && body == n.Body {
			return t, true
		}
		if n.Kind == KindLam {
			return s.MkLam(n.Name, ty, body)
		}
		return s.MkPi(n.Name, ty, body)
	case KindLet:
		ty, ok := s.Shift(n.Ty, d, cutoff)
		if !ok {
			return NoTerm, false
		}
		val, ok := s.Shift(n.Val, d, cutoff)
		if !ok {
			return NoTerm, false
		}
		body, ok := s.Shift(n.Body, d, cutoff+1)
		if !ok {
			return NoTerm, false
		}
		if ty == n.Ty && val == n.Val && body == n.Body {
			return t, true
		}
		return s.MkLet(n.Name, ty, val, body)
	}
	return t, true
}

// Instantiate substitutes sub for the bound variable at index 0 of body and
// shifts the remaining free variables down by one. This is the elimination of
// one binder: the codomain of an applied Pi, the body type of an unfolded let.
func (s *Store) Instantiate(body, sub TermId) (TermId, bool) {
	return s.instantiate(body, sub, 0)
}

func (s *Store) instantiate(t, sub TermId, depth uint32) (TermId, bool) {
	n := s.Get(t)
	switch n.Kind {
	case KindSort, KindConst, KindMeta:
		return t, true
	case KindVar:
		switch {
		case n.Index == depth:
			// sub is expressed at the binder's outside; lift it past the
			// binders crossed on the way down.
			return s.Shift(sub, int(depth), 0)
		case n.Index > depth:
			return s.MkVar(n.Index - 1)
		default:
			return t, true
		}
	case KindApp:
		fn, ok := s.instantiate(n.Fn, sub, depth)
		if !ok {
			return NoTerm, false
		}
		arg, ok := s.instantiate(n.Arg, sub, depth)
		if !ok {
			return NoTerm, false
		}
		if fn == n.Fn && arg == n.Arg {
			return t, true
		}
		return s.MkApp(fn, arg)
	case KindLam, KindPi:
		ty, ok := s.instantiate(n.Ty, sub, depth)
		if !ok {
			return NoTerm, false
		}
		body, ok := s.instantiate(n.Body, sub, depth+1)
		if !ok {
			return NoTerm, false
		}
		if ty == n.Ty && body == n.Body {
			return t, true
		}
		if n.Kind == KindLam {
			return s.MkLam(n.Name, ty, body)
		}
		return s.MkPi(n.Name, ty, body)
	case KindLet:
		ty, ok := s.instantiate(n.Ty, sub, depth)
		if !ok {
			return NoTerm, false
		}
		val, ok := s.instantiate(n.Val, sub, depth)
		if !ok {
			return NoTerm, false
		}
		body, ok := s.instantiate(n.Body, sub, depth+1)
		if !ok {
			return NoTerm, false
		}
		if ty == n.Ty && val == n.Val && body == n.Body {
			return t, true
		}
		return s.MkLet(n.Name, ty, val, body)
	}
	return t, true
}
