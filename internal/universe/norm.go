package universe

// Normalization of the Max/IMax algebra, kept apart from the structural Eq so
// the simplification laws can evolve without touching the term checker.
//
// The laws applied, bottom-up:
//
//	Max l l          -> l
//	Max 0 l          -> l
//	Max l 0          -> l
//	Max (S a) (S b)  -> S (Max a b)
//	IMax l 0         -> 0
//	IMax 0 l         -> l
//	IMax l l         -> l
//
// Normalization may allocate fresh nodes. When the store is full, the partially
// normalized handle seen so far is kept; NormEq then degrades to a comparison
// that is still sound (it never equates levels Eq would distinguish incorrectly)
// but may miss equalities the laws would have found.

// Normalize rewrites id by the simplification laws and returns the normal
// handle. It returns id unchanged when no law applies.
func (s *Store) Normalize(id LevelId) LevelId {
	n := s.Get(id)
	switch n.Kind {
	case KindZero, KindParam:
		return id
	case KindSucc:
		a := s.Normalize(n.A)
		if a == n.A {
			return id
		}
		out, ok := s.MkSucc(a)
		if !ok {
			return id
		}
		return out
	case KindMax:
		a, b := s.Normalize(n.A), s.Normalize(n.B)
		if s.Eq(a, b) {
			return a
		}
		if s.Get(a).Kind == KindZero {
			return b
		}
		if s.Get(b).Kind == KindZero {
			return a
		}
		if s.Get(a).Kind == KindSucc && s.Get(b).Kind == KindSucc {
			inner, ok := s.MkMax(s.Get(a).A, s.Get(b).A)
			if ok {
				inner = s.Normalize(inner)
				if out, ok := s.MkSucc(inner); ok {
					return out
				}
			}
			// fall through to rebuilding the Max of the normalized operands
		}
		if a == n.A && b == n.B {
			return id
		}
		out, ok := s.MkMax(a, b)
		if !ok {
			return id
		}
		return out
	case KindIMax:
		a, b := s.Normalize(n.A), s.Normalize(n.B)
		if s.Get(b).Kind == KindZero {
			return Zero
		}
		if s.Get(a).Kind == KindZero {
			return b
		}
		if s.Eq(a, b) {
			return a
		}
		if a == n.A && b == n.B {
			return id
		}
		out, ok := s.MkIMax(a, b)
		if !ok {
			return id
		}
		return out
	}
	return id
}

// NormEq decides level equality up to the simplification laws: both sides are
// normalized, then compared structurally.
func (s *Store) NormEq(a, b LevelId) bool {
	if a == b {
		return true
	}
	return s.Eq(s.Normalize(a), s.Normalize(b))
}
