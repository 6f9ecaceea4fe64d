package universe

import (
	"testing"

	"github.com/funvibe/minitt/internal/symbols"
)

func TestNormEqLaws(t *testing.T) {
	s := newTestStore(t, 256)
	syms := symbols.NewTable(8)
	u, _ := syms.Intern("u")
	v, _ := syms.Intern("v")
	pu, _ := s.MkParam(u)
	pv, _ := s.MkParam(v)

	maxSame, _ := s.MkMax(pu, pu)
	maxZeroL, _ := s.MkMax(Zero, pu)
	maxZeroR, _ := s.MkMax(pu, Zero)
	succU, _ := s.MkSucc(pu)
	succV, _ := s.MkSucc(pv)
	maxSucc, _ := s.MkMax(succU, succV)
	maxUV, _ := s.MkMax(pu, pv)
	succMaxUV, _ := s.MkSucc(maxUV)
	imaxZeroR, _ := s.MkIMax(pu, Zero)
	imaxZeroL, _ := s.MkIMax(Zero, pu)
	imaxSame, _ := s.MkIMax(pu, pu)
	imaxUV, _ := s.MkIMax(pu, pv)

	tests := []struct {
		name string
		a, b LevelId
		want bool
	}{
		{"max l l = l", maxSame, pu, true},
		{"max 0 l = l", maxZeroL, pu, true},
		{"max l 0 = l", maxZeroR, pu, true},
		{"max (S u) (S v) = S (max u v)", maxSucc, succMaxUV, true},
		{"imax l 0 = 0", imaxZeroR, Zero, true},
		{"imax 0 l = l", imaxZeroL, pu, true},
		{"imax l l = l", imaxSame, pu, true},
		{"imax u v stays opaque", imaxUV, pu, false},
		{"max u v is not u", maxUV, pu, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.NormEq(tc.a, tc.b); got != tc.want {
				t.Errorf("NormEq = %v, want %v", got, tc.want)
			}
		})
	}

	// Eq stays purely structural on the same pairs.
	if s.Eq(maxSame, pu) {
		t.Error("Eq(max l l, l) must stay false: Eq is structural only")
	}
	if s.Eq(imaxZeroR, Zero) {
		t.Error("Eq(imax l 0, 0) must stay false: Eq is structural only")
	}
}
