package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/minitt/internal/kernel"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/universe"
)

func TestNewSessionRejectsBadLimits(t *testing.T) {
	_, err := NewSession(Limits{})
	require.Error(t, err)

	bad := DefaultLimits()
	bad.Levels = 1 // below the reserved prefix
	_, err = NewSession(bad)
	require.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	s, err := NewSession(DefaultLimits())
	require.NoError(t, err)

	// axiom Nat : Type, axiom zero : Nat, built through the exposed stores
	natSym, ok := s.Symbols().Intern("Nat")
	require.True(t, ok)
	zeroSym, ok := s.Symbols().Intern("zero")
	require.True(t, ok)

	type0, ok := s.Terms().MkSort(universe.One)
	require.True(t, ok)
	nat, ok := s.Terms().MkConst(natSym)
	require.True(t, ok)
	require.True(t, s.Env().Register(natSym, type0, term.NoTerm))
	require.True(t, s.Env().Register(zeroSym, nat, term.NoTerm))

	zero, _ := s.Terms().MkConst(zeroSym)
	ty, kerr := s.Infer(zero)
	require.Nil(t, kerr)
	assert.True(t, s.Checker().Conv(ty, nat))
	assert.Equal(t, "Nat", s.Print(ty))

	assert.Nil(t, s.Check(zero, nat))
	kerr = s.Check(zero, type0)
	require.NotNil(t, kerr)
	assert.Equal(t, kernel.TypeMismatch, kerr.Code)
}

func TestSessionReset(t *testing.T) {
	s, err := NewSession(DefaultLimits())
	require.NoError(t, err)

	sym, _ := s.Symbols().Intern("Nat")
	type0, _ := s.Terms().MkSort(universe.One)
	require.True(t, s.Env().Register(sym, type0, term.NoTerm))

	s.Reset()
	assert.Equal(t, 0, s.Terms().Len())
	assert.Equal(t, 0, s.Symbols().Len())
	assert.Equal(t, 0, s.Env().Len())

	// the session is usable again after a reset
	sym2, ok := s.Symbols().Intern("Nat")
	require.True(t, ok)
	type0, ok = s.Terms().MkSort(universe.One)
	require.True(t, ok)
	assert.True(t, s.Env().Register(sym2, type0, term.NoTerm))
}

func TestSessionsAreIndependent(t *testing.T) {
	a, err := NewSession(DefaultLimits())
	require.NoError(t, err)
	b, err := NewSession(DefaultLimits())
	require.NoError(t, err)

	sym, _ := a.Symbols().Intern("Nat")
	type0, _ := a.Terms().MkSort(universe.One)
	require.True(t, a.Env().Register(sym, type0, term.NoTerm))

	assert.Equal(t, 0, b.Env().Len(), "declarations must not leak across sessions")
	assert.Equal(t, 0, b.Terms().Len())
}
