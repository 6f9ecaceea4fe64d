// Package embed is the host-facing surface of the kernel. A Session bundles
// one set of fixed-capacity stores with a checker and a global environment;
// hosts that want parallel verification of independent documents create one
// Session per worker, since nothing inside a session is synchronized.
package embed

import (
	"errors"

	"github.com/funvibe/minitt/internal/config"
	"github.com/funvibe/minitt/internal/elaborator"
	"github.com/funvibe/minitt/internal/kernel"
	"github.com/funvibe/minitt/internal/prettyprinter"
	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/universe"
)

// Limits re-exports the capacity configuration for hosts.
type Limits = config.Limits

// DefaultLimits returns the compiled-in capacities.
func DefaultLimits() Limits { return config.DefaultLimits() }

// Session owns the stores, context and environment of one verification
// session. Memory is allocated up front from the limits and never grows;
// Reset reclaims everything in bulk between independent documents.
type Session struct {
	elab *elaborator.Elaborator
}

// ErrLimits reports limits no session can be built with.
var ErrLimits = errors.New("embed: limits too small to build the kernel stores")

// NewSession allocates a session. Limits outside what Validate accepts, or an
// arena the stores do not fit in, yield ErrLimits.
func NewSession(limits Limits) (*Session, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	elab := elaborator.New(limits)
	if elab == nil {
		return nil, ErrLimits
	}
	return &Session{elab: elab}, nil
}

// Terms exposes the session's term store for building terms bottom-up.
func (s *Session) Terms() *term.Store { return s.elab.Terms }

// Levels exposes the session's universe-level store.
func (s *Session) Levels() *universe.Store { return s.elab.Levels }

// Symbols exposes the session's name interner.
func (s *Session) Symbols() *symbols.Table { return s.elab.Symbols }

// Env exposes the session's global environment. Hosts registering
// declarations directly are trusted to have checked them.
func (s *Session) Env() *kernel.Environment { return s.elab.Env }

// Checker exposes the underlying checker for hosts that need Conv or SortOf
// directly.
func (s *Session) Checker() *kernel.Checker { return s.elab.Checker }

// Infer computes the type of a term built into the session's stores.
func (s *Session) Infer(t term.TermId) (term.TermId, *kernel.TypeError) {
	return s.elab.Checker.Infer(t)
}

// Check verifies a term against an expected type.
func (s *Session) Check(t, expected term.TermId) *kernel.TypeError {
	return s.elab.Checker.Check(t, expected)
}

// Print renders a term handle for host-visible diagnostics.
func (s *Session) Print(t term.TermId) string {
	return prettyprinter.New(s.elab.Terms, s.elab.Levels, s.elab.Symbols).Print(t)
}

// Reset truncates every store to its reserved prefix and clears the context
// and environment. Handles obtained before the reset are invalid afterwards.
func (s *Session) Reset() { s.elab.Reset() }
