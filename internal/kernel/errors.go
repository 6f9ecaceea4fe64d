package kernel

import (
	"fmt"

	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
)

type ErrorCode int

const (
	TypeMismatch ErrorCode = iota
	VarOutOfScope
	ExpectedPi
	ExpectedSort
	UnknownConst
	ContextOverflow
	StoreOverflow
)

func (c ErrorCode) String() string {
	switch c {
	case TypeMismatch:
		return "TypeMismatch"
	case VarOutOfScope:
		return "VarOutOfScope"
	case ExpectedPi:
		return "ExpectedPi"
	case ExpectedSort:
		return "ExpectedSort"
	case UnknownConst:
		return "UnknownConst"
	case ContextOverflow:
		return "ContextOverflow"
	case StoreOverflow:
		return "StoreOverflow"
	}
	return "Unknown"
}

// TypeError is the checker's only failure value. Every fallible kernel
// operation returns one or nil; nothing in this package panics on a checking
// path.
type TypeError struct {
	Code     ErrorCode
	Term     term.TermId // the term being judged, when there is one
	Expected term.TermId
	Actual   term.TermId
	Index    uint32 // offending de Bruijn index for VarOutOfScope
	Depth    int
	Name     symbols.SymbolId // offending constant for UnknownConst
}

func (e *TypeError) Error() string {
	switch e.Code {
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: term #%d has type #%d, expected #%d", e.Term, e.Actual, e.Expected)
	case VarOutOfScope:
		return fmt.Sprintf("variable out of scope: index %d exceeds context depth %d", e.Index, e.Depth)
	case ExpectedPi:
		return fmt.Sprintf("expected a function type: term #%d has type #%d, which is not a pi", e.Term, e.Actual)
	case ExpectedSort:
		return fmt.Sprintf("expected a sort: term #%d has type #%d, which is not a sort", e.Term, e.Actual)
	case UnknownConst:
		return fmt.Sprintf("unknown constant: symbol #%d is not in the environment", e.Name)
	case ContextOverflow:
		return fmt.Sprintf("typing context overflow at depth %d", e.Depth)
	case StoreOverflow:
		return "term or level store exhausted during checking"
	}
	return "unknown kernel error"
}

func NewTypeMismatch(t, expected, actual term.TermId) *TypeError {
	return &TypeError{Code: TypeMismatch, Term: t, Expected: expected, Actual: actual}
}

func NewVarOutOfScope(index uint32, depth int) *TypeError {
	return &TypeError{Code: VarOutOfScope, Index: index, Depth: depth}
}

func NewExpectedPi(t, actual term.TermId) *TypeError {
	return &TypeError{Code: ExpectedPi, Term: t, Actual: actual}
}

func NewExpectedSort(t, actual term.TermId) *TypeError {
	return &TypeError{Code: ExpectedSort, Term: t, Actual: actual}
}

func NewUnknownConst(name symbols.SymbolId) *TypeError {
	return &TypeError{Code: UnknownConst, Name: name}
}

func NewContextOverflow(depth int) *TypeError {
	return &TypeError{Code: ContextOverflow, Depth: depth}
}

func NewStoreOverflow() *TypeError {
	return &TypeError{Code: StoreOverflow}
}
