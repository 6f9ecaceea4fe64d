package term

import (
	"github.com/funvibe/minitt/internal/arena"
	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/universe"
)

// TermId identifies a term node in a Store.
type TermId uint32

// NoTerm marks the absence of a term reference (anonymous let values, absent
// definitions).
const NoTerm TermId = ^TermId(0)

// IsValid reports whether the handle refers to an allocated term.
func (id TermId) IsValid() bool { return id != NoTerm }

type TermKind uint8

const (
	KindSort TermKind = iota
	KindVar
	KindConst
	KindApp
	KindLam
	KindPi
	KindLet
	KindMeta
)

// Term is one node of the term graph. The payload fields used depend on Kind:
//
//	Sort   Level
//	Var    Index (de Bruijn)
//	Const  Name
//	App    Fn, Arg
//	Lam/Pi Name, Ty, Body (Body has one extra bound variable at index 0)
//	Let    Name, Ty, Val, Body
//	Meta   Meta
//
// Unused handle fields hold their sentinel. The flat layout keeps nodes
// copyable values inside a fixed arena-backed slice.
type Term struct {
	Kind  TermKind
	Level universe.LevelId
	Index uint32
	Name  symbols.SymbolId
	Fn    TermId
	Arg   TermId
	Ty    TermId
	Val   TermId
	Body  TermId
	Meta  uint32
}

// Store is a fixed-capacity, append-only table of terms. Nodes reference only
// earlier handles, so the graph is acyclic by construction.
type Store struct {
	nodes []Term
	len   int
}

// NewStore allocates a term store of the given capacity out of a.
func NewStore(a *arena.Arena, capacity int) (*Store, bool) {
	if capacity <= 0 {
		return nil, false
	}
	nodes, ok := arena.AllocSlice[Term](a, capacity)
	if !ok {
		return nil, false
	}
	return &Store{nodes: nodes}, true
}

func blank(kind TermKind) Term {
	return Term{
		Kind:  kind,
		Level: universe.NoLevel,
		Name:  symbols.NoSymbol,
		Fn:    NoTerm,
		Arg:   NoTerm,
		Ty:    NoTerm,
		Val:   NoTerm,
		Body:  NoTerm,
	}
}

func (s *Store) push(n Term) (TermId, bool) {
	if s.len >= len(s.nodes) {
		return NoTerm, false
	}
	id := TermId(s.len)
	s.nodes[s.len] = n
	s.len++
	return id, true
}

// MkSort appends Sort(l).
func (s *Store) MkSort(l universe.LevelId) (TermId, bool) {
	n := blank(KindSort)
	n.Level = l
	return s.push(n)
}

// MkVar appends a bound variable with the given de Bruijn index.
func (s *Store) MkVar(index uint32) (TermId, bool) {
	n := blank(KindVar)
	n.Index = index
	return s.push(n)
}

// MkConst appends a reference to the global constant named by sym.
func (s *Store) MkConst(sym symbols.SymbolId) (TermId, bool) {
	n := blank(KindConst)
	n.Name = sym
	return s.push(n)
}

// MkApp appends the application of fn to arg.
func (s *Store) MkApp(fn, arg TermId) (TermId, bool) {
	n := blank(KindApp)
	n.Fn = fn
	n.Arg = arg
	return s.push(n)
}

// MkLam appends a lambda binder.
func (s *Store) MkLam(name symbols.SymbolId, ty, body TermId) (TermId, bool) {
	n := blank(KindLam)
	n.Name = name
	n.Ty = ty
	n.Body = body
	return s.push(n)
}

// MkPi appends a dependent function type.
func (s *Store) MkPi(name symbols.SymbolId, ty, body TermId) (TermId, bool) {
	n := blank(KindPi)
	n.Name = name
	n.Ty = ty
	n.Body = body
	return s.push(n)
}

// MkLet appends a let binding.
func (s *Store) MkLet(name symbols.SymbolId, ty, val, body TermId) (TermId, bool) {
	n := blank(KindLet)
	n.Name = name
	n.Ty = ty
	n.Val = val
	n.Body = body
	return s.push(n)
}

// MkMeta appends a metavariable with an opaque identifier.
func (s *Store) MkMeta(id uint32) (TermId, bool) {
	n := blank(KindMeta)
	n.Meta = id
	return s.push(n)
}

// Get returns the node for id. Invalid handles return a Meta node with id 0;
// callers that can receive untrusted handles should check against Len first.
func (s *Store) Get(id TermId) Term {
	if !id.IsValid() || int(id) >= s.len {
		return blank(KindMeta)
	}
	return s.nodes[id]
}

// Len reports how many nodes are allocated.
func (s *Store) Len() int { return s.len }

// Cap reports the fixed capacity.
func (s *Store) Cap() int { return len(s.nodes) }

// Reset truncates the store to empty and zeroes the freed region.
func (s *Store) Reset() {
	for i := 0; i < s.len; i++ {
		s.nodes[i] = Term{}
	}
	s.len = 0
}
