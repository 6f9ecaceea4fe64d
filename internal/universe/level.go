package universe

import (
	"github.com/funvibe/minitt/internal/arena"
	"github.com/funvibe/minitt/internal/symbols"
)

// LevelId identifies a universe-level node in a Store.
type LevelId uint32

// NoLevel marks the absence of a level reference.
const NoLevel LevelId = ^LevelId(0)

// IsValid reports whether the handle refers to an allocated level.
func (id LevelId) IsValid() bool { return id != NoLevel }

type LevelKind uint8

const (
	KindZero LevelKind = iota
	KindSucc
	KindMax
	KindIMax
	KindParam
)

// Level is one node of the universe-level hierarchy. A and B reference operand
// nodes for Succ (A only), Max and IMax; Name carries the symbol of a Param.
type Level struct {
	Kind LevelKind
	A    LevelId
	B    LevelId
	Name symbols.SymbolId
}

// Reserved handles, pre-allocated so Prop/Type₀-style base sorts never need a
// fresh allocation.
const (
	Zero LevelId = 0 // the level 0
	One  LevelId = 1 // Succ(Zero)
)

const reservedLevels = 2

// Store is a fixed-capacity, append-only table of level nodes. A node can only
// reference nodes allocated before it, so recursive traversal cannot cycle.
type Store struct {
	nodes []Level
	len   int
}

// NewStore allocates a level store of the given capacity out of a. The two
// reserved handles occupy the first slots; capacity below that fails.
func NewStore(a *arena.Arena, capacity int) (*Store, bool) {
	if capacity < reservedLevels {
		return nil, false
	}
	nodes, ok := arena.AllocSlice[Level](a, capacity)
	if !ok {
		return nil, false
	}
	s := &Store{nodes: nodes}
	s.nodes[Zero] = Level{Kind: KindZero, A: NoLevel, B: NoLevel, Name: symbols.NoSymbol}
	s.nodes[One] = Level{Kind: KindSucc, A: Zero, B: NoLevel, Name: symbols.NoSymbol}
	s.len = reservedLevels
	return s, true
}

func (s *Store) push(n Level) (LevelId, bool) {
	if s.len >= len(s.nodes) {
		return NoLevel, false
	}
	id := LevelId(s.len)
	s.nodes[s.len] = n
	s.len++
	return id, true
}

// MkSucc appends Succ(a).
func (s *Store) MkSucc(a LevelId) (LevelId, bool) {
	if a == Zero {
		return One, true
	}
	return s.push(Level{Kind: KindSucc, A: a, B: NoLevel, Name: symbols.NoSymbol})
}

// MkMax appends Max(a, b).
func (s *Store) MkMax(a, b LevelId) (LevelId, bool) {
	return s.push(Level{Kind: KindMax, A: a, B: b, Name: symbols.NoSymbol})
}

// MkIMax appends IMax(a, b).
func (s *Store) MkIMax(a, b LevelId) (LevelId, bool) {
	return s.push(Level{Kind: KindIMax, A: a, B: b, Name: symbols.NoSymbol})
}

// MkParam appends a level parameter named by sym.
func (s *Store) MkParam(sym symbols.SymbolId) (LevelId, bool) {
	return s.push(Level{Kind: KindParam, A: NoLevel, B: NoLevel, Name: sym})
}

// Get returns the node for id. Invalid handles return a KindZero node; callers
// that can receive untrusted handles should check id against Len first.
func (s *Store) Get(id LevelId) Level {
	if !id.IsValid() || int(id) >= s.len {
		return Level{Kind: KindZero, A: NoLevel, B: NoLevel, Name: symbols.NoSymbol}
	}
	return s.nodes[id]
}

// Len reports how many nodes are allocated, reserved prefix included.
func (s *Store) Len() int { return s.len }

// Reset truncates back to the two reserved handles and zeroes the rest.
func (s *Store) Reset() {
	for i := reservedLevels; i < s.len; i++ {
		s.nodes[i] = Level{}
	}
	s.len = reservedLevels
}

// Eq decides structural equality of two levels: equal handles outright, or the
// same kind with recursively equal operands. Purely structural after
// dereference; the simplification laws live in NormEq.
func (s *Store) Eq(a, b LevelId) bool {
	if a == b {
		return true
	}
	na, nb := s.Get(a), s.Get(b)
	if na.Kind != nb.Kind {
		return false
	}
	switch na.Kind {
	case KindZero:
		return true
	case KindSucc:
		return s.Eq(na.A, nb.A)
	case KindMax, KindIMax:
		return s.Eq(na.A, nb.A) && s.Eq(na.B, nb.B)
	case KindParam:
		return na.Name == nb.Name
	}
	return false
}
