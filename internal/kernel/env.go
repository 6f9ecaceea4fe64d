package kernel

import (
	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
)

// Decl is a global declaration: a closed type, and a closed defining value for
// definitions (NoTerm for axioms).
type Decl struct {
	Ty    term.TermId
	Value term.TermId
}

// Environment is the fixed-capacity global name → declaration table consulted
// by Infer on constants and by Conv when unfolding definitions. The kernel
// trusts declarations registered here: Register is the point where a host must
// have already checked what it adds (the elaborator does so for `def`).
type Environment struct {
	decls map[symbols.SymbolId]Decl
	cap   int
}

// NewEnvironment creates an environment bounded at capacity declarations.
func NewEnvironment(capacity int) *Environment {
	if capacity < 0 {
		capacity = 0
	}
	return &Environment{decls: make(map[symbols.SymbolId]Decl, capacity), cap: capacity}
}

// Register adds a declaration. It fails when the environment is full or the
// name is already declared; redefinition is never allowed.
func (e *Environment) Register(name symbols.SymbolId, ty, value term.TermId) bool {
	if !name.IsValid() {
		return false
	}
	if _, dup := e.decls[name]; dup {
		return false
	}
	if len(e.decls) >= e.cap {
		return false
	}
	e.decls[name] = Decl{Ty: ty, Value: value}
	return true
}

// Lookup resolves a constant name.
func (e *Environment) Lookup(name symbols.SymbolId) (Decl, bool) {
	d, ok := e.decls[name]
	return d, ok
}

// Len reports how many declarations are registered.
func (e *Environment) Len() int { return len(e.decls) }

// Reset forgets every declaration.
func (e *Environment) Reset() {
	e.decls = make(map[symbols.SymbolId]Decl, e.cap)
}
