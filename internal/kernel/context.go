package kernel

import (
	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
)

// ContextEntry is one binding of the typing context. Value is NoTerm for
// ordinary (lambda/pi) bindings and a real handle for let bindings.
type ContextEntry struct {
	Name  symbols.SymbolId
	Ty    term.TermId
	Value term.TermId
}

// Context is the bounded stack of bindings the checker traverses binders with.
// Stack position corresponds to de Bruijn depth: the most recently pushed
// entry is index 0. Pushes past the fixed capacity fail with ContextOverflow.
type Context struct {
	entries []ContextEntry
	cap     int
}

// NewContext creates a context bounded at capacity entries.
func NewContext(capacity int) *Context {
	if capacity < 0 {
		capacity = 0
	}
	return &Context{entries: make([]ContextEntry, 0, capacity), cap: capacity}
}

// Extend pushes an ordinary binding.
func (c *Context) Extend(name symbols.SymbolId, ty term.TermId) *TypeError {
	if len(c.entries) >= c.cap {
		return NewContextOverflow(len(c.entries))
	}
	c.entries = append(c.entries, ContextEntry{Name: name, Ty: ty, Value: term.NoTerm})
	return nil
}

// Define pushes a let binding carrying its value.
func (c *Context) Define(name symbols.SymbolId, ty, val term.TermId) *TypeError {
	if len(c.entries) >= c.cap {
		return NewContextOverflow(len(c.entries))
	}
	c.entries = append(c.entries, ContextEntry{Name: name, Ty: ty, Value: val})
	return nil
}

// GetType resolves a de Bruijn index to the type it was bound with. The type
// is expressed at its binding depth; callers wanting it at the current depth
// must shift it up by idx+1.
func (c *Context) GetType(idx uint32) (term.TermId, *TypeError) {
	if int(idx) >= len(c.entries) {
		return term.NoTerm, NewVarOutOfScope(idx, len(c.entries))
	}
	return c.entries[len(c.entries)-1-int(idx)].Ty, nil
}

// GetValue resolves a let-bound value, if the binding at idx has one. Like
// GetType, the value is expressed at its binding depth.
func (c *Context) GetValue(idx uint32) (term.TermId, bool) {
	if int(idx) >= len(c.entries) {
		return term.NoTerm, false
	}
	v := c.entries[len(c.entries)-1-int(idx)].Value
	return v, v.IsValid()
}

// Entry returns the binding at idx.
func (c *Context) Entry(idx uint32) (ContextEntry, bool) {
	if int(idx) >= len(c.entries) {
		return ContextEntry{}, false
	}
	return c.entries[len(c.entries)-1-int(idx)], true
}

// Pop removes the most recent binding. Popping an empty context is a no-op.
func (c *Context) Pop() {
	if len(c.entries) > 0 {
		c.entries = c.entries[:len(c.entries)-1]
	}
}

// Depth reports the current number of bindings.
func (c *Context) Depth() int { return len(c.entries) }

// Cap reports the fixed depth bound.
func (c *Context) Cap() int { return c.cap }

// Reset clears the context to depth 0.
func (c *Context) Reset() { c.entries = c.entries[:0] }
