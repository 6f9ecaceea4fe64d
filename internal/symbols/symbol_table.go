package symbols

// SymbolId identifies an interned name in a Table.
type SymbolId uint32

// NoSymbol marks the absence of a name (anonymous binders).
const NoSymbol SymbolId = ^SymbolId(0)

// IsValid reports whether the handle refers to an interned name.
func (id SymbolId) IsValid() bool { return id != NoSymbol }

// Table interns short identifiers (binder names, constant names) into SymbolId
// handles. Capacity is fixed at construction; interning past it fails rather
// than growing, so worst-case memory stays predictable.
type Table struct {
	names []string
	index map[string]SymbolId
	cap   int
}

// NewTable creates a table that can hold at most capacity distinct names.
func NewTable(capacity int) *Table {
	if capacity < 0 {
		capacity = 0
	}
	return &Table{
		names: make([]string, 0, capacity),
		index: make(map[string]SymbolId, capacity),
		cap:   capacity,
	}
}

// Intern returns the handle for name, allocating one if it is new. The second
// result is false when the table is full and name is not already present.
func (t *Table) Intern(name string) (SymbolId, bool) {
	if id, ok := t.index[name]; ok {
		return id, true
	}
	if len(t.names) >= t.cap {
		return NoSymbol, false
	}
	id := SymbolId(len(t.names))
	t.names = append(t.names, name)
	t.index[name] = id
	return id, true
}

// Lookup returns the handle for name without interning it.
func (t *Table) Lookup(name string) (SymbolId, bool) {
	id, ok := t.index[name]
	return id, ok
}

// Name resolves a handle back to its string. The sentinel and out-of-range
// handles resolve to "_".
func (t *Table) Name(id SymbolId) string {
	if !id.IsValid() || int(id) >= len(t.names) {
		return "_"
	}
	return t.names[id]
}

// Len reports how many names are interned.
func (t *Table) Len() int { return len(t.names) }

// Reset forgets every interned name. Handles from before the reset must not be
// used afterwards.
func (t *Table) Reset() {
	t.names = t.names[:0]
	t.index = make(map[string]SymbolId, t.cap)
}
