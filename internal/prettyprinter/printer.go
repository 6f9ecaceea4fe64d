package prettyprinter

import (
	"fmt"
	"strings"

	"github.com/funvibe/minitt/internal/symbols"
	"github.com/funvibe/minitt/internal/term"
	"github.com/funvibe/minitt/internal/universe"
)

// Printer renders store handles back to surface syntax. It is display-only:
// output is for diagnostics and `infer` results, never parsed back by the
// kernel.
type Printer struct {
	terms   *term.Store
	levels  *universe.Store
	symbols *symbols.Table
}

func New(terms *term.Store, levels *universe.Store, syms *symbols.Table) *Printer {
	return &Printer{terms: terms, levels: levels, symbols: syms}
}

// Print renders a closed term. Free variables print as #index.
func (p *Printer) Print(id term.TermId) string {
	var sb strings.Builder
	p.printTerm(&sb, id, nil, false)
	return sb.String()
}

// printTerm renders id under the binder-name stack names (innermost last).
// atomPos requests parentheses around non-atomic output.
func (p *Printer) printTerm(sb *strings.Builder, id term.TermId, names []string, atomPos bool) {
	n := p.terms.Get(id)
	switch n.Kind {
	case term.KindSort:
		p.printSort(sb, n.Level)
	case term.KindVar:
		idx := int(n.Index)
		if idx < len(names) {
			sb.WriteString(names[len(names)-1-idx])
		} else {
			fmt.Fprintf(sb, "#%d", n.Index)
		}
	case term.KindConst:
		sb.WriteString(p.symbols.Name(n.Name))
	case term.KindMeta:
		fmt.Fprintf(sb, "?m%d", n.Meta)
	case term.KindApp:
		if atomPos {
			sb.WriteString("(")
		}
		p.printTerm(sb, n.Fn, names, !isApp(p.terms.Get(n.Fn).Kind))
		sb.WriteString(" ")
		p.printTerm(sb, n.Arg, names, true)
		if atomPos {
			sb.WriteString(")")
		}
	case term.KindLam:
		if atomPos {
			sb.WriteString("(")
		}
		name := p.freshName(n.Name, names)
		sb.WriteString("fun (")
		sb.WriteString(name)
		sb.WriteString(" : ")
		p.printTerm(sb, n.Ty, names, false)
		sb.WriteString(") => ")
		p.printTerm(sb, n.Body, append(names, name), false)
		if atomPos {
			sb.WriteString(")")
		}
	case term.KindPi:
		if atomPos {
			sb.WriteString("(")
		}
		if !n.Name.IsValid() && !p.usesVar(n.Body, 0) {
			// non-dependent: arrow sugar
			p.printTerm(sb, n.Ty, names, true)
			sb.WriteString(" -> ")
			p.printTerm(sb, n.Body, append(names, "_"), false)
		} else {
			name := p.freshName(n.Name, names)
			sb.WriteString("pi (")
			sb.WriteString(name)
			sb.WriteString(" : ")
			p.printTerm(sb, n.Ty, names, false)
			sb.WriteString(") -> ")
			p.printTerm(sb, n.Body, append(names, name), false)
		}
		if atomPos {
			sb.WriteString(")")
		}
	case term.KindLet:
		if atomPos {
			sb.WriteString("(")
		}
		name := p.freshName(n.Name, names)
		sb.WriteString("let ")
		sb.WriteString(name)
		sb.WriteString(" : ")
		p.printTerm(sb, n.Ty, names, false)
		sb.WriteString(" := ")
		p.printTerm(sb, n.Val, names, false)
		sb.WriteString(" in ")
		p.printTerm(sb, n.Body, append(names, name), false)
		if atomPos {
			sb.WriteString(")")
		}
	}
}

func isApp(k term.TermKind) bool { return k == term.KindApp }

func (p *Printer) printSort(sb *strings.Builder, l universe.LevelId) {
	if num, ok := p.levelNumeral(l); ok {
		switch num {
		case 1:
			sb.WriteString("Type")
		default:
			fmt.Fprintf(sb, "Sort %d", num)
		}
		return
	}
	sb.WriteString("Sort ")
	p.printLevel(sb, l)
}

// levelNumeral reports the level as a plain number when it is a ground chain
// of successors.
func (p *Printer) levelNumeral(l universe.LevelId) (int, bool) {
	n := 0
	for {
		node := p.levels.Get(l)
		switch node.Kind {
		case universe.KindZero:
			return n, true
		case universe.KindSucc:
			n++
			l = node.A
		default:
			return 0, false
		}
	}
}

func (p *Printer) printLevel(sb *strings.Builder, l universe.LevelId) {
	n := p.levels.Get(l)
	switch n.Kind {
	case universe.KindZero:
		sb.WriteString("0")
	case universe.KindSucc:
		if num, ok := p.levelNumeral(l); ok {
			fmt.Fprintf(sb, "%d", num)
			return
		}
		sb.WriteString("succ(")
		p.printLevel(sb, n.A)
		sb.WriteString(")")
	case universe.KindMax, universe.KindIMax:
		if n.Kind == universe.KindIMax {
			sb.WriteString("imax(")
		} else {
			sb.WriteString("max(")
		}
		p.printLevel(sb, n.A)
		sb.WriteString(", ")
		p.printLevel(sb, n.B)
		sb.WriteString(")")
	case universe.KindParam:
		sb.WriteString(p.symbols.Name(n.Name))
	}
}

// freshName picks a printable binder name that does not collide with any name
// already in scope. Anonymous binders get "x" as a base.
func (p *Printer) freshName(sym symbols.SymbolId, names []string) string {
	base := "x"
	if sym.IsValid() {
		base = p.symbols.Name(sym)
	}
	name := base
	for contains(names, name) {
		name += "'"
	}
	return name
}

func contains(names []string, s string) bool {
	for _, n := range names {
		if n == s {
			return true
		}
	}
	return false
}

// usesVar reports whether the variable bound at depth occurs in t.
func (p *Printer) usesVar(t term.TermId, depth uint32) bool {
	n := p.terms.Get(t)
	switch n.Kind {
	case term.KindVar:
		return n.Index == depth
	case term.KindApp:
		return p.usesVar(n.Fn, depth) || p.usesVar(n.Arg, depth)
	case term.KindLam, term.KindPi:
		return p.usesVar(n.Ty, depth) || p.usesVar(n.Body, depth+1)
	case term.KindLet:
		return p.usesVar(n.Ty, depth) || p.usesVar(n.Val, depth) || p.usesVar(n.Body, depth+1)
	}
	return false
}
