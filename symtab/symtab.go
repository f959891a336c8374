/*
Package symtab implements the symbol table shared by every other asrscore
package: a bijective mapping between token strings and the small dense
integers the fst package's states and arcs are labelled with.

Adapted from `runtime.SymbolTable`'s insert-or-get idiom (over a
map[string]*Tag), generalized from a scoped variable table to a single flat,
immutable-after-construction bijection with a reserved epsilon id, which is
what an FST symbol alphabet needs.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package symtab

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/asrscore/asrscore/internal/trace"
)

func tracer() tracing.Trace {
	return trace.For("asrscore.symtab")
}

// Epsilon is the symbol table's reserved id 0 (spec §3, §4.1).
const Epsilon int32 = 0

// EpsilonSymbol is the reserved id-0 symbol's string form.
const EpsilonSymbol = "<epsilon>"

// Table is a bijection between token strings and ids. Id 0 is always
// "<epsilon>". Re-adding an existing symbol is idempotent (returns the
// existing id).
type Table struct {
	ids  map[string]int32
	syms []string // syms[id] == the string for id
}

// New creates a symbol table pre-seeded with id 0 = epsilon.
func New() *Table {
	t := &Table{
		ids:  make(map[string]int32),
		syms: make([]string, 0, 64),
	}
	t.syms = append(t.syms, EpsilonSymbol)
	t.ids[EpsilonSymbol] = Epsilon
	return t
}

// AddSymbol inserts sym if not already present and returns its id. Re-adding
// an existing symbol returns the same id (spec §3 invariant).
func (t *Table) AddSymbol(sym string) int32 {
	if id, ok := t.ids[sym]; ok {
		return id
	}
	id := int32(len(t.syms))
	t.syms = append(t.syms, sym)
	t.ids[sym] = id
	tracer().Debugf("symtab: added %q -> %d", sym, id)
	return id
}

// AddSymbols inserts every symbol in syms, in order, returning nothing; a
// convenience for bulk vocabulary loading (spec §4.2).
func (t *Table) AddSymbols(syms []string) {
	for _, s := range syms {
		t.AddSymbol(s)
	}
}

// Find looks up the id for a symbol string. Returns (-1, false) if absent.
func (t *Table) Find(sym string) (int32, bool) {
	id, ok := t.ids[sym]
	if !ok {
		return -1, false
	}
	return id, true
}

// MustFind looks up a symbol's id and panics if it is unknown — for call
// sites in the FST kernel that may only ever be handed symbols already
// inserted by construction (spec §7: "the symbol table must cover every
// token produced by tokenization and GLM loading").
func (t *Table) MustFind(sym string) int32 {
	id, ok := t.ids[sym]
	if !ok {
		panic(fmt.Sprintf("symtab: unknown symbol %q", sym))
	}
	return id
}

// Symbol returns the string for an id. Panics on an out-of-range id.
func (t *Table) Symbol(id int32) string {
	if id < 0 || int(id) >= len(t.syms) {
		panic(fmt.Sprintf("symtab: id %d out of range", id))
	}
	return t.syms[id]
}

// Size returns the number of symbols, including epsilon.
func (t *Table) Size() int { return len(t.syms) }

// Each iterates (id, symbol) pairs in id order, starting at 1 (skipping
// epsilon).
func (t *Table) Each(f func(id int32, sym string)) {
	for id := int32(1); int(id) < len(t.syms); id++ {
		f(id, t.syms[id])
	}
}

// Aux returns the auxiliary ("primed") form of a base token, t# (spec §4.1,
// §4.4, §4.5).
func Aux(token string) string { return token + "#" }

// StripAux strips at most one trailing '#' from sym, as required for the
// "symbols equal modulo trailing #" comparisons of spec §4.6.
func StripAux(sym string) string {
	if n := len(sym); n > 0 && sym[n-1] == '#' {
		return sym[:n-1]
	}
	return sym
}
