/*
Package edit builds the two-factor weighted edit-distance transducer of
spec §4.5: a left factor E_i that tags each reference token as matched,
deleted or substituted (at half the configured cost) or admits an insertion
on no input at all, and a right factor E_o — the inversion of E_i, with the
<insert>/<delete> markers swapped — that offers the same tags back onto the
hypothesis side, plus a zero-cost auxiliary extension letting an auxiliary
(GLM/hyphen-variant) hypothesis token match a plain reference token for
free.

Grounded on `lr/tables.go`'s automaton-construction style (explicit
state/arc builders over a shared alphabet) — the edit-tagging construction
itself has no parser-table analogue and is built directly from spec §4.5.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package edit

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/asrscore/asrscore"
	"github.com/asrscore/asrscore/fst"
	"github.com/asrscore/asrscore/internal/config"
	"github.com/asrscore/asrscore/internal/trace"
	"github.com/asrscore/asrscore/symtab"
)

func tracer() tracing.Trace {
	return trace.For("asrscore.edit")
}

// Reserved marker symbols added to the symbol table for the edit-label
// intermediate tape that connects E_i and E_o (spec §4.5/§4.6).
const (
	DeleteMarker     = "<delete>"
	SubstituteMarker = "<substitute>"
	InsertMarker     = "<insert>"
)

// Transducer is the compiled pair (E_i, E_o) of a vocabulary and cost model.
type Transducer struct {
	Ei, Eo                  *fst.Fst
	delID, subID, insID     int32
	costs                   config.Costs
}

// Build compiles the two-factor edit transducer over vocab (spec's Σ, the
// plain-token vocabulary derived in align) at the given per-edit costs, with
// an optional bound on the number of non-match edits a single alignment may
// use (0 = unbounded). Marker symbols are added to tab if not already
// present.
func Build(tab *symtab.Table, vocab []string, costs config.Costs, bound int) *Transducer {
	delID := tab.AddSymbol(DeleteMarker)
	subID := tab.AddSymbol(SubstituteMarker)
	insID := tab.AddSymbol(InsertMarker)

	ids := make([]int32, len(vocab))
	for i, v := range vocab {
		ids[i] = tab.AddSymbol(v)
	}

	numStates := bound + 1
	if bound <= 0 {
		numStates = 1
	}

	ei := fst.New(tab)
	states := make([]int, numStates)
	for i := range states {
		states[i] = ei.AddState()
		ei.SetFinal(states[i], 0)
	}
	ei.SetStart(states[0])
	for k, s := range states {
		for _, id := range ids {
			ei.AddArc(s, id, id, 0, s) // match: free, never consumes budget
		}
		if bound > 0 && k == numStates-1 {
			continue // budget exhausted: only match arcs remain
		}
		next := states[0]
		if bound > 0 {
			next = states[k+1]
		}
		for _, id := range ids {
			ei.AddArc(s, id, delID, costs.Delete/2, next)
			ei.AddArc(s, id, subID, costs.Substitute/2, next)
		}
		ei.AddArc(s, symtab.Epsilon, insID, costs.Insert/2, next)
	}

	eo := fst.Invert(tab, ei)
	swap := map[int32]int32{delID: insID, insID: delID}
	eo = fst.Relabel(tab, eo, swap, nil)

	// Auxiliary extension (spec §4.5): at every state, admit a zero-cost
	// plain-token-in, auxiliary-token-out arc, letting the hypothesis side
	// use a tagged/hyphen-joined surface form in place of the literal token
	// without it counting as a substitution.
	for _, s := range states {
		for _, v := range vocab {
			eo.AddArc(s, tab.MustFind(v), tab.AddSymbol(symtab.Aux(v)), 0, s)
		}
	}

	return &Transducer{Ei: ei, Eo: eo, delID: delID, subID: subID, insID: insID, costs: costs}
}

// Weight aliases asrscore.Weight for callers that only import this package.
type Weight = asrscore.Weight
