package align

import (
	"fmt"

	"github.com/asrscore/asrscore"
	"github.com/asrscore/asrscore/edit"
	"github.com/asrscore/asrscore/fst"
	"github.com/asrscore/asrscore/glm"
	"github.com/asrscore/asrscore/internal/config"
	"github.com/asrscore/asrscore/symtab"
	"github.com/asrscore/asrscore/tokenize"
)

// Aligner holds the immutable, shared-by-reference components needed to
// align one utterance (spec §5: "SymbolTable, GLM tagger and EditTransducer
// are treated as immutable and shared by read-only reference").
type Aligner struct {
	tab    *symtab.Table
	table  *glm.Table
	tagger *glm.Tagger
	edit   *edit.Transducer
	mode   tokenize.Mode
}

// New builds an Aligner over an already-compiled symbol table, GLM table,
// tagger and edit transducer.
func New(tab *symtab.Table, table *glm.Table, tagger *glm.Tagger, tr *edit.Transducer, mode tokenize.Mode) *Aligner {
	return &Aligner{tab: tab, table: table, tagger: tagger, edit: tr, mode: mode}
}

// Align runs spec §4.6's steps 1-5 for one utterance: build ref_fst and the
// tagged/expanded hyp_fst, compose the lattice, extract the shortest path,
// and classify each arc into an Alignment. Returns an error if the composed
// lattice is empty (spec §7: fatal).
func (a *Aligner) Align(refText, hypText string) (asrscore.Alignment, asrscore.Weight, error) {
	refToks := tokenize.Tokenize(refText, a.mode)
	refIDs := make([]int32, len(refToks))
	for i, t := range refToks {
		refIDs[i] = a.tab.MustFind(t)
	}
	refFst := fst.Acceptor(a.tab, refIDs)

	hypToks := tokenize.Tokenize(hypText, a.mode)
	tagged, err := a.tagger.Tag(hypToks)
	if err != nil {
		return nil, 0, fmt.Errorf("align: tagging hypothesis: %w", err)
	}
	hypFst := expandSausage(a.tab, a.table, a.mode, tagged)

	left, err := fst.Compose(refFst, a.edit.Ei)
	if err != nil {
		return nil, 0, fmt.Errorf("align: composing ref with left factor: %w", err)
	}
	right, err := fst.Compose(a.edit.Eo, hypFst)
	if err != nil {
		return nil, 0, fmt.Errorf("align: composing right factor with hypothesis: %w", err)
	}
	lattice, err := fst.Compose(left, right)
	if err != nil {
		return nil, 0, fmt.Errorf("align: composing lattice: %w", err)
	}
	if fst.IsEmpty(lattice) {
		if config.PanicOnEmptyLatticeEnabled() {
			panic("align: empty composition lattice")
		}
		return nil, 0, fmt.Errorf("align: empty composition lattice (vocabulary/tagger mismatch)")
	}

	path, cost, err := fst.ShortestPath(lattice)
	if err != nil {
		return nil, 0, fmt.Errorf("align: extracting shortest path: %w", err)
	}

	alignment := make(asrscore.Alignment, 0, len(path))
	for _, arc := range path {
		if op, ok := classify(a.tab, arc); ok {
			alignment = append(alignment, op)
		}
	}
	return alignment, cost, nil
}

// classify implements spec §4.6 step 5: an arc's (ilabel, olabel) pair
// determines its edit tag, with symbol equality taken modulo one trailing
// '#'. Both-epsilon arcs (the hypothesis sausage's union and concatenation
// epsilon arcs, which carry no token) are dropped.
func classify(tab *symtab.Table, arc fst.Arc) (asrscore.AlignOp, bool) {
	switch {
	case arc.ILabel != symtab.Epsilon && arc.OLabel != symtab.Epsilon:
		ref, hyp := tab.Symbol(arc.ILabel), tab.Symbol(arc.OLabel)
		tag := asrscore.Substitute
		if symtab.StripAux(ref) == symtab.StripAux(hyp) {
			tag = asrscore.Correct
		}
		return asrscore.AlignOp{Tag: tag, RefSurface: ref, HypSurface: hyp}, true
	case arc.ILabel == symtab.Epsilon && arc.OLabel != symtab.Epsilon:
		return asrscore.AlignOp{Tag: asrscore.Insert, RefSurface: "*", HypSurface: tab.Symbol(arc.OLabel)}, true
	case arc.ILabel != symtab.Epsilon && arc.OLabel == symtab.Epsilon:
		return asrscore.AlignOp{Tag: asrscore.Delete, RefSurface: tab.Symbol(arc.ILabel), HypSurface: "*"}, true
	default:
		return asrscore.AlignOp{}, false
	}
}
