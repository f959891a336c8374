package fst

import (
	"fmt"

	"github.com/asrscore/asrscore/symtab"
)

// filterState is the classic three-state composition filter (Mohri, Pereira
// & Riley) that keeps a matched-epsilon transition from being counted twice
// along two different interleavings of the two operands' epsilon arcs.
//
//	0: neutral — either side may take an epsilon-alone step next.
//	1: the left operand just took an epsilon-alone step; only the left
//	   operand may do so again until a real-symbol match resets to 0.
//	2: the right operand just took an epsilon-alone step; symmetric.
type filterState int8

const (
	filterNeutral filterState = iota
	filterLeft
	filterRight
)

// maxComposedStates guards against a construction bug producing an infinite
// or unreasonably large product; every machine this codebase composes yields
// a lattice bounded by |ref|×|hyp| (times small constant factors), so this
// is a defensive ceiling, not a modeled limit.
const maxComposedStates = 1 << 20

type composeKey struct {
	a, b int
	f    filterState
}

// Compose builds the composition a ∘ b: a's output label is matched against
// b's input label, and the resulting arc is labelled (a's input, b's
// output), weight summed. Epsilon-alone transitions on either side are
// admitted subject to the composition filter above. The result is built
// eagerly via BFS from the start state and is not yet trimmed; callers
// needing a clean lattice should call Trim.
func Compose(a, b *Fst) (*Fst, error) {
	f := New(a.Tab)
	ids := make(map[composeKey]int)
	key := func(k composeKey) (int, bool) {
		id, ok := ids[k]
		return id, ok
	}
	newState := func(k composeKey) int {
		s := f.AddState()
		ids[k] = s
		return s
	}

	if a.Start < 0 || b.Start < 0 {
		return f, nil
	}
	startKey := composeKey{a.Start, b.Start, filterNeutral}
	start := newState(startKey)
	f.SetStart(start)
	if wa, oka := a.IsFinal(a.Start); oka {
		if wb, okb := b.IsFinal(b.Start); okb {
			f.SetFinal(start, wa+wb)
		}
	}

	type queued struct {
		key composeKey
		id  int
	}
	queue := []queued{{startKey, start}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		qa, qb, filt := cur.key.a, cur.key.b, cur.key.f
		from := cur.id

		enqueue := func(nk composeKey, ilabel, olabel int32, w Weight) error {
			to, ok := key(nk)
			if !ok {
				if len(ids) >= maxComposedStates {
					return fmt.Errorf("fst: composition exceeded %d states, aborting", maxComposedStates)
				}
				to = newState(nk)
				if wa, oka := a.IsFinal(nk.a); oka {
					if wb, okb := b.IsFinal(nk.b); okb {
						f.SetFinal(to, wa+wb)
					}
				}
				queue = append(queue, queued{nk, to})
			}
			f.AddArc(from, ilabel, olabel, w, to)
			return nil
		}

		// Real-symbol matches: a's output meets b's input on a non-epsilon
		// label, always permitted, resets the filter to neutral.
		for _, aa := range a.Arcs(qa) {
			if aa.OLabel == symtab.Epsilon {
				continue
			}
			for _, bb := range b.Arcs(qb) {
				if bb.ILabel != aa.OLabel {
					continue
				}
				nk := composeKey{aa.To, bb.To, filterNeutral}
				if err := enqueue(nk, aa.ILabel, bb.OLabel, aa.Weight+bb.Weight); err != nil {
					return nil, err
				}
			}
		}

		// Left-alone epsilon: a advances on its own output-epsilon arc, b
		// stays put. Disallowed immediately after a right-alone step.
		if filt != filterRight {
			for _, aa := range a.Arcs(qa) {
				if aa.OLabel != symtab.Epsilon {
					continue
				}
				nk := composeKey{aa.To, qb, filterLeft}
				if err := enqueue(nk, aa.ILabel, symtab.Epsilon, aa.Weight); err != nil {
					return nil, err
				}
			}
		}

		// Right-alone epsilon: b advances on its own input-epsilon arc, a
		// stays put. Disallowed immediately after a left-alone step.
		if filt != filterLeft {
			for _, bb := range b.Arcs(qb) {
				if bb.ILabel != symtab.Epsilon {
					continue
				}
				nk := composeKey{qa, bb.To, filterRight}
				if err := enqueue(nk, symtab.Epsilon, bb.OLabel, bb.Weight); err != nil {
					return nil, err
				}
			}
		}
	}
	return f, nil
}
