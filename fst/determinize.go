/*
Determinization and minimization follow `lr/tables.go`'s characteristic-
finite-state-machine construction: a worklist of state subsets, an
epsilon-closure step, and a goto function grouping outgoing arcs by label —
renamed here from LR items/symbols to NFA states/FST labels, and from
cnf/structhash-keyed item sets to structhash-keyed state-id sets for
subset dedup (lr/tables.go keys CFSM states by hashing sorted item sets the
same way).

This is a deliberate simplification, not full weighted determinization
(which requires residual-weight pushing across the whole automaton): each
DFA state here carries, for every NFA state in its subset, the minimum
residual weight accumulated reaching it since the last real-symbol
transition, and arcs out of a DFA state use the minimum such residual among
the NFA states offering that label. For acyclic, locally unambiguous
automata (linear acceptors and their literal unions, or small lattices
passed through Optimize) this preserves shortest-path weights; it does not
in general for heavily ambiguous weighted automata.
*/
package fst

import (
	"sort"

	"github.com/cnf/structhash"

	"github.com/asrscore/asrscore/symtab"
)

// RmEpsilon removes epsilon:epsilon arcs from an acceptor by epsilon-closure:
// every state reachable from s via epsilon arcs alone contributes its
// non-epsilon arcs and final weight directly to s (with the closure weight
// added in), then the epsilon arcs themselves are dropped.
func RmEpsilon(tab *symtab.Table, m *Fst) *Fst {
	closures := make([][]weightedState, len(m.states))
	for s := range m.states {
		closures[s] = epsilonClosure(m, s)
	}
	f := New(m.Tab)
	for range m.states {
		f.AddState()
	}
	f.Start = m.Start
	for s := range m.states {
		bestFinal := Infinity
		for _, ws := range closures[s] {
			if w, ok := m.IsFinal(ws.state); ok {
				if total := ws.weight + w; total < bestFinal {
					bestFinal = total
				}
			}
			for _, a := range m.states[ws.state].arcs {
				if a.ILabel == symtab.Epsilon && a.OLabel == symtab.Epsilon {
					continue
				}
				f.AddArc(s, a.ILabel, a.OLabel, ws.weight+a.Weight, a.To)
			}
		}
		if bestFinal != Infinity {
			f.SetFinal(s, bestFinal)
		}
	}
	return Trim(m.Tab, f)
}

type weightedState struct {
	state  int
	weight Weight
}

func epsilonClosure(m *Fst, start int) []weightedState {
	best := map[int]Weight{start: 0}
	queue := []weightedState{{start, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.weight > best[cur.state] {
			continue
		}
		for _, a := range m.states[cur.state].arcs {
			if a.ILabel != symtab.Epsilon || a.OLabel != symtab.Epsilon {
				continue
			}
			nw := cur.weight + a.Weight
			if old, ok := best[a.To]; !ok || nw < old {
				best[a.To] = nw
				queue = append(queue, weightedState{a.To, nw})
			}
		}
	}
	out := make([]weightedState, 0, len(best))
	for s, w := range best {
		out = append(out, weightedState{s, w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].state < out[j].state })
	return out
}

// subsetKey canonicalizes a set of (nfa-state, residual-weight) pairs into a
// structhash digest, grounded on `lr/earley.go`'s item-set hashing
// (hash(item, state) there; hash(sorted subset) here).
func subsetKey(subset []weightedState) string {
	sorted := append([]weightedState(nil), subset...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].state < sorted[j].state })
	h, err := structhash.Hash(sorted, 1)
	if err != nil {
		// structhash only fails on unhashable types; weightedState is a
		// plain struct of int/float64, so this is unreachable in practice.
		panic("fst: structhash.Hash failed on a state subset: " + err.Error())
	}
	return h
}

// Determinize performs subset construction over m, treating it as an NFA:
// epsilon-closure at each step, then grouping outgoing arcs by input label
// (the goto-set step of `lr/tables.go`'s CFSM construction) to form the
// successor subset. See the package-level note above on the weighted
// simplification involved.
func Determinize(m *Fst) *Fst {
	f := New(m.Tab)
	type item struct {
		subset []weightedState
		id     int
	}
	seen := map[string]int{}
	startSubset := epsilonClosure(m, m.Start)
	startKey := subsetKey(startSubset)
	startID := f.AddState()
	f.SetStart(startID)
	seen[startKey] = startID
	setFinalFor := func(id int, subset []weightedState) {
		best := Infinity
		for _, ws := range subset {
			if w, ok := m.IsFinal(ws.state); ok {
				if total := ws.weight + w; total < best {
					best = total
				}
			}
		}
		if best != Infinity {
			f.SetFinal(id, best)
		}
	}
	setFinalFor(startID, startSubset)

	worklist := []item{{startSubset, startID}}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		byLabel := map[int32][]weightedState{}
		labelWeight := map[int32]Weight{}
		for _, ws := range cur.subset {
			for _, a := range m.states[ws.state].arcs {
				if a.ILabel == symtab.Epsilon && a.OLabel == symtab.Epsilon {
					continue
				}
				lbl := a.ILabel
				w := ws.weight + a.Weight
				byLabel[lbl] = append(byLabel[lbl], weightedState{a.To, 0})
				if old, ok := labelWeight[lbl]; !ok || w < old {
					labelWeight[lbl] = w
				}
			}
		}
		labels := make([]int32, 0, len(byLabel))
		for lbl := range byLabel {
			labels = append(labels, lbl)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		for _, lbl := range labels {
			var closure []weightedState
			seenState := map[int]bool{}
			for _, ws := range byLabel[lbl] {
				for _, c := range epsilonClosure(m, ws.state) {
					if !seenState[c.state] {
						seenState[c.state] = true
						closure = append(closure, c)
					}
				}
			}
			k := subsetKey(closure)
			to, ok := seen[k]
			if !ok {
				to = f.AddState()
				seen[k] = to
				setFinalFor(to, closure)
				worklist = append(worklist, item{closure, to})
			}
			f.AddArc(cur.id, lbl, lbl, labelWeight[lbl], to)
		}
	}
	return f
}

// Minimize merges equivalent states of an acyclic acceptor/transducer by a
// reverse-topological signature pass: two states are merged when they agree
// on final status/weight and on the sorted (label, weight, signature-of-
// target) triples of their outgoing arcs. This is the acyclic-only analogue
// of Moore's algorithm referenced in spec §9.
func Minimize(m *Fst) *Fst {
	order, err := topoOrder(m)
	if err != nil {
		// Minimization of a cyclic lattice is out of scope for this
		// codebase's machines (see package doc); return m unchanged rather
		// than fail a best-effort cleanup pass.
		return m
	}
	sig := make([]string, len(m.states))
	classOf := make([]int, len(m.states))
	classRep := map[string]int{}
	nextClass := 0
	for i := len(order) - 1; i >= 0; i-- {
		s := order[i]
		type arcSig struct {
			IL, OL int32
			W      Weight
			Target int
		}
		arcs := make([]arcSig, 0, len(m.states[s].arcs))
		for _, a := range m.states[s].arcs {
			arcs = append(arcs, arcSig{a.ILabel, a.OLabel, a.Weight, classOf[a.To]})
		}
		sort.Slice(arcs, func(i, j int) bool {
			if arcs[i].IL != arcs[j].IL {
				return arcs[i].IL < arcs[j].IL
			}
			if arcs[i].OL != arcs[j].OL {
				return arcs[i].OL < arcs[j].OL
			}
			return arcs[i].Target < arcs[j].Target
		})
		w, final := m.IsFinal(s)
		h, _ := structhash.Hash(struct {
			Final bool
			W     Weight
			Arcs  interface{}
		}{final, w, arcs}, 1)
		sig[s] = h
		if cls, ok := classRep[h]; ok {
			classOf[s] = cls
		} else {
			classOf[s] = nextClass
			classRep[h] = nextClass
			nextClass = nextClass + 1
		}
	}

	f := New(m.Tab)
	classState := make(map[int]int)
	for s := range m.states {
		cls := classOf[s]
		if _, ok := classState[cls]; !ok {
			classState[cls] = f.AddState()
		}
	}
	f.Start = classState[classOf[m.Start]]
	emitted := make(map[int]bool, len(classState))
	for s, st := range m.states {
		cls := classOf[s]
		if emitted[cls] {
			continue // an equivalent state already contributed this class's arcs
		}
		emitted[cls] = true
		from := classState[cls]
		if st.final {
			f.SetFinal(from, st.finalWeight)
		}
		for _, a := range st.arcs {
			to := classState[classOf[a.To]]
			f.AddArc(from, a.ILabel, a.OLabel, a.Weight, to)
		}
	}
	return f
}

// Optimize runs the standard cleanup pipeline: epsilon-removal, subset-
// construction determinization, then state-merging minimization.
func Optimize(m *Fst) *Fst {
	return Minimize(Determinize(RmEpsilon(m.Tab, m)))
}
