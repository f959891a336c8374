/*
Package fst implements the weighted finite-state acceptor/transducer kernel
the spec's core is built on: linear acceptor construction, union, concat,
closure, composition, inversion, label relabeling, epsilon-removal,
determinization, minimization, shortest-distance and shortest-path — all
over the tropical semiring (⊕ = min, ⊗ = +) and a shared symtab.Table.

Shortest-path and shortest-distance require an acyclic lattice and return
an error on a cyclic one. The alignment lattice is acyclic: ref/hyp
acceptors are linear, and once the edit transducer's self-loops are composed
with both of them every arc consumes a reference token, a hypothesis token,
or one of the hypothesis sausage's forward epsilon arcs, so no
(ref-position, hyp-position) pair is revisited. This mirrors `lr/tables.go`'s own design:
characteristic-automaton construction as a worklist over state subsets,
closure and goto-set operations.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package fst

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/asrscore/asrscore"
	"github.com/asrscore/asrscore/fst/stateset"
	"github.com/asrscore/asrscore/internal/trace"
	"github.com/asrscore/asrscore/symtab"
)

func tracer() tracing.Trace {
	return trace.For("asrscore.fst")
}

// Weight is the tropical-semiring weight type used throughout this package.
type Weight = asrscore.Weight

// Infinity is the tropical semiring's zero (no path).
const Infinity = asrscore.Infinity

// Arc is a single weighted, labelled transition.
type Arc struct {
	ILabel int32
	OLabel int32
	Weight Weight
	To     int
}

type state struct {
	arcs       []Arc
	final      bool
	finalWeight Weight
}

// Fst is a weighted finite-state acceptor/transducer. An acceptor is simply
// an Fst whose arcs all have ILabel == OLabel.
type Fst struct {
	Tab    *symtab.Table
	states []state
	Start  int
}

// New creates an empty Fst bound to a symbol table.
func New(tab *symtab.Table) *Fst {
	return &Fst{Tab: tab, Start: -1}
}

// AddState appends a new, non-final state and returns its index.
func (f *Fst) AddState() int {
	f.states = append(f.states, state{})
	return len(f.states) - 1
}

// SetStart designates state s as the start state.
func (f *Fst) SetStart(s int) { f.Start = s }

// SetFinal marks state s as final with the given final weight.
func (f *Fst) SetFinal(s int, w Weight) {
	f.states[s].final = true
	f.states[s].finalWeight = w
}

// UnsetFinal clears the final flag of state s.
func (f *Fst) UnsetFinal(s int) { f.states[s].final = false }

// IsFinal reports whether s is final, and its final weight if so.
func (f *Fst) IsFinal(s int) (Weight, bool) {
	st := f.states[s]
	return st.finalWeight, st.final
}

// AddArc appends an arc from -> to, labelled (ilabel, olabel), of weight w.
func (f *Fst) AddArc(from int, ilabel, olabel int32, w Weight, to int) {
	f.states[from].arcs = append(f.states[from].arcs, Arc{ILabel: ilabel, OLabel: olabel, Weight: w, To: to})
}

// NumStates returns the number of states.
func (f *Fst) NumStates() int { return len(f.states) }

// Arcs returns the outgoing arcs of state s, in construction order. Callers
// must not mutate the returned slice.
func (f *Fst) Arcs(s int) []Arc { return f.states[s].arcs }

// Acceptor builds a linear acceptor for the given symbol ids: state i has a
// single arc (ids[i]:ids[i]) to state i+1, weight 0; the last state is final
// with weight 0. An empty ids yields a single start=final state (accepts the
// empty string).
func Acceptor(tab *symtab.Table, ids []int32) *Fst {
	f := New(tab)
	s := f.AddState()
	f.SetStart(s)
	for _, id := range ids {
		next := f.AddState()
		f.AddArc(s, id, id, 0, next)
		s = next
	}
	f.SetFinal(s, 0)
	return f
}

// appendCopy copies every state/arc of src into dst, returning the state-id
// offset (src state i now lives at dst state offset+i).
func appendCopy(dst, src *Fst) int {
	offset := len(dst.states)
	for _, st := range src.states {
		ns := dst.AddState()
		if st.final {
			dst.SetFinal(ns, st.finalWeight)
		}
		for _, a := range st.arcs {
			dst.AddArc(ns, a.ILabel, a.OLabel, a.Weight, a.To+offset)
		}
	}
	return offset
}

// Union builds the union (alternation) of the given machines: a fresh start
// state with an epsilon arc (weight 0) to each machine's (shifted) start.
func Union(tab *symtab.Table, machines ...*Fst) *Fst {
	f := New(tab)
	start := f.AddState()
	f.SetStart(start)
	for _, m := range machines {
		offset := appendCopy(f, m)
		f.AddArc(start, symtab.Epsilon, symtab.Epsilon, 0, m.Start+offset)
	}
	return f
}

// Concat builds the concatenation of the given machines, in order: each
// final state of machine i gets an epsilon arc (carrying its former final
// weight) to the start of machine i+1, and loses its final flag; the last
// machine's final states remain final.
func Concat(tab *symtab.Table, machines ...*Fst) *Fst {
	f := New(tab)
	if len(machines) == 0 {
		s := f.AddState()
		f.SetStart(s)
		f.SetFinal(s, 0)
		return f
	}
	offsets := make([]int, len(machines))
	for i, m := range machines {
		offsets[i] = appendCopy(f, m)
	}
	f.SetStart(machines[0].Start + offsets[0])
	for i := 0; i < len(machines)-1; i++ {
		m := machines[i]
		nextStart := machines[i+1].Start + offsets[i+1]
		for localState, st := range m.states {
			if !st.final {
				continue
			}
			s := localState + offsets[i]
			f.AddArc(s, symtab.Epsilon, symtab.Epsilon, st.finalWeight, nextStart)
			f.UnsetFinal(s)
		}
	}
	return f
}

// Closure builds the Kleene-star closure of m: the (shifted) start is also
// made final (accepts the empty string), and every final state gets an
// epsilon arc (carrying its final weight) back to the start.
func Closure(tab *symtab.Table, m *Fst) *Fst {
	f := New(tab)
	offset := appendCopy(f, m)
	start := m.Start + offset
	f.SetStart(start)
	f.SetFinal(start, 0)
	for localState, st := range m.states {
		if !st.final {
			continue
		}
		s := localState + offset
		f.AddArc(s, symtab.Epsilon, symtab.Epsilon, st.finalWeight, start)
	}
	return f
}

// Invert swaps the input and output label of every arc.
func Invert(tab *symtab.Table, m *Fst) *Fst {
	f := New(tab)
	for range m.states {
		f.AddState()
	}
	f.Start = m.Start
	for s, st := range m.states {
		if st.final {
			f.SetFinal(s, st.finalWeight)
		}
		for _, a := range st.arcs {
			f.AddArc(s, a.OLabel, a.ILabel, a.Weight, a.To)
		}
	}
	return f
}

// Relabel rewrites arc labels through the given maps; a nil map leaves that
// side unchanged, and labels absent from a non-nil map are left unchanged
// too (a relabeling is a partial function).
func Relabel(tab *symtab.Table, m *Fst, inputMap, outputMap map[int32]int32) *Fst {
	f := New(tab)
	for range m.states {
		f.AddState()
	}
	f.Start = m.Start
	remap := func(table map[int32]int32, label int32) int32 {
		if table == nil {
			return label
		}
		if to, ok := table[label]; ok {
			return to
		}
		return label
	}
	for s, st := range m.states {
		if st.final {
			f.SetFinal(s, st.finalWeight)
		}
		for _, a := range st.arcs {
			f.AddArc(s, remap(inputMap, a.ILabel), remap(outputMap, a.OLabel), a.Weight, a.To)
		}
	}
	return f
}

// Trim removes states unreachable from Start, and states from which no
// final state is reachable, returning a compacted copy.
func Trim(tab *symtab.Table, m *Fst) *Fst {
	if m.Start < 0 || len(m.states) == 0 {
		return New(tab)
	}
	fwd := reachableForward(m, m.Start)
	bwd := reachableBackward(m)
	keep := make([]bool, len(m.states))
	for s := range m.states {
		keep[s] = fwd[s] && bwd[s]
	}
	newID := make([]int, len(m.states))
	for i := range newID {
		newID[i] = -1
	}
	f := New(tab)
	for s := range m.states {
		if keep[s] {
			newID[s] = f.AddState()
		}
	}
	if !keep[m.Start] {
		return New(tab) // nothing survives: empty language
	}
	f.SetStart(newID[m.Start])
	for s, st := range m.states {
		if !keep[s] {
			continue
		}
		if st.final {
			f.SetFinal(newID[s], st.finalWeight)
		}
		for _, a := range st.arcs {
			if keep[a.To] {
				f.AddArc(newID[s], a.ILabel, a.OLabel, a.Weight, newID[a.To])
			}
		}
	}
	return f
}

func reachableForward(m *Fst, start int) []bool {
	seen := make([]bool, len(m.states))
	seen[start] = true
	pending := stateset.New(start)
	for !pending.Empty() {
		s := pending.Next()
		for _, a := range m.states[s].arcs {
			if !seen[a.To] {
				seen[a.To] = true
				pending.Add(a.To)
			}
		}
	}
	return seen
}

func reachableBackward(m *Fst) []bool {
	preds := make([][]int, len(m.states))
	for s, st := range m.states {
		for _, a := range st.arcs {
			preds[a.To] = append(preds[a.To], s)
		}
	}
	seen := make([]bool, len(m.states))
	var stack []int
	for s, st := range m.states {
		if st.final {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range preds[s] {
			if !seen[p] {
				seen[p] = true
				stack = append(stack, p)
			}
		}
	}
	return seen
}

// IsEmpty reports whether m accepts no string at all (no path from Start to
// any final state).
func IsEmpty(m *Fst) bool {
	if m.Start < 0 {
		return true
	}
	return len(Trim(m.Tab, m).states) == 0
}
