package fst

import "fmt"

// topoOrder returns a topological ordering of m's states via Kahn's
// algorithm. Returns an error if m is not acyclic (a positive-weight
// self-loop or cycle survives trimming) — every lattice this codebase
// builds is acyclic once trimmed (see package doc), so this signals a
// construction bug rather than a modeled case.
func topoOrder(m *Fst) ([]int, error) {
	indeg := make([]int, len(m.states))
	for _, st := range m.states {
		for _, a := range st.arcs {
			indeg[a.To]++
		}
	}
	var queue []int
	for s, d := range indeg {
		if d == 0 {
			queue = append(queue, s)
		}
	}
	order := make([]int, 0, len(m.states))
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		order = append(order, s)
		for _, a := range m.states[s].arcs {
			indeg[a.To]--
			if indeg[a.To] == 0 {
				queue = append(queue, a.To)
			}
		}
	}
	if len(order) != len(m.states) {
		return nil, fmt.Errorf("fst: lattice is cyclic, shortest-path/distance require an acyclic lattice")
	}
	return order, nil
}

// ShortestDistance computes, for every state of m, the tropical-semiring
// distance (min total weight) from Start. Unreachable states have distance
// Infinity.
func ShortestDistance(m *Fst) ([]Weight, error) {
	order, err := topoOrder(m)
	if err != nil {
		return nil, err
	}
	dist := make([]Weight, len(m.states))
	for i := range dist {
		dist[i] = Infinity
	}
	if m.Start >= 0 {
		dist[m.Start] = 0
	}
	for _, s := range order {
		if dist[s] == Infinity {
			continue
		}
		for _, a := range m.states[s].arcs {
			nd := dist[s] + a.Weight
			if nd < dist[a.To] {
				dist[a.To] = nd
			}
		}
	}
	return dist, nil
}

// ShortestPath returns the minimum-weight accepting path through m, as its
// sequence of arcs, plus its total weight (arc weights plus the winning
// final state's final weight). Ties are broken deterministically: among
// equal-cost arcs into a state, the one relaxed first wins, where source
// states are relaxed in topological (Kahn) order and each state's arcs in
// construction order. No fixed ranking among edit kinds (such as
// Correct > Substitute > Delete > Insert) is imposed beyond that order.
//
// Returns an error if m accepts nothing, or is not acyclic.
func ShortestPath(m *Fst) ([]Arc, Weight, error) {
	order, err := topoOrder(m)
	if err != nil {
		return nil, 0, err
	}
	dist := make([]Weight, len(m.states))
	predArc := make([]int, len(m.states))  // index into predecessor's arc list, -1 if none
	predState := make([]int, len(m.states))
	for i := range dist {
		dist[i] = Infinity
		predArc[i] = -1
		predState[i] = -1
	}
	if m.Start >= 0 {
		dist[m.Start] = 0
	}
	for _, s := range order {
		if dist[s] == Infinity {
			continue
		}
		for ai, a := range m.states[s].arcs {
			nd := dist[s] + a.Weight
			if nd < dist[a.To] {
				dist[a.To] = nd
				predState[a.To] = s
				predArc[a.To] = ai
			}
		}
	}

	best := -1
	bestCost := Infinity
	for s, st := range m.states {
		if !st.final || dist[s] == Infinity {
			continue
		}
		total := dist[s] + st.finalWeight
		if total < bestCost {
			bestCost = total
			best = s
		}
	}
	if best < 0 {
		return nil, 0, fmt.Errorf("fst: empty lattice, no accepting path")
	}

	var path []Arc
	for s := best; predArc[s] >= 0; {
		ai := predArc[s]
		ps := predState[s]
		path = append(path, m.states[ps].arcs[ai])
		s = ps
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, bestCost, nil
}
