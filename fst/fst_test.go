package fst

import (
	"testing"

	"github.com/asrscore/asrscore/symtab"
)

func TestAcceptorAcceptsExactSequence(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	f := Acceptor(tab, []int32{a, b})
	path, cost, err := ShortestPath(f)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 {
		t.Errorf("expected cost 0, got %v", cost)
	}
	if len(path) != 2 || path[0].ILabel != a || path[1].ILabel != b {
		t.Errorf("unexpected path: %+v", path)
	}
}

func TestEmptyAcceptorAcceptsEmptyString(t *testing.T) {
	tab := symtab.New()
	f := Acceptor(tab, nil)
	path, cost, err := ShortestPath(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 0 || cost != 0 {
		t.Errorf("expected empty path at cost 0, got %v cost %v", path, cost)
	}
}

func TestUnionAcceptsEitherBranch(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	u := Union(tab, Acceptor(tab, []int32{a}), Acceptor(tab, []int32{b}))
	_, cost, err := ShortestPath(u)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 {
		t.Errorf("expected cost 0, got %v", cost)
	}
}

func TestConcatAcceptsSequence(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	c := Concat(tab, Acceptor(tab, []int32{a}), Acceptor(tab, []int32{b}))
	path, _, err := ShortestPath(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(path) != 2 || path[0].ILabel != a || path[1].ILabel != b {
		t.Errorf("unexpected path: %+v", path)
	}
}

func TestInvertSwapsLabels(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	f := New(tab)
	s0 := f.AddState()
	s1 := f.AddState()
	f.SetStart(s0)
	f.SetFinal(s1, 0)
	f.AddArc(s0, a, b, 1.5, s1)
	inv := Invert(tab, f)
	if inv.Arcs(s0)[0].ILabel != b || inv.Arcs(s0)[0].OLabel != a {
		t.Errorf("invert did not swap labels: %+v", inv.Arcs(s0)[0])
	}
}

func TestComposeChainsTwoTransducers(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	c := tab.AddSymbol("C")

	// T1: A:B
	t1 := New(tab)
	s0, s1 := t1.AddState(), t1.AddState()
	t1.SetStart(s0)
	t1.SetFinal(s1, 0)
	t1.AddArc(s0, a, b, 0, s1)

	// T2: B:C
	t2 := New(tab)
	u0, u1 := t2.AddState(), t2.AddState()
	t2.SetStart(u0)
	t2.SetFinal(u1, 0)
	t2.AddArc(u0, b, c, 0, u1)

	composed, err := Compose(t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	path, cost, err := ShortestPath(composed)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 || len(path) != 1 || path[0].ILabel != a || path[0].OLabel != c {
		t.Errorf("unexpected composed path: %+v cost %v", path, cost)
	}
}

func TestComposeRejectsEmptyWhenNoMatch(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	x := tab.AddSymbol("X")

	t1 := Acceptor(tab, []int32{a})
	t2 := Acceptor(tab, []int32{b})
	_ = x
	composed, err := Compose(t1, t2)
	if err != nil {
		t.Fatal(err)
	}
	if !IsEmpty(composed) {
		t.Error("expected composition of disjoint acceptors to be empty")
	}
}

func TestShortestPathPrefersCheaperRoute(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	b := tab.AddSymbol("B")
	f := New(tab)
	s0, s1 := f.AddState(), f.AddState()
	f.SetStart(s0)
	f.SetFinal(s1, 0)
	f.AddArc(s0, a, a, 5, s1)
	f.AddArc(s0, b, b, 1, s1)
	path, cost, err := ShortestPath(f)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 1 || path[0].ILabel != b {
		t.Errorf("expected cheaper B arc, got %+v cost %v", path, cost)
	}
}

func TestTrimRemovesDeadStates(t *testing.T) {
	tab := symtab.New()
	a := tab.AddSymbol("A")
	f := New(tab)
	s0 := f.AddState()
	dead := f.AddState()
	f.SetStart(s0)
	f.SetFinal(s0, 0)
	f.AddArc(s0, a, a, 0, dead) // leads nowhere final
	trimmed := Trim(tab, f)
	if trimmed.NumStates() != 1 {
		t.Errorf("expected dead state removed, got %d states", trimmed.NumStates())
	}
}
