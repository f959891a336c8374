package edit

import (
	"testing"

	"github.com/asrscore/asrscore/fst"
	"github.com/asrscore/asrscore/internal/config"
	"github.com/asrscore/asrscore/symtab"
)

func compose(t *testing.T, ref, hyp *fst.Fst, tr *Transducer) (*fst.Fst, error) {
	t.Helper()
	left, err := fst.Compose(ref, tr.Ei)
	if err != nil {
		return nil, err
	}
	right, err := fst.Compose(tr.Eo, hyp)
	if err != nil {
		return nil, err
	}
	return fst.Compose(left, right)
}

func acceptorOf(tab *symtab.Table, toks []string) *fst.Fst {
	ids := make([]int32, len(toks))
	for i, tk := range toks {
		ids[i] = tab.AddSymbol(tk)
	}
	return fst.Acceptor(tab, ids)
}

func TestBuildMatchIsFree(t *testing.T) {
	tab := symtab.New()
	vocab := []string{"A", "B"}
	tr := Build(tab, vocab, config.DefaultCosts(), 0)

	ref := acceptorOf(tab, []string{"A", "B"})
	hyp := acceptorOf(tab, []string{"A", "B"})
	lattice, err := compose(t, ref, hyp, tr)
	if err != nil {
		t.Fatal(err)
	}
	if fst.IsEmpty(lattice) {
		t.Fatal("expected a match path to exist")
	}
	_, cost, err := fst.ShortestPath(lattice)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 {
		t.Errorf("expected zero-cost match, got %v", cost)
	}
}

func TestBuildSubstitutionCost(t *testing.T) {
	tab := symtab.New()
	vocab := []string{"A", "B"}
	costs := config.DefaultCosts()
	tr := Build(tab, vocab, costs, 0)

	ref := acceptorOf(tab, []string{"A"})
	hyp := acceptorOf(tab, []string{"B"})
	lattice, err := compose(t, ref, hyp, tr)
	if err != nil {
		t.Fatal(err)
	}
	if fst.IsEmpty(lattice) {
		t.Fatal("expected a substitution path to exist")
	}
	_, cost, err := fst.ShortestPath(lattice)
	if err != nil {
		t.Fatal(err)
	}
	if cost != costs.Substitute {
		t.Errorf("expected substitution cost %v, got %v", costs.Substitute, cost)
	}
}

func TestBuildDeletionCost(t *testing.T) {
	tab := symtab.New()
	vocab := []string{"A", "B"}
	costs := config.DefaultCosts()
	tr := Build(tab, vocab, costs, 0)

	ref := acceptorOf(tab, []string{"A", "B"})
	hyp := acceptorOf(tab, []string{"A"})
	lattice, err := compose(t, ref, hyp, tr)
	if err != nil {
		t.Fatal(err)
	}
	if fst.IsEmpty(lattice) {
		t.Fatal("expected a deletion path to exist")
	}
	_, cost, err := fst.ShortestPath(lattice)
	if err != nil {
		t.Fatal(err)
	}
	if cost != costs.Delete {
		t.Errorf("expected deletion cost %v, got %v", costs.Delete, cost)
	}
}

func TestBuildInsertionCost(t *testing.T) {
	tab := symtab.New()
	vocab := []string{"A", "B"}
	costs := config.DefaultCosts()
	tr := Build(tab, vocab, costs, 0)

	ref := acceptorOf(tab, []string{"A"})
	hyp := acceptorOf(tab, []string{"A", "B"})
	lattice, err := compose(t, ref, hyp, tr)
	if err != nil {
		t.Fatal(err)
	}
	if fst.IsEmpty(lattice) {
		t.Fatal("expected an insertion path to exist")
	}
	_, cost, err := fst.ShortestPath(lattice)
	if err != nil {
		t.Fatal(err)
	}
	if cost != costs.Insert {
		t.Errorf("expected insertion cost %v, got %v", costs.Insert, cost)
	}
}

func TestBuildAuxiliaryMatchIsFree(t *testing.T) {
	tab := symtab.New()
	vocab := []string{"A"}
	tr := Build(tab, vocab, config.DefaultCosts(), 0)

	ref := acceptorOf(tab, []string{"A"})
	auxID := tab.MustFind(symtab.Aux("A"))
	hyp := fst.Acceptor(tab, []int32{auxID})
	lattice, err := compose(t, ref, hyp, tr)
	if err != nil {
		t.Fatal(err)
	}
	if fst.IsEmpty(lattice) {
		t.Fatal("expected an auxiliary-form match path to exist")
	}
	_, cost, err := fst.ShortestPath(lattice)
	if err != nil {
		t.Fatal(err)
	}
	if cost != 0 {
		t.Errorf("expected zero-cost auxiliary match, got %v", cost)
	}
}
