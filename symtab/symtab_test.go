package symtab

import "testing"

func TestNewTableHasEpsilon(t *testing.T) {
	tab := New()
	if tab.Size() != 1 {
		t.Fatalf("expected size 1 (epsilon only), got %d", tab.Size())
	}
	if id, ok := tab.Find(EpsilonSymbol); !ok || id != Epsilon {
		t.Errorf("epsilon not at id 0: id=%d ok=%v", id, ok)
	}
}

func TestAddSymbolIdempotent(t *testing.T) {
	tab := New()
	id1 := tab.AddSymbol("HELLO")
	id2 := tab.AddSymbol("HELLO")
	if id1 != id2 {
		t.Errorf("re-adding a symbol changed its id: %d != %d", id1, id2)
	}
	if tab.Size() != 2 {
		t.Errorf("expected size 2, got %d", tab.Size())
	}
}

func TestDistinctSymbolsDistinctIDs(t *testing.T) {
	tab := New()
	id1 := tab.AddSymbol("A")
	id2 := tab.AddSymbol("B")
	if id1 == id2 {
		t.Error("two distinct symbols got the same id")
	}
}

func TestSymbolRoundTrip(t *testing.T) {
	tab := New()
	id := tab.AddSymbol("FOO")
	if got := tab.Symbol(id); got != "FOO" {
		t.Errorf("Symbol(%d) = %q, want FOO", id, got)
	}
}

func TestMustFindPanicsOnUnknown(t *testing.T) {
	tab := New()
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown symbol")
		}
	}()
	tab.MustFind("NOPE")
}

func TestStripAux(t *testing.T) {
	cases := map[string]string{
		"FOO#": "FOO",
		"FOO":  "FOO",
		"#":    "",
	}
	for in, want := range cases {
		if got := StripAux(in); got != want {
			t.Errorf("StripAux(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEach(t *testing.T) {
	tab := New()
	tab.AddSymbol("A")
	tab.AddSymbol("B")
	seen := map[string]bool{}
	tab.Each(func(id int32, sym string) {
		if id == Epsilon {
			t.Error("Each must skip epsilon")
		}
		seen[sym] = true
	})
	if !seen["A"] || !seen["B"] {
		t.Errorf("Each did not visit all symbols: %v", seen)
	}
}
