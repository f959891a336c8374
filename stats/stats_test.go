package stats

import (
	"strings"
	"testing"

	"github.com/asrscore/asrscore"
)

func TestTokenErrorRate(t *testing.T) {
	e := &ErrorStats{}
	e.Add(asrscore.Alignment{
		{Tag: asrscore.Correct, RefSurface: "A", HypSurface: "A"},
		{Tag: asrscore.Substitute, RefSurface: "B", HypSurface: "C"},
		{Tag: asrscore.Delete, RefSurface: "D", HypSurface: "*"},
	})
	ter, err := e.TokenErrorRate()
	if err != nil {
		t.Fatal(err)
	}
	// ref length = C+S+D = 3; errors = S+D+I = 2; TER = 200/3 = 66.67
	want := 200.0 / 3.0
	if diff := ter - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("got %v, want %v", ter, want)
	}
}

func TestTokenErrorRateUndefinedOnZeroRefLength(t *testing.T) {
	e := &ErrorStats{}
	e.Add(asrscore.Alignment{
		{Tag: asrscore.Insert, RefSurface: "*", HypSurface: "A"},
	})
	if _, err := e.TokenErrorRate(); err == nil {
		t.Fatal("expected an error for zero ref length")
	}
}

func TestSentenceErrorRate(t *testing.T) {
	e := &ErrorStats{}
	e.Add(asrscore.Alignment{{Tag: asrscore.Correct, RefSurface: "A", HypSurface: "A"}})
	e.Add(asrscore.Alignment{{Tag: asrscore.Substitute, RefSurface: "A", HypSurface: "B"}})
	ser, err := e.SentenceErrorRate()
	if err != nil {
		t.Fatal(err)
	}
	if ser != 50 {
		t.Errorf("expected SER 50, got %v", ser)
	}
}

func TestModifiedTokenErrorRateUsesLongerLength(t *testing.T) {
	e := &ErrorStats{}
	e.Add(asrscore.Alignment{
		{Tag: asrscore.Correct, RefSurface: "A", HypSurface: "A"},
		{Tag: asrscore.Insert, RefSurface: "*", HypSurface: "B"},
		{Tag: asrscore.Insert, RefSurface: "*", HypSurface: "C"},
	})
	// refLen = C+S+D = 1; hypLen = C+S+I = 3; mTER = 100*2/3
	mter, err := e.ModifiedTokenErrorRate()
	if err != nil {
		t.Fatal(err)
	}
	want := 200.0 / 3.0
	if diff := mter - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("got %v, want %v", mter, want)
	}
}

func TestPrettyPrintMarksInsertAndDelete(t *testing.T) {
	alignment := asrscore.Alignment{
		{Tag: asrscore.Correct, RefSurface: "HEY", HypSurface: "HEY"},
		{Tag: asrscore.Insert, RefSurface: "*", HypSurface: "THERE"},
		{Tag: asrscore.Delete, RefSurface: "FRIEND", HypSurface: "*"},
	}
	out := PrettyPrint("HEY THERE", alignment)
	if !strings.Contains(out, "HEY THERE") {
		t.Error("expected raw hyp text as first line")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[3], "I") || !strings.Contains(lines[3], "D") {
		t.Errorf("expected edit row to mark I and D, got %q", lines[3])
	}
}

func TestDisplayWidthCountsCJKAsTwo(t *testing.T) {
	if displayWidth("A") != 1 {
		t.Errorf("expected ASCII width 1")
	}
	if displayWidth("中") != 2 { // U+4E2D "中", within U+4E00..U+9FA5
		t.Errorf("expected CJK width 2")
	}
}
