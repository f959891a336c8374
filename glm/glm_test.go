package glm

import (
	"strings"
	"testing"
)

func TestLoadParsesRules(t *testing.T) {
	csv := "I'M,I AM\nGONNA,GOING TO\n"
	table, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rules, got %d", table.Len())
	}
	if table.Rules()[0].ID != "<RULE_000000>" {
		t.Errorf("unexpected rule id: %s", table.Rules()[0].ID)
	}
	if table.Rules()[1].ID != "<RULE_000001>" {
		t.Errorf("unexpected rule id: %s", table.Rules()[1].ID)
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	table, err := Load(strings.NewReader("A,B\n\nC,D\n"))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected blank line to be skipped, got %d rules", table.Len())
	}
}

func TestRuleLookup(t *testing.T) {
	table, _ := Load(strings.NewReader("I'M,I AM\n"))
	r, ok := table.Rule("<RULE_000000>")
	if !ok || len(r.Phrases) != 2 {
		t.Fatalf("Rule lookup failed: %v %v", r, ok)
	}
}
