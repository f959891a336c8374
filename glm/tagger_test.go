package glm

import (
	"reflect"
	"strings"
	"testing"

	"github.com/asrscore/asrscore/symtab"
	"github.com/asrscore/asrscore/tokenize"
)

func TestTagWrapsMatchedPhrase(t *testing.T) {
	table, err := Load(strings.NewReader("I'M,I AM\n"))
	if err != nil {
		t.Fatal(err)
	}
	tab := symtab.New()
	for _, tok := range tokenize.Tokenize("HEY I'M HERE", tokenize.Whitespace) {
		tab.AddSymbol(tok)
	}
	tagger, err := Build(tab, table, tokenize.Whitespace)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tagger.Tag([]string{"HEY", "I'M", "HERE"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"HEY", "<RULE_000000>", "I'M", "<RULE_000000>", "HERE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTagNoMatchPassesThrough(t *testing.T) {
	table, _ := Load(strings.NewReader(""))
	tab := symtab.New()
	tab.AddSymbols([]string{"HEY", "THERE"})
	tagger, err := Build(tab, table, tokenize.Whitespace)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tagger.Tag([]string{"HEY", "THERE"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"HEY", "THERE"}) {
		t.Errorf("got %v", got)
	}
}

func TestTagPrefersLongerPhraseMatch(t *testing.T) {
	table, err := Load(strings.NewReader("GONNA,GOING TO\n"))
	if err != nil {
		t.Fatal(err)
	}
	tab := symtab.New()
	for _, tok := range tokenize.Tokenize("I AM GOING TO LEAVE", tokenize.Whitespace) {
		tab.AddSymbol(tok)
	}
	tagger, err := Build(tab, table, tokenize.Whitespace)
	if err != nil {
		t.Fatal(err)
	}
	got, err := tagger.Tag([]string{"I", "AM", "GOING", "TO", "LEAVE"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"I", "AM", "<RULE_000000>", "GOING", "TO", "<RULE_000000>", "LEAVE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
