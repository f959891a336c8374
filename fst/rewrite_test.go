package fst

import (
	"reflect"
	"testing"

	"github.com/asrscore/asrscore/symtab"
)

func TestContextRewriteWrapsMatchedPhrase(t *testing.T) {
	tab := symtab.New()
	toks := []string{"HEY", "I'M", "HERE"}
	tab.AddSymbols(toks)
	rules := []RewriteRule{
		{Tag: "<RULE_000000>", Phrase: []int32{tab.MustFind("I'M")}},
	}
	got := ContextRewrite(tab, toks, rules)
	want := []string{"HEY", "<RULE_000000>", "I'M", "<RULE_000000>", "HERE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestContextRewritePrefersLongerMatch(t *testing.T) {
	tab := symtab.New()
	toks := []string{"GOING", "TO", "LEAVE"}
	tab.AddSymbols(toks)
	rules := []RewriteRule{
		{Tag: "<RULE_SHORT>", Phrase: []int32{tab.MustFind("GOING")}},
		{Tag: "<RULE_LONG>", Phrase: []int32{tab.MustFind("GOING"), tab.MustFind("TO")}},
	}
	got := ContextRewrite(tab, toks, rules)
	want := []string{"<RULE_LONG>", "GOING", "TO", "<RULE_LONG>", "LEAVE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestContextRewritePrefersLowestRuleIDOnTie(t *testing.T) {
	tab := symtab.New()
	toks := []string{"FOO", "BAR"}
	tab.AddSymbols(toks)
	rules := []RewriteRule{
		{Tag: "<RULE_000000>", Phrase: []int32{tab.MustFind("FOO")}},
		{Tag: "<RULE_000001>", Phrase: []int32{tab.MustFind("FOO")}},
	}
	got := ContextRewrite(tab, toks, rules)
	want := []string{"<RULE_000000>", "FOO", "<RULE_000000>", "BAR"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestContextRewriteNoMatchPassesThrough(t *testing.T) {
	tab := symtab.New()
	toks := []string{"HEY", "THERE"}
	tab.AddSymbols(toks)
	got := ContextRewrite(tab, toks, nil)
	if !reflect.DeepEqual(got, toks) {
		t.Errorf("got %v", got)
	}
}
