package fst

import "github.com/asrscore/asrscore/symtab"

// RewriteRule is one (tag, phrase) alternative for ContextRewrite: a tagged
// span in the input matching phrase exactly gets wrapped in paired tag
// markers.
type RewriteRule struct {
	Tag    string
	Phrase []int32
}

// ContextRewrite is the tractable substitute for a generic closure-based
// context-dependent rewrite transducer (spec §4.3, §9): since §4.3's rewrite
// uses unconditional left and right context, a left-to-right greedy scan
// choosing, at each position, the longest matching rule phrase — ties
// broken by the rule's position in rules — produces the same tagged output
// a shortest-path extraction over the union-of-phrase-acceptors construction
// would.
//
// tokens is the raw surface token sequence (not yet symbol ids); rules must
// already have their phrases resolved to symbol ids via the same table used
// to encode tokens.
func ContextRewrite(tab *symtab.Table, tokens []string, rules []RewriteRule) []string {
	ids := make([]int32, len(tokens))
	for i, t := range tokens {
		ids[i] = tab.MustFind(t)
	}

	var out []string
	for i := 0; i < len(ids); {
		tag, length, matched := bestMatch(ids[i:], rules)
		if !matched {
			out = append(out, tokens[i])
			i++
			continue
		}
		out = append(out, tag)
		out = append(out, tokens[i:i+length]...)
		out = append(out, tag)
		i += length
	}
	return out
}

// bestMatch finds the longest rule phrase matching a prefix of ids; among
// equal-length matches, the earliest rule in declaration order wins.
func bestMatch(ids []int32, rules []RewriteRule) (tag string, length int, ok bool) {
	for _, r := range rules {
		if len(r.Phrase) <= length || len(r.Phrase) > len(ids) {
			continue
		}
		if phraseEqual(ids[:len(r.Phrase)], r.Phrase) {
			tag, length, ok = r.Tag, len(r.Phrase), true
		}
	}
	return
}

func phraseEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
