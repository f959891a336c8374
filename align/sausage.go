package align

import (
	"github.com/asrscore/asrscore/fst"
	"github.com/asrscore/asrscore/glm"
	"github.com/asrscore/asrscore/symtab"
	"github.com/asrscore/asrscore/tokenize"
)

// expandSausage turns a tagged token stream (spec §4.3's IR: ordinary tokens
// interspersed with paired rule-tag markers) into the "sausage" hyp_fst of
// spec §4.4: one segment FST per rule span or plain token, concatenated.
func expandSausage(tab *symtab.Table, table *glm.Table, mode tokenize.Mode, tagged []string) *fst.Fst {
	var segments []*fst.Fst
	for i := 0; i < len(tagged); {
		tok := tagged[i]
		if rule, ok := table.Rule(tok); ok {
			j := i + 1
			for j < len(tagged) && tagged[j] != tok {
				j++
			}
			matched := tagged[i+1 : j]
			segments = append(segments, ruleSegment(tab, rule, matched, mode))
			i = j + 1
			continue
		}
		segments = append(segments, plainSegment(tab, tok))
		i++
	}
	return fst.Concat(tab, segments...)
}

// ruleSegment builds the alternation FST of spec §4.4's rule segment: the
// matched phrase literally, plus every other phrase of the rule in its
// token-by-token auxiliary ("primed") form.
func ruleSegment(tab *symtab.Table, rule glm.Rule, matched []string, mode tokenize.Mode) *fst.Fst {
	branches := []*fst.Fst{literalAcceptor(tab, matched)}
	matchedIdx := -1
	for idx, phrase := range rule.Phrases {
		if phraseEqual(tokenize.Tokenize(phrase, mode), matched) {
			matchedIdx = idx
			break
		}
	}
	for idx, phrase := range rule.Phrases {
		if idx == matchedIdx {
			continue
		}
		branches = append(branches, auxAcceptor(tab, tokenize.Tokenize(phrase, mode)))
	}
	return fst.Union(tab, branches...)
}

// plainSegment builds the alternation FST of spec §4.4's plain segment: the
// literal token, plus, when it contains a hyphen, its hyphen-split auxiliary
// parts and its hyphen-removed auxiliary concatenation.
func plainSegment(tab *symtab.Table, tok string) *fst.Fst {
	branches := []*fst.Fst{literalAcceptor(tab, []string{tok})}
	if parts, joined := tokenize.HyphenVariants(tok); parts != nil {
		branches = append(branches, auxAcceptor(tab, parts))
		branches = append(branches, auxAcceptor(tab, []string{joined}))
	}
	return fst.Union(tab, branches...)
}

func literalAcceptor(tab *symtab.Table, toks []string) *fst.Fst {
	ids := make([]int32, len(toks))
	for i, t := range toks {
		ids[i] = tab.MustFind(t)
	}
	return fst.Acceptor(tab, ids)
}

// auxAcceptor builds a linear acceptor over the auxiliary ("t#") forms of
// toks, which the edit transducer's auxiliary extension admits for free
// against the corresponding plain reference tokens (spec §4.5).
func auxAcceptor(tab *symtab.Table, toks []string) *fst.Fst {
	ids := make([]int32, len(toks))
	for i, t := range toks {
		ids[i] = tab.MustFind(symtab.Aux(t))
	}
	return fst.Acceptor(tab, ids)
}

func phraseEqual(a, b []string) bool {
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
