/*
Package align derives the evaluation vocabulary (spec §4.2) and performs the
per-utterance GLM-tag/sausage-expand/compose/extract pipeline (spec §4.4,
§4.6) that turns a (ref, hyp) pair into an Alignment.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package align

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/asrscore/asrscore"
	"github.com/asrscore/asrscore/glm"
	"github.com/asrscore/asrscore/internal/trace"
	"github.com/asrscore/asrscore/tokenize"
)

func tracer() tracing.Trace {
	return trace.For("asrscore.align")
}

// Vocabulary derives the base vocabulary V of spec §4.2: the union of every
// token tokenized from the given utterance sets and GLM phrases, plus, for
// any token containing a hyphen, its hyphen-split parts and its
// hyphen-removed concatenation.
func Vocabulary(mode tokenize.Mode, table *glm.Table, sets ...*asrscore.UtteranceSet) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tok string) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	addWithVariants := func(tok string) {
		add(tok)
		if parts, joined := tokenize.HyphenVariants(tok); parts != nil {
			for _, p := range parts {
				add(p)
			}
			add(joined)
		}
	}

	for _, set := range sets {
		set.Each(func(u asrscore.Utterance) {
			for _, tok := range tokenize.Tokenize(u.Text, mode) {
				addWithVariants(tok)
			}
		})
	}
	if table != nil {
		for _, tok := range table.Vocabulary(mode) {
			addWithVariants(tok)
		}
	}
	tracer().Debugf("align: derived vocabulary of %d tokens", len(out))
	return out
}
