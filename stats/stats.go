/*
Package stats accumulates per-utterance Alignments into corpus-wide
ErrorStats, computes TER/mTER/SER (spec §4.8), and renders the column-aligned
HYP#/REF/EDIT pretty-print of an Alignment (spec §4.7).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package stats

import (
	"fmt"

	"github.com/asrscore/asrscore"
)

// ErrorStats is the corpus-level accumulator of spec §3's ErrorStats: counts
// plus derived rates.
type ErrorStats struct {
	NumRefUtts       int
	NumHypUtts       int
	NumEvalUtts      int
	NumHypWithoutRef int
	C, S, I, D       int
	NumUttsWithError int
}

// Add folds one utterance's Alignment into the accumulator (spec §4.6 step
// 6).
func (e *ErrorStats) Add(alignment asrscore.Alignment) {
	c, s, i, d := alignment.Counts()
	e.C += c
	e.S += s
	e.I += i
	e.D += d
	e.NumEvalUtts++
	if s+i+d > 0 {
		e.NumUttsWithError++
	}
}

// TokenErrorRate is spec §4.8's TER: 100·(S+D+I)/(C+S+D), the ref-length
// denominator. Returns an error if the denominator is zero (spec §7: "fatal,
// division undefined").
func (e *ErrorStats) TokenErrorRate() (float64, error) {
	refLen := e.C + e.S + e.D
	if refLen == 0 {
		return 0, fmt.Errorf("stats: token error rate undefined, zero reference length")
	}
	return 100 * float64(e.S+e.D+e.I) / float64(refLen), nil
}

// ModifiedTokenErrorRate is spec §4.8's mTER: 100·(S+D+I)/max(C+S+D,C+S+I).
func (e *ErrorStats) ModifiedTokenErrorRate() (float64, error) {
	refLen := e.C + e.S + e.D
	hypLen := e.C + e.S + e.I
	denom := refLen
	if hypLen > denom {
		denom = hypLen
	}
	if denom == 0 {
		return 0, fmt.Errorf("stats: modified token error rate undefined, zero length")
	}
	return 100 * float64(e.S+e.D+e.I) / float64(denom), nil
}

// SentenceErrorRate is spec §4.8's SER: 100·num_utts_with_error/num_eval_utts.
// Undefined (spec §7) when no utterances were evaluated.
func (e *ErrorStats) SentenceErrorRate() (float64, error) {
	if e.NumEvalUtts == 0 {
		return 0, fmt.Errorf("stats: sentence error rate undefined, no utterances evaluated")
	}
	return 100 * float64(e.NumUttsWithError) / float64(e.NumEvalUtts), nil
}
