/*
Package glm loads Global Mapping rule tables — CSV files of interchangeable
surface phrases — and compiles them into a tagger that marks matched rule
phrases in a hypothesis token stream with paired rule-tag markers (spec
§4.3).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package glm

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/asrscore/asrscore/internal/trace"
	"github.com/asrscore/asrscore/tokenize"
)

func tracer() tracing.Trace {
	return trace.For("asrscore.glm")
}

// Rule is one GLM rule: a set of mutually interchangeable phrases (spec §3).
type Rule struct {
	ID      string // "<RULE_000001>"-form, file-order, zero-padded 6 digits
	Phrases []string
}

// Table is an insertion-ordered GLM rule table (spec §3 GLMTable).
type Table struct {
	rules []Rule
}

// RuleID formats a zero-based file-order index as a rule id.
func RuleID(index int) string {
	return fmt.Sprintf("<RULE_%06d>", index)
}

// Load parses a GLM CSV stream: one rule per line, each line a
// comma-separated list of phrases, each phrase a whitespace-joined token
// sequence, trimmed of surrounding whitespace (spec §6). Rule ids are
// assigned by CSV record index, which equals the line index when the file
// has no blank lines: blank lines are skipped by the CSV reader and take no
// index. A record yielding zero non-empty phrases is skipped but still takes
// an index.
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rules may have a variable number of phrases
	cr.TrimLeadingSpace = true

	t := &Table{}
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("glm: parsing rule CSV at line %d: %w", line+1, err)
		}
		var phrases []string
		for _, p := range record {
			p = strings.TrimSpace(p)
			if p != "" {
				phrases = append(phrases, p)
			}
		}
		if len(phrases) > 0 {
			t.rules = append(t.rules, Rule{ID: RuleID(line), Phrases: phrases})
			tracer().Debugf("glm: loaded rule %s with %d phrases", t.rules[len(t.rules)-1].ID, len(phrases))
		}
		line++
	}
	return t, nil
}

// Rules returns the table's rules in file order.
func (t *Table) Rules() []Rule { return t.rules }

// Len reports the number of rules.
func (t *Table) Len() int { return len(t.rules) }

// Vocabulary returns every distinct token appearing in any rule phrase,
// tokenized with mode (spec §4.2: "for each GLM phrase, tokenize it").
func (t *Table) Vocabulary(mode tokenize.Mode) []string {
	seen := map[string]bool{}
	var out []string
	for _, rule := range t.rules {
		for _, phrase := range rule.Phrases {
			for _, tok := range tokenize.Tokenize(phrase, mode) {
				if !seen[tok] {
					seen[tok] = true
					out = append(out, tok)
				}
			}
		}
	}
	return out
}
