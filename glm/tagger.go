package glm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/asrscore/asrscore/fst"
	"github.com/asrscore/asrscore/symtab"
	"github.com/asrscore/asrscore/tokenize"
)

// Tagger applies a compiled GLMTable to a hypothesis token stream, wrapping
// every matched rule phrase in paired rule-tag markers (spec §4.3).
//
// Tractability (spec §9): rather than a generic context-dependent rewrite
// over the closure of the whole symbol alphabet, each token is first
// encoded as a short decimal id (from the shared symbol table) delimited by
// "_", and lexmachine's maximal-munch DFA is used to find, at every
// position, the longest matching rule phrase (ties broken by declaration
// order — patterns are added in rule-id order, giving the spec's
// lowest-rule-index tie-break for free). This is semantically equivalent to
// the closure-based rewrite because §4.3 specifies unconditional left/right
// context.
type Tagger struct {
	tab      *symtab.Table
	table    *Table
	mode     tokenize.Mode
	lexer    *lexmachine.Lexer
	phraseOf map[int]phraseMatch // lexmachine token-type id -> matched rule/phrase
	rewrite  []fst.RewriteRule   // set instead of lexer when the DFA failed to compile
}

type phraseMatch struct {
	ruleIndex int
	rule      *Rule
	tokens    []string
}

// Build compiles a Tagger over table, encoding tokens via tab (symbols are
// added for every GLM phrase token not already present, plus each rule's
// tag marker).
func Build(tab *symtab.Table, table *Table, mode tokenize.Mode) (*Tagger, error) {
	for _, rule := range table.Rules() {
		tab.AddSymbol(rule.ID)
		for _, phrase := range rule.Phrases {
			tab.AddSymbols(tokenize.Tokenize(phrase, mode))
		}
	}

	tg := &Tagger{tab: tab, table: table, mode: mode, phraseOf: map[int]phraseMatch{}}
	lexer := lexmachine.NewLexer()

	typeID := 0
	for ruleIdx := range table.Rules() {
		rule := &table.rules[ruleIdx]
		for _, phrase := range rule.Phrases {
			toks := tokenize.Tokenize(phrase, mode)
			if len(toks) == 0 {
				continue
			}
			pattern := encodePattern(tab, toks)
			id := typeID
			typeID++
			tg.phraseOf[id] = phraseMatch{ruleIndex: ruleIdx, rule: rule, tokens: toks}
			lexer.Add([]byte(pattern), makeAction(id))
		}
	}
	// Catch-all: a single encoded token that matched no rule phrase.
	plainID := typeID
	tg.phraseOf[plainID] = phraseMatch{ruleIndex: -1}
	lexer.Add([]byte(`_[0-9]+`), makeAction(plainID))

	if err := lexer.Compile(); err != nil {
		// Tractability fallback (spec §9): if the per-phrase DFA fails to
		// compile (e.g. an adversarially large rule table), fall back to
		// the direct greedy longest-match rewrite — semantically
		// equivalent given §4.3's unconditional left/right context, just
		// without the compiled-DFA speedup.
		tracer().Errorf("glm: DFA compile failed (%v), falling back to direct context rewrite", err)
		tg.rewrite = buildRewriteRules(tab, table, mode)
		return tg, nil
	}
	tg.lexer = lexer
	return tg, nil
}

// buildRewriteRules flattens the table into fst.RewriteRule values ordered
// by rule id, for fst.ContextRewrite's greedy longest-match-then-lowest-id
// tie-break.
func buildRewriteRules(tab *symtab.Table, table *Table, mode tokenize.Mode) []fst.RewriteRule {
	var rules []fst.RewriteRule
	for ruleIdx := range table.Rules() {
		rule := table.rules[ruleIdx]
		for _, phrase := range rule.Phrases {
			toks := tokenize.Tokenize(phrase, mode)
			if len(toks) == 0 {
				continue
			}
			ids := make([]int32, len(toks))
			for i, t := range toks {
				ids[i] = tab.MustFind(t)
			}
			rules = append(rules, fst.RewriteRule{Tag: rule.ID, Phrase: ids})
		}
	}
	return rules
}

func makeAction(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// encodePattern builds the literal lexmachine regex matching the exact
// sequence of ids, "_id1_id2..._idk" — digits and underscore are not regex
// metacharacters, so no escaping is needed.
func encodePattern(tab *symtab.Table, toks []string) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteByte('_')
		b.WriteString(strconv.Itoa(int(tab.MustFind(t))))
	}
	return b.String()
}

func encodeStream(tab *symtab.Table, toks []string) []byte {
	var b strings.Builder
	for _, t := range toks {
		b.WriteByte('_')
		b.WriteString(strconv.Itoa(int(tab.AddSymbol(t))))
	}
	return []byte(b.String())
}

// Tag applies the tagger to a raw token sequence, returning the tagged
// intermediate-representation token stream of spec §4.3: ordinary tokens
// pass through unchanged; a matched rule phrase is wrapped as
// `rule_tag, phrase_tokens…, rule_tag`.
func (tg *Tagger) Tag(tokens []string) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	if tg.rewrite != nil {
		return fst.ContextRewrite(tg.tab, tokens, tg.rewrite), nil
	}
	stream := encodeStream(tg.tab, tokens)
	scanner, err := tg.lexer.Scanner(stream)
	if err != nil {
		return nil, fmt.Errorf("glm: building scanner: %w", err)
	}

	var out []string
	for {
		tok, err, eof := scanner.Next()
		for err != nil {
			ui, ok := err.(*machines.UnconsumedInput)
			if !ok {
				return nil, fmt.Errorf("glm: tagger scan error: %w", err)
			}
			// Every byte of the encoded stream is covered by either a rule
			// pattern or the catch-all single-token pattern, so this is
			// unreachable in practice; recover the way `lr/scanner`'s
			// lexmachine adapter does, by resuming past the failed span.
			scanner.TC = ui.FailTC
			tok, err, eof = scanner.Next()
		}
		if eof {
			break
		}
		lt := tok.(*lexmachine.Token)
		match := tg.phraseOf[lt.Type]
		if match.ruleIndex < 0 {
			// Plain token: decode its single id back to a surface form.
			id := decodeSingleID(string(lt.Lexeme))
			out = append(out, tg.tab.Symbol(id))
			continue
		}
		out = append(out, match.rule.ID)
		out = append(out, match.tokens...)
		out = append(out, match.rule.ID)
	}
	return out, nil
}

func decodeSingleID(lexeme string) int32 {
	n, _ := strconv.Atoi(strings.TrimPrefix(lexeme, "_"))
	return int32(n)
}

// Rule looks up a rule by id for sausage expansion (spec §4.4).
func (t *Table) Rule(id string) (Rule, bool) {
	for _, r := range t.rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
