/*
Package tokenize implements the two tokenization modes of spec §4.1:
whitespace-split, or character-split after whitespace stripping.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package tokenize

import "strings"

// Mode selects a tokenization strategy.
type Mode int

const (
	// Whitespace splits on any run of whitespace after trimming.
	Whitespace Mode = iota
	// Char strips spaces, then yields one rune per token.
	Char
)

// ParseMode maps the CLI spelling of a tokenizer mode (spec §6:
// --tokenizer whitespace|char) to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "whitespace", "":
		return Whitespace, true
	case "char":
		return Char, true
	default:
		return Whitespace, false
	}
}

// Tokenize splits text into an ordered sequence of non-empty, whitespace-free
// tokens, per the selected Mode.
func Tokenize(text string, mode Mode) []string {
	switch mode {
	case Char:
		return tokenizeChar(text)
	default:
		return tokenizeWhitespace(text)
	}
}

func tokenizeWhitespace(text string) []string {
	fields := strings.Fields(text) // splits on runs of whitespace, trims
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func tokenizeChar(text string) []string {
	stripped := strings.Join(strings.Fields(text), "")
	if stripped == "" {
		return nil
	}
	toks := make([]string, 0, len(stripped))
	for _, r := range stripped {
		toks = append(toks, string(r))
	}
	return toks
}

// HyphenVariants returns the extra vocabulary surfaces a token containing a
// hyphen contributes (spec §4.2): the hyphen-split parts, and the
// hyphen-removed concatenation. Returns nil for tokens without a hyphen.
func HyphenVariants(token string) (parts []string, joined string) {
	if !strings.Contains(token, "-") {
		return nil, ""
	}
	parts = strings.Split(token, "-")
	filtered := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			filtered = append(filtered, p)
		}
	}
	return filtered, strings.ReplaceAll(token, "-", "")
}
