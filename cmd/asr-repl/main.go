/*
asr-repl is an interactive inspector for a GLM rule table and the aligner it
drives: load a GLM CSV, then enter "ref text | hyp text" lines and see the
compiled tagger's output and the resulting alignment, the same way T.REPL
(terex/terexlang/trepl) is a sandbox for experimenting with a compiled
grammar instead of re-running a whole pipeline from the command line every
time.

Usage:

	asr-repl --glm <path> [--tokenizer whitespace|char]

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/asrscore/asrscore"
	"github.com/asrscore/asrscore/align"
	"github.com/asrscore/asrscore/edit"
	"github.com/asrscore/asrscore/glm"
	"github.com/asrscore/asrscore/internal/config"
	"github.com/asrscore/asrscore/stats"
	"github.com/asrscore/asrscore/symtab"
	"github.com/asrscore/asrscore/tokenize"
)

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	glmPath := flag.String("glm", "", "GLM rule CSV to load")
	tokenizerFlag := flag.String("tokenizer", "whitespace", "whitespace|char")
	flag.Parse()

	initDisplay()
	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	pterm.Info.Println("asr-repl: GLM/sausage inspector")

	mode, ok := tokenize.ParseMode(*tokenizerFlag)
	if !ok {
		pterm.Error.Printfln("unknown tokenizer %q", *tokenizerFlag)
		os.Exit(1)
	}

	table := &glm.Table{}
	if *glmPath != "" {
		f, err := os.Open(*glmPath)
		if err != nil {
			pterm.Error.Printfln("opening GLM file: %v", err)
			os.Exit(1)
		}
		table, err = glm.Load(f)
		f.Close()
		if err != nil {
			pterm.Error.Printfln("loading GLM rules: %v", err)
			os.Exit(1)
		}
	}
	pterm.Info.Printfln("loaded %d GLM rule(s)", table.Len())

	tab := symtab.New()
	tab.AddSymbols(table.Vocabulary(mode))

	tagger, err := glm.Build(tab, table, mode)
	if err != nil {
		pterm.Error.Printfln("compiling GLM tagger: %v", err)
		os.Exit(1)
	}

	repl, err := readline.New("asr-repl> ")
	if err != nil {
		pterm.Error.Printfln("%v", err)
		os.Exit(3)
	}
	defer repl.Close()

	pterm.Info.Println(`enter "REF | HYP" pairs; <ctrl>D to quit`)
	for {
		line, err := repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			pterm.Error.Printfln("%v", err)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ":rules" {
			printRules(table)
			continue
		}
		parts := strings.SplitN(line, "|", 2)
		if len(parts) != 2 {
			pterm.Error.Println(`expected "REF | HYP", or ":rules"`)
			continue
		}
		ref, hyp := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		inspect(table, tagger, mode, ref, hyp)
	}
}

// printRules renders the loaded GLM table as a tree, one branch per rule,
// one leaf per interchangeable phrase — the same pterm.DefaultTree idiom
// T.REPL uses for its "tree" built-in over an AST.
func printRules(table *glm.Table) {
	var nodes []pterm.TreeNode
	for _, rule := range table.Rules() {
		var leaves []pterm.TreeNode
		for _, p := range rule.Phrases {
			leaves = append(leaves, pterm.TreeNode{Text: p})
		}
		nodes = append(nodes, pterm.TreeNode{Text: rule.ID, Children: leaves})
	}
	root := pterm.TreeNode{Text: "GLM rules", Children: nodes}
	pterm.DefaultTree.WithRoot(root).Render()
}

// inspect tags hyp against the GLM table, then runs a full alignment against
// ref (fresh per-utterance edit transducer and vocabulary, built just-in-time
// since a REPL session explores arbitrary ref/hyp pairs, not a fixed corpus
// vocabulary), printing the tagged token stream and the resulting
// pretty-printed alignment.
func inspect(table *glm.Table, tagger *glm.Tagger, mode tokenize.Mode, ref, hyp string) {
	hypToks := tokenize.Tokenize(hyp, mode)
	tagged, err := tagger.Tag(hypToks)
	if err != nil {
		pterm.Error.Printfln("tagging: %v", err)
		return
	}
	pterm.Info.Printfln("tagged: %s", strings.Join(tagged, " "))

	refSet, hypSet := asrscore.NewUtteranceSet(), asrscore.NewUtteranceSet()
	refSet.Add("ref", ref)
	hypSet.Add("hyp", hyp)
	vocab := align.Vocabulary(mode, table, refSet, hypSet)

	tab := symtab.New()
	tab.AddSymbols(vocab)
	localTagger, err := glm.Build(tab, table, mode)
	if err != nil {
		pterm.Error.Printfln("compiling local GLM tagger: %v", err)
		return
	}
	editTr := edit.Build(tab, vocab, config.DefaultCosts(), 0)
	aligner := align.New(tab, table, localTagger, editTr, mode)

	alignment, cost, err := aligner.Align(ref, hyp)
	if err != nil {
		pterm.Error.Printfln("aligning: %v", err)
		return
	}
	c, s, i, d := alignment.Counts()
	pterm.Info.Printfln("cost=%.1f C=%d S=%d I=%d D=%d", -cost, c, s, i, d)
	fmt.Print(stats.PrettyPrint(hyp, alignment))
}
