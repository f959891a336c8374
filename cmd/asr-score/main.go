/*
asr-score scores an ASR hypothesis file against a reference transcription
using a GLM-aware edit-distance aligner (spec §6).

Usage:

	asr-score --ref <path> --hyp <path> --glm <path>
	          [--tokenizer whitespace|char] [--logk <int>]
	          <result_file>

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"unicode"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/asrscore/asrscore"
	"github.com/asrscore/asrscore/align"
	"github.com/asrscore/asrscore/edit"
	"github.com/asrscore/asrscore/glm"
	"github.com/asrscore/asrscore/internal/config"
	"github.com/asrscore/asrscore/internal/trace"
	"github.com/asrscore/asrscore/stats"
	"github.com/asrscore/asrscore/symtab"
	"github.com/asrscore/asrscore/tokenize"
)

func main() {
	refPath := flag.String("ref", "", "reference Kaldi-archive text file")
	hypPath := flag.String("hyp", "", "hypothesis Kaldi-archive text file")
	glmPath := flag.String("glm", "", "GLM rule CSV")
	tokenizerFlag := flag.String("tokenizer", "whitespace", "whitespace|char")
	logk := flag.Int("logk", 500, "log progress every N utterances")
	flag.Parse()

	gtrace.CoreTracer = gologadapter.New()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)

	if *refPath == "" || *hypPath == "" || *glmPath == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: asr-score --ref <path> --hyp <path> --glm <path> [--tokenizer whitespace|char] [--logk N] <result_file>")
		os.Exit(1)
	}
	resultPath := flag.Arg(0)

	mode, ok := tokenize.ParseMode(*tokenizerFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "asr-score: unknown tokenizer %q\n", *tokenizerFlag)
		os.Exit(1)
	}
	run := config.DefaultRun()
	run.TokenizeMode = *tokenizerFlag
	run.LogEvery = *logk

	refs, err := loadUtterances(*refPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asr-score: loading reference file: %v\n", err)
		os.Exit(1)
	}
	hyps, err := loadUtterances(*hypPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asr-score: loading hypothesis file: %v\n", err)
		os.Exit(1)
	}
	glmFile, err := os.Open(*glmPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asr-score: opening GLM file: %v\n", err)
		os.Exit(1)
	}
	table, err := glm.Load(glmFile)
	glmFile.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "asr-score: loading GLM rules: %v\n", err)
		os.Exit(1)
	}

	vocab := align.Vocabulary(mode, table, refs, hyps)
	tab := symtab.New()
	tab.AddSymbols(vocab)

	tagger, err := glm.Build(tab, table, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asr-score: compiling GLM tagger: %v\n", err)
		os.Exit(1)
	}
	editTr := edit.Build(tab, vocab, run.Costs, run.Bound)
	aligner := align.New(tab, table, tagger, editTr, mode)

	out, err := os.Create(resultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asr-score: creating result file: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	overall := &stats.ErrorStats{}
	overall.NumRefUtts = refs.Len()
	overall.NumHypUtts = hyps.Len()

	pool := align.NewPool(aligner, runtime.GOMAXPROCS(0))
	var evalUIDs []string
	for _, uid := range hyps.UIDs() {
		ref, ok := refs.Get(uid)
		if !ok {
			overall.NumHypWithoutRef++
			trace.Core().Infof("asr-score: no reference for hyp uid %q, skipping", uid)
			continue
		}
		if strings.TrimSpace(ref.Text) == "" {
			trace.Core().Infof("asr-score: empty reference text for uid %q, skipping", uid)
			continue
		}
		evalUIDs = append(evalUIDs, uid)
	}

	results := pool.Run(evalUIDs, func(uid string) string {
		u, _ := refs.Get(uid)
		return u.Text
	}, func(uid string) string {
		u, _ := hyps.Get(uid)
		return u.Text
	})

	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "asr-score: fatal error aligning uid %q: %v\n", r.UID, r.Err)
			os.Exit(1)
		}
		overall.Add(r.Alignment)

		utt := &stats.ErrorStats{}
		utt.Add(r.Alignment)
		ter, _ := utt.TokenErrorRate()
		mter, _ := utt.ModifiedTokenErrorRate()
		c, s, ins, d := r.Alignment.Counts()

		line := struct {
			UID   string  `json:"uid"`
			Score float64 `json:"score"`
			TER   float64 `json:"TER"`
			MTER  float64 `json:"mTER"`
			Cor   int     `json:"cor"`
			Sub   int     `json:"sub"`
			Ins   int     `json:"ins"`
			Del   int     `json:"del"`
		}{r.UID, -r.Cost, round2(ter), round2(mter), c, s, ins, d}
		enc, _ := json.Marshal(line)
		fmt.Fprintln(writer, string(enc))

		hypU, _ := hyps.Get(r.UID)
		fmt.Fprint(writer, stats.PrettyPrint(hypU.Text, r.Alignment))

		if run.LogEvery > 0 && (i+1)%run.LogEvery == 0 {
			trace.Core().Infof("asr-score: processed %d/%d utterances", i+1, len(results))
		}
	}

	ter, terErr := overall.TokenErrorRate()
	if terErr != nil {
		fmt.Fprintf(os.Stderr, "asr-score: %v\n", terErr)
		os.Exit(1)
	}
	mter, _ := overall.ModifiedTokenErrorRate()
	ser, _ := overall.SentenceErrorRate()

	fmt.Fprintf(writer, "Overall Statistics: C=%d S=%d I=%d D=%d TER=%.2f mTER=%.2f SER=%.2f\n",
		overall.C, overall.S, overall.I, overall.D, ter, mter, ser)

	summary, _ := json.Marshal(overall)
	fmt.Println(string(summary))
	fmt.Printf("%%WER %.2f [ %d / %d ]\n", ter, overall.S+overall.I+overall.D, overall.C+overall.S+overall.D)
	fmt.Printf("%%SER %.2f [ %d / %d ]\n", ser, overall.NumUttsWithError, overall.NumEvalUtts)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// loadUtterances parses a Kaldi-archive text file: one "UID TEXT" record per
// line, TEXT possibly empty (spec §6). Duplicate uids are fatal.
func loadUtterances(path string) (*asrscore.UtteranceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	set := asrscore.NewUtteranceSet()
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		line = strings.TrimRight(line, "\r\n")
		uid, text := line, ""
		if idx := strings.IndexFunc(line, unicode.IsSpace); idx >= 0 {
			uid = line[:idx]
			text = strings.TrimSpace(line[idx:])
		}
		if err := set.Add(uid, text); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
