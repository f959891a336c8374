/*
Package trace is a thin façade over github.com/npillmayer/schuko/tracing,
giving every asrscore package a `tracer()` function keyed by its own name,
the same idiom used throughout gorgo (e.g. `gorgo.lr`, `gorgo.scanner`).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package trace

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// For selects a tracer for a given package key, e.g. trace.For("asrscore.fst").
func For(key string) tracing.Trace {
	return tracing.Select(key)
}

// Core is the global tracer used for run-wide (non-package-specific) messages,
// e.g. progress reporting in cmd/asr-score.
func Core() tracing.Trace {
	return gtrace.CoreTracer
}

// Use installs a concrete tracing back-end as the global core/syntax tracers.
// Call once at program start.
func Use(t tracing.Trace) {
	gtrace.CoreTracer = t
	gtrace.SyntaxTracer = t
}
