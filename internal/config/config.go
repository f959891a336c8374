/*
Package config holds the run-wide knobs of a scoring run, mirroring the way
gorgo threads global switches through github.com/npillmayer/schuko/gconf
(see lr/earley/parsetree.go's `gconf.GetBool("panic-on-parser-stuck")`)
instead of ad-hoc globals.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2026 The asrscore Authors.
*/
package config

import "github.com/npillmayer/schuko/gconf"

// Costs are the unit edit costs of spec §4.5. Defaults: 1.0 / 1.0 / 1.0.
type Costs struct {
	Insert     float64
	Delete     float64
	Substitute float64
}

// DefaultCosts returns the spec-mandated defaults.
func DefaultCosts() Costs {
	return Costs{Insert: 1.0, Delete: 1.0, Substitute: 1.0}
}

// Run is the full configuration of one scoring run.
type Run struct {
	Costs       Costs
	Bound       int    // max non-match edits per alignment; 0 = unbounded (spec §4.5)
	TokenizeMode string // "whitespace" or "char" (spec §6)
	LogEvery    int    // progress logging interval in utterances (spec §6, default 500)
}

// DefaultRun returns the spec's default run configuration.
func DefaultRun() Run {
	return Run{
		Costs:        DefaultCosts(),
		Bound:        0,
		TokenizeMode: "whitespace",
		LogEvery:     500,
	}
}

// gconf switch names, registered once via Init.
const (
	// PanicOnEmptyLattice controls whether an empty composition lattice
	// (spec §7: "fatal; indicates a vocabulary/tagger bug") panics instead of
	// being returned as an error. Off by default: the core returns an error
	// unless this key is set to true in the gconf configuration, which gives
	// a stack trace while debugging a tagger/vocabulary problem.
	PanicOnEmptyLattice = "asrscore-panic-on-empty-lattice"
)

// PanicOnEmptyLatticeEnabled reports whether the empty-lattice switch is
// enabled. Unset (the default) behaves as false, matching gconf.GetBool's
// documented behaviour for unknown keys.
func PanicOnEmptyLatticeEnabled() bool {
	return gconf.GetBool(PanicOnEmptyLattice)
}
