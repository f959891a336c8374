package align

import (
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/asrscore/asrscore"
)

// Result is one utterance's alignment outcome, or an error if alignment
// failed (spec §7: an empty-lattice error is fatal to the run, but is still
// reported per-utterance here so the caller can abort with context).
type Result struct {
	UID       string
	Alignment asrscore.Alignment
	Cost      asrscore.Weight
	Err       error
}

// Pool runs Align concurrently across many (uid, ref, hyp) utterances while
// preserving spec §5's guarantees: the Aligner's shared components are only
// ever read, and results are delivered to the caller re-sorted into uid
// order regardless of completion order, so downstream accumulation and
// output stay deterministic.
type Pool struct {
	aligner *Aligner
	workers int
}

// NewPool creates a worker pool of the given size (at least 1) over aligner.
func NewPool(aligner *Aligner, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{aligner: aligner, workers: workers}
}

// job is one unit of work submitted to the pool.
type job struct {
	uid, ref, hyp string
}

// Run aligns every job, fanning out across the pool's workers, and returns
// results sorted by uid (spec §5(c): "per-utterance output stream preserves
// sorted-uid order").
func (p *Pool) Run(uids []string, refOf, hypOf func(uid string) string) []Result {
	jobs := make(chan job)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				alignment, cost, err := p.aligner.Align(j.ref, j.hyp)
				results <- Result{UID: j.uid, Alignment: alignment, Cost: cost, Err: err}
			}
		}()
	}

	go func() {
		for _, uid := range uids {
			jobs <- job{uid: uid, ref: refOf(uid), hyp: hypOf(uid)}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Results arrive in completion order, which depends on scheduling; spec
	// §5(c) requires the output stream to preserve sorted-uid order, so they
	// are collected into a treeset keyed by uid, the same ordered-set idiom
	// `lr/earley.go` uses for its goto-set worklists, here keyed by uid
	// string rather than item hash.
	byUID := map[string]Result{}
	ordered := treeset.NewWith(utils.StringComparator)
	for r := range results {
		byUID[r.UID] = r
		ordered.Add(r.UID)
	}
	out := make([]Result, 0, len(uids))
	for _, v := range ordered.Values() {
		out = append(out, byUID[v.(string)])
	}
	return out
}
