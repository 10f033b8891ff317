// Package testutil holds helpers shared by package tests.
package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "govos/pkg/domain-errors"
)

// ConcurrentResult counts how racing calls ended.
type ConcurrentResult struct {
	Successes int32
	Errors    int32
	Conflicts int32
	NotFounds int32
}

func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.Conflicts + r.NotFounds
}

// RunConcurrent releases n goroutines at once, each calling fn with its
// index, and tallies the results. Conflict and invalid-state errors both
// count as Conflicts since either means the call lost the race.
func RunConcurrent(n int, fn func(idx int) error) *ConcurrentResult {
	var (
		wg                                  sync.WaitGroup
		successes, errs, conflicts, missing atomic.Int32
	)
	gate := make(chan struct{})
	tally := func(err error) {
		switch code := dErrors.CodeOf(err); {
		case err == nil:
			successes.Add(1)
		case code == dErrors.CodeConflict, code == dErrors.CodeInvalidState:
			conflicts.Add(1)
		case code == dErrors.CodeNotFound:
			missing.Add(1)
		default:
			errs.Add(1)
		}
	}

	wg.Add(n)
	for i := range n {
		go func() {
			defer wg.Done()
			<-gate
			tally(fn(i))
		}()
	}
	close(gate)
	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Errors:    errs.Load(),
		Conflicts: conflicts.Load(),
		NotFounds: missing.Load(),
	}
}
