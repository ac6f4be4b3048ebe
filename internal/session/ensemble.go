package session

import (
	"context"
	"sync"
)

// Ensemble runs N independently seeded sessions in parallel. Each session
// is built fresh by the factory, so runs share no mutable state.
type Ensemble struct {
	factory   func(seed int64) (*Session, error)
	numRuns   int
	seedStart int64
}

func NewEnsemble(factory func(seed int64) (*Session, error), numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

// Run builds and advances every session, returning them for observable
// queries. The first construction or run error wins.
func (e *Ensemble) Run(ctx context.Context, steps int, opts RunOpts) ([]*Session, error) {
	sessions := make([]*Session, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			sess, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}
			sessions[idx] = sess
			errs[idx] = sess.Run(ctx, steps, opts)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return sessions, nil
}
