package dbx

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds how many blocking store operations run at once. The generation
// flow is dispatched concurrently by the host shell; funnelling every
// DB-touching step through a Pool keeps a burst of requests from piling an
// unbounded number of blocking calls onto the sqlite handle.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a Pool admitting at most n concurrent calls. n < 1 is
// treated as 1.
func NewPool(n int64) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(n)}
}

// Run acquires a slot (waiting if the pool is full, aborting if ctx is
// cancelled first) and invokes fn.
func (p *Pool) Run(ctx context.Context, fn func() error) error {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	return fn()
}
