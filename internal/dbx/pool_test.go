package dbx

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_BoundsConcurrency(t *testing.T) {
	p := NewPool(2)
	ctx := context.Background()

	var current, peak int64
	var wg sync.WaitGroup

	release := make(chan struct{})
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.Run(ctx, func() error {
				n := atomic.AddInt64(&current, 1)
				for {
					old := atomic.LoadInt64(&peak)
					if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
						break
					}
				}
				<-release
				atomic.AddInt64(&current, -1)
				return nil
			})
		}()
	}

	close(release)
	wg.Wait()

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

func TestPool_CancelledContext(t *testing.T) {
	p := NewPool(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Run(ctx, func() error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})
	require.Error(t, err)
}
