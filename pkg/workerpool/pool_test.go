package workerpool_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/pkg/workerpool"
)

func TestPoolRunsEverySubmittedTask(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var ran atomic.Int64

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		require.NoError(t, pool.SubmitWait(func() {
			defer wg.Done()
			ran.Add(1)
		}))
	}
	wg.Wait()

	assert.EqualValues(t, n, ran.Load())
}

func TestSubmitReturnsErrPoolFull(t *testing.T) {
	pool := workerpool.New(1)
	defer pool.Shutdown()

	release := make(chan struct{})
	started := make(chan struct{})

	// Park the only worker so nothing drains the queue.
	_ = pool.SubmitWait(func() {
		close(started)
		<-release
	})
	<-started

	// The queue buffer is twice the worker count, so two more fit.
	_ = pool.Submit(func() {})
	_ = pool.Submit(func() {})

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolFull)

	close(release)
}

func TestSubmitAfterShutdown(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()

	assert.ErrorIs(t, pool.Submit(func() {}), workerpool.ErrPoolClosed)
}

func TestPanickingTaskDoesNotKillWorker(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	_ = pool.SubmitWait(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	done := make(chan struct{})
	_ = pool.SubmitWait(func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up a task after the panic")
	}
}

func TestShutdownWaitsForInFlightTasks(t *testing.T) {
	pool := workerpool.New(10)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		_ = pool.SubmitWait(func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
		})
	}
	wg.Wait()

	pool.Shutdown()
}
