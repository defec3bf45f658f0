package queue_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrackhq/ecotrack/pkg/queue"
)

var handled atomic.Int32

type pickupReminderJob struct {
	PickupID uint
}

func (j *pickupReminderJob) Handle() error {
	handled.Add(1)
	return nil
}

type brokenJob struct{}

func (j *brokenJob) Handle() error {
	return errors.New("smtp unreachable")
}

func init() {
	ctx := context.Background()
	queue.StartWorkers(ctx, 2)

	queue.Register("*queue_test.pickupReminderJob", func() queue.Job { return &pickupReminderJob{} })
	queue.Register("*queue_test.brokenJob", func() queue.Job { return &brokenJob{} })
}

func TestDispatchedJobIsHandled(t *testing.T) {
	before := handled.Load()
	require.NoError(t, queue.Dispatch(&pickupReminderJob{PickupID: 7}))

	deadline := time.After(2 * time.Second)
	for handled.Load() == before {
		select {
		case <-deadline:
			t.Fatal("job was never handled")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestFailingJobLandsInFailedJobs(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	require.NoError(t, queue.Dispatch(&brokenJob{}))

	// One attempt plus the one-second backoff.
	time.Sleep(2500 * time.Millisecond)

	assert.NotEmpty(t, queue.FailedJobs())
}

func TestDispatchIsSafeFromManyGoroutines(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = queue.Dispatch(&pickupReminderJob{})
		}()
	}
	wg.Wait()
}
