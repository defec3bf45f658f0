package queue

import "context"

// MemoryDriver queues jobs in a buffered channel. It backs dev setups
// without Redis and the queue tests; jobs do not survive a restart.
type MemoryDriver struct {
	ch chan []byte
}

// NewMemoryDriver returns a driver buffering up to 1000 jobs. Push
// blocks once the buffer is full.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, 1000)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	d.ch <- payload
	return nil
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
