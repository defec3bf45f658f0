// Package queue runs background jobs. Jobs are registered by type name,
// serialized to JSON, pushed through a Driver, and picked up by workers.
//
//	queue.Register("jobs.PickupAccepted", func() queue.Job { return &PickupAccepted{} })
//	queue.Dispatch(&PickupAccepted{PickupID: 7})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ecotrackhq/ecotrack/pkg/logger"
	"github.com/ecotrackhq/ecotrack/pkg/metrics"
)

// Job is any unit of work the queue can run.
type Job interface {
	// Handle does the work. A non-nil error triggers a retry.
	Handle() error
}

// FailedJob records a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver moves serialized jobs in and out of the backing store.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// envelope wraps the job payload with its registered type name so the
// worker side knows what to rebuild.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Manager ties a driver to the job registry and the worker loop.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the backing store, typically for Redis at boot.
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry caps attempts per job before it lands in FailedJobs.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register maps a type name to a constructor. Every job type must be
// registered at boot or workers will drop its payloads.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

// Dispatch serializes job and pushes it for immediate processing.
func Dispatch(job Job) error {
	return defaultManager.push(job)
}

// DispatchAfter pushes job once delay elapses. The delay lives in a
// goroutine, so it does not survive a restart.
func DispatchAfter(job Job, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

func (m *Manager) push(job Job) error {
	typeName := fmt.Sprintf("%T", job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}
	env, err := json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()
	return d.Push(env)
}

// StartWorkers runs n worker goroutines until ctx is cancelled.
func StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		go defaultManager.work(ctx)
	}
	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.mu.RLock()
		d := m.driver
		m.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}
		m.process(raw)
	}
}

func (m *Manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()
	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}
	m.runWithRetry(job, env.Type)
}

func (m *Manager) runWithRetry(job Job, typeName string) {
	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		err := job.Handle()
		if err == nil {
			metrics.RecordQueueJob(typeName, "success", start)
			logger.Info("queue: job processed", "type", typeName)
			return
		}
		lastErr = err
		logger.Warn("queue: job failed, retrying",
			"type", typeName, "attempt", attempt, "error", err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}

	metrics.RecordQueueJob(typeName, "failed", start)
	m.persistFailed(job, typeName, lastErr, m.maxRetry)
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

// FailedJobs returns a copy of the in-memory failure list.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
