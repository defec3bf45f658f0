// Package schedule registers recurring tasks with a fluent builder and
// dispatches them from a single background loop.
//
//	schedule.EveryMinute().Name("stats:refresh").Run(refresh)
//	schedule.Daily().WithoutOverlapping().Run(pruneSessions)
//	schedule.Cron("30 3 * * *").Run(archiveOrders)
package schedule

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ecotrackhq/ecotrack/pkg/logger"
)

// Task is a scheduled unit of work.
type Task func()

type entry struct {
	id         string
	interval   time.Duration
	cronExpr   string
	task       Task
	lastRun    time.Time
	running    bool
	noOverlap  bool
	beforeHook Task
	afterHook  Task
	mu         sync.Mutex
}

// Schedule configures one entry before Run registers it.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every starts a builder for an n-unit interval.
func Every(n int) *freqBuilder { return &freqBuilder{n: n} }

// EveryMinute is shorthand for Every(1).Minutes().
func EveryMinute() *Schedule { return Every(1).Minutes() }

// Hourly runs once per hour.
func Hourly() *Schedule { return Every(1).Hours() }

// Daily runs once per day.
func Daily() *Schedule { return Every(24).Hours() }

// Weekly runs once per week.
func Weekly() *Schedule { return Every(7).Days() }

// Cron schedules by a five-field expression (minute hour dom month dow).
func Cron(expr string) *Schedule {
	return &Schedule{e: &entry{cronExpr: expr}}
}

type freqBuilder struct{ n int }

func (f *freqBuilder) Seconds() *Schedule { return intervalSchedule(time.Duration(f.n) * time.Second) }
func (f *freqBuilder) Minutes() *Schedule { return intervalSchedule(time.Duration(f.n) * time.Minute) }
func (f *freqBuilder) Hours() *Schedule   { return intervalSchedule(time.Duration(f.n) * time.Hour) }
func (f *freqBuilder) Days() *Schedule {
	return intervalSchedule(time.Duration(f.n) * 24 * time.Hour)
}

func intervalSchedule(d time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: d}}
}

// WithoutOverlapping skips a tick while the previous run is still going.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Before adds a hook that fires ahead of the task.
func (s *Schedule) Before(fn Task) *Schedule {
	s.e.beforeHook = fn
	return s
}

// After adds a hook that fires once the task returns, panics included.
func (s *Schedule) After(fn Task) *Schedule {
	s.e.afterHook = fn
	return s
}

// Name sets the identifier used in log lines and the CLI listing.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task. Start must be called once for anything to fire.
func (s *Schedule) Run(fn Task) {
	s.e.task = fn
	regMu.Lock()
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
	regMu.Unlock()
}

// Start launches the dispatch loop. It returns immediately and stops when
// ctx is cancelled.
func Start(ctx context.Context) {
	go run(ctx)
	logger.Info("schedule: scheduler started")
}

func run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			regMu.Lock()
			current := make([]*entry, len(entries))
			copy(current, entries)
			regMu.Unlock()

			for _, e := range current {
				if e.due(now) {
					e.dispatch()
				}
			}
		}
	}
}

func (e *entry) due(now time.Time) bool {
	if e.cronExpr != "" {
		return cronMatches(e.cronExpr, now)
	}
	if e.lastRun.IsZero() {
		return true
	}
	return now.Sub(e.lastRun) >= e.interval
}

func (e *entry) dispatch() {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		defer func() {
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "id", e.id, "panic", r)
			}
			if e.afterHook != nil {
				e.afterHook()
			}
		}()

		if e.beforeHook != nil {
			e.beforeHook()
		}
		logger.Info("schedule: running task", "id", e.id)
		e.task()
	}()
}

// cronMatches evaluates a five-field expression against t. Fields accept
// "*", an exact number, "*/step", and "a-b" ranges.
func cronMatches(expr string, t time.Time) bool {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return false
	}
	vals := []int{t.Minute(), t.Hour(), t.Day(), int(t.Month()), int(t.Weekday())}
	for i, f := range fields {
		if !cronFieldMatches(f, vals[i]) {
			return false
		}
	}
	return true
}

func cronFieldMatches(field string, val int) bool {
	switch {
	case field == "*":
		return true
	case strings.HasPrefix(field, "*/"):
		var step int
		fmt.Sscanf(field[2:], "%d", &step)
		return step > 0 && val%step == 0
	case strings.Contains(field, "-"):
		var lo, hi int
		fmt.Sscanf(field, "%d-%d", &lo, &hi)
		return val >= lo && val <= hi
	default:
		var n int
		fmt.Sscanf(field, "%d", &n)
		return n == val
	}
}

// List describes every registered entry, one line apiece.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		freq := e.cronExpr
		if freq == "" {
			freq = e.interval.String()
		}
		out = append(out, fmt.Sprintf("%s  [%s]", e.id, freq))
	}
	return out
}
