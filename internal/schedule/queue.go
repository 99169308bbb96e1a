// Package schedule coalesces deferred work into ticks. Work is always run on
// the goroutine calling Flush, so callers keep a single threaded model.
package schedule

import (
	"time"

	"golang.org/x/exp/slices"
)

type task struct {
	key string
	fn  func()
}

// Queue collects keyed tasks until the next Flush. Deferring a task under a
// key that is already pending replaces the pending task, so only the latest
// state is observed when the tick runs.
type Queue struct {
	delay   time.Duration
	timer   *time.Timer
	ready   chan struct{}
	pending []task
}

// NewQueue creates a queue. With a non zero delay every Defer (re)arms a
// timer and Ready is signalled once the queue has been idle for delay. With
// zero delay the host is expected to call Flush at the end of its own tick.
func NewQueue(delay time.Duration) *Queue {
	return &Queue{
		delay: delay,
		ready: make(chan struct{}, 1),
	}
}

func (q *Queue) SetDelay(delay time.Duration) {
	q.delay = delay
}

// Defer schedules fn under key.
func (q *Queue) Defer(key string, fn func()) {
	idx := slices.IndexFunc(q.pending, func(t task) bool { return t.key == key })
	if idx >= 0 {
		q.pending[idx].fn = fn
	} else {
		q.pending = append(q.pending, task{key: key, fn: fn})
	}

	if q.delay > 0 {
		q.arm()
	}
}

func (q *Queue) arm() {
	if q.timer == nil {
		q.timer = time.AfterFunc(q.delay, q.signal)
		return
	}
	q.timer.Reset(q.delay)
}

func (q *Queue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready is signalled when a timed queue has work to flush.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Pending returns the number of tasks waiting for the next flush.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// Flush runs the pending tasks in the order their keys were first deferred.
// Tasks deferred while flushing run in the next tick.
func (q *Queue) Flush() int {
	if q.timer != nil {
		q.timer.Stop()
	}
	tasks := q.pending
	q.pending = nil
	for _, t := range tasks {
		t.fn()
	}
	return len(tasks)
}
