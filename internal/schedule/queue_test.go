package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCoalescing(t *testing.T) {
	q := NewQueue(0)
	var rendered []string

	for _, state := range []string{"a", "ab", "abc"} {
		state := state
		q.Defer("render", func() { rendered = append(rendered, state) })
	}
	q.Defer("restore", func() { rendered = append(rendered, "restore") })

	if q.Pending() != 2 {
		t.Errorf("Pending = %d, want 2", q.Pending())
	}
	if n := q.Flush(); n != 2 {
		t.Errorf("Flush ran %d tasks", n)
	}
	if diff := cmp.Diff([]string{"abc", "restore"}, rendered); diff != "" {
		t.Errorf("ran (-want +got):\n%s", diff)
	}
	if q.Flush() != 0 {
		t.Error("second flush ran stale tasks")
	}
}

func TestDeferWhileFlushing(t *testing.T) {
	q := NewQueue(0)
	runs := 0
	q.Defer("render", func() {
		runs++
		q.Defer("render", func() { runs++ })
	})

	q.Flush()
	if runs != 1 || q.Pending() != 1 {
		t.Fatalf("runs = %d, pending = %d", runs, q.Pending())
	}
	q.Flush()
	if runs != 2 {
		t.Errorf("runs = %d", runs)
	}
}

func TestTimedQueue(t *testing.T) {
	q := NewQueue(10 * time.Millisecond)
	done := false
	q.Defer("render", func() { done = true })

	select {
	case <-q.Ready():
		q.Flush()
	case <-time.After(time.Second):
		t.Fatal("queue never became ready")
	}
	if !done {
		t.Error("task did not run")
	}
}
