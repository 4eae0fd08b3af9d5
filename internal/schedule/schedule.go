// Package schedule runs deferred callbacks for single-threaded widgets.
//
// Manual is a virtual clock for deterministic tests. Loop fires on real
// time but hands due tasks to the owner of the event loop instead of
// running them on timer goroutines.
package schedule

import "time"

// Task is a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. It reports whether the
	// task was still pending.
	Cancel() bool
}

// Scheduler runs fn once, no earlier than d from now.
type Scheduler interface {
	After(d time.Duration, fn func()) Task
}
