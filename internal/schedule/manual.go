package schedule

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by Advance. Callbacks run on the goroutine
// calling Advance. It is not safe for concurrent use.
type Manual struct {
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	m        *Manual
	seq      int
	deadline time.Duration
	fn       func()
	done     bool
}

func (t *manualTask) Cancel() bool {
	if t.done {
		return false
	}
	t.done = true
	t.m.drop(t)
	return true
}

// NewManual returns a scheduler whose clock starts at zero.
func NewManual() *Manual { return &Manual{} }

// After implements Scheduler. Negative delays are treated as zero.
func (m *Manual) After(d time.Duration, fn func()) Task {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{m: m, seq: m.seq, deadline: m.now + d, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration { return m.now }

// Pending returns the number of tasks that have not run or been canceled.
func (m *Manual) Pending() int { return len(m.pending) }

// Advance moves the clock forward by d, running every task whose
// deadline falls inside the window in deadline order. Tasks scheduled by
// callbacks run too if they come due before the window closes. It
// returns the number of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	end := m.now + d
	ran := 0
	for {
		t := m.next()
		if t == nil || t.deadline > end {
			break
		}
		m.now = t.deadline
		t.done = true
		m.drop(t)
		t.fn()
		ran++
	}
	m.now = end
	return ran
}

func (m *Manual) next() *manualTask {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		a, b := m.pending[i], m.pending[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})
	return m.pending[0]
}

func (m *Manual) drop(t *manualTask) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
