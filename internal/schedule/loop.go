package schedule

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Loop is a real-time Scheduler for event-loop hosts. Timers only
// announce that a task is due; the loop owner receives the task id from
// Wait and executes it with Run, so callbacks never race with the rest
// of the event loop.
type Loop struct {
	mu     sync.Mutex
	tasks  map[string]*loopTask
	due    chan string
	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

type loopTask struct {
	l     *Loop
	id    string
	fn    func()
	timer *time.Timer
}

// NewLoop returns a running Loop.
func NewLoop() *Loop {
	return &Loop{
		tasks: map[string]*loopTask{},
		due:   make(chan string, 16),
		done:  make(chan struct{}),
	}
}

// After implements Scheduler. On a closed loop the returned task is
// already canceled.
func (l *Loop) After(d time.Duration, fn func()) Task {
	t := &loopTask{l: l, id: uuid.NewString(), fn: fn}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return t
	}
	l.tasks[t.id] = t
	l.wg.Add(1)
	t.timer = time.AfterFunc(d, func() {
		defer l.wg.Done()
		l.announce(t.id)
	})
	return t
}

func (l *Loop) announce(id string) {
	l.mu.Lock()
	_, ok := l.tasks[id]
	l.mu.Unlock()
	if !ok {
		return
	}
	select {
	case l.due <- id:
	case <-l.done:
	}
}

// Wait blocks until a task is due and returns its id, or returns false
// once the loop is closed.
func (l *Loop) Wait() (string, bool) {
	select {
	case id := <-l.due:
		return id, true
	case <-l.done:
		return "", false
	}
}

// Run executes the task with the given id on the calling goroutine. It
// reports false if the task was canceled or already ran.
func (l *Loop) Run(id string) bool {
	l.mu.Lock()
	t, ok := l.tasks[id]
	if ok {
		delete(l.tasks, id)
	}
	l.mu.Unlock()
	if !ok {
		return false
	}
	t.fn()
	return true
}

// Pending returns the number of tasks that have neither run nor been
// canceled.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Close cancels every pending task and waits for in-flight timer
// goroutines to return. It is safe to call more than once.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for id, t := range l.tasks {
		if t.timer.Stop() {
			l.wg.Done()
		}
		delete(l.tasks, id)
	}
	close(l.done)
	l.mu.Unlock()
	l.wg.Wait()
}

func (t *loopTask) Cancel() bool {
	l := t.l
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.tasks[t.id]; !ok {
		return false
	}
	delete(l.tasks, t.id)
	if t.timer.Stop() {
		l.wg.Done()
	}
	return true
}
