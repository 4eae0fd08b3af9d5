package schedule

import (
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestManualRunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.After(3*time.Second, func() { got = append(got, "notice") })
	m.After(300*time.Millisecond, func() { got = append(got, "swap") })
	m.After(300*time.Millisecond, func() { got = append(got, "swap2") })

	if n := m.Advance(299 * time.Millisecond); n != 0 {
		t.Fatalf("ran %d tasks before deadline, want 0", n)
	}
	if n := m.Advance(time.Millisecond); n != 2 {
		t.Fatalf("ran %d tasks at 300ms, want 2", n)
	}
	m.Advance(time.Hour)

	want := []string{"swap", "swap2", "notice"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if m.Now() != 300*time.Millisecond+time.Hour {
		t.Fatalf("Now = %v", m.Now())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	ran := false
	task := m.After(time.Second, func() { ran = true })
	if !task.Cancel() {
		t.Fatal("first cancel should report pending task")
	}
	if task.Cancel() {
		t.Fatal("second cancel should report false")
	}
	m.Advance(2 * time.Second)
	if ran {
		t.Fatal("canceled task ran")
	}
	if m.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", m.Pending())
	}
}

func TestManualRunsTasksScheduledByCallbacks(t *testing.T) {
	m := NewManual()
	var at []time.Duration
	m.After(300*time.Millisecond, func() {
		at = append(at, m.Now())
		m.After(300*time.Millisecond, func() { at = append(at, m.Now()) })
	})
	if n := m.Advance(time.Second); n != 2 {
		t.Fatalf("ran %d, want 2", n)
	}
	if len(at) != 2 || at[0] != 300*time.Millisecond || at[1] != 600*time.Millisecond {
		t.Fatalf("callback times = %v", at)
	}
}

func TestLoopDeliversDueTasksToOwner(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	defer l.Close()

	ran := make(chan struct{}, 1)
	l.After(5*time.Millisecond, func() { ran <- struct{}{} })

	id, ok := l.Wait()
	if !ok {
		t.Fatal("loop closed before task was due")
	}
	select {
	case <-ran:
		t.Fatal("task ran on timer goroutine")
	default:
	}
	if !l.Run(id) {
		t.Fatal("Run reported task missing")
	}
	<-ran
	if l.Run(id) {
		t.Fatal("task ran twice")
	}
}

func TestLoopCancelAndClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := NewLoop()
	canceled := l.After(time.Hour, func() { t.Error("canceled task ran") })
	l.After(time.Hour, func() { t.Error("task ran after close") })
	if l.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", l.Pending())
	}
	if !canceled.Cancel() {
		t.Fatal("cancel should report pending task")
	}
	l.Close()
	l.Close()

	if l.Pending() != 0 {
		t.Fatalf("pending after close = %d", l.Pending())
	}
	if _, ok := l.Wait(); ok {
		t.Fatal("Wait should report closed loop")
	}
	late := l.After(time.Millisecond, func() { t.Error("task scheduled on closed loop ran") })
	if late.Cancel() {
		t.Fatal("task on closed loop should already be canceled")
	}
}
