package shutdown

import (
	"errors"
	"testing"
	"time"
)

func TestTracker_StartDone(t *testing.T) {
	tr := NewTracker()
	if !tr.Start() || !tr.Start() {
		t.Fatal("Start() on an open tracker should succeed")
	}
	if tr.Active() != 2 {
		t.Errorf("Active() = %d, want 2", tr.Active())
	}
	tr.Done()
	tr.Done()
	if tr.Active() != 0 {
		t.Errorf("Active() = %d, want 0", tr.Active())
	}
	if err := tr.Wait(time.Second); err != nil {
		t.Errorf("Wait() = %v with nothing in flight", err)
	}
}

func TestTracker_CloseRejectsNewWork(t *testing.T) {
	tr := NewTracker()
	tr.Close()
	if !tr.IsClosed() {
		t.Fatal("IsClosed() should be true after Close()")
	}
	if tr.Start() {
		t.Error("Start() should fail after Close()")
	}
	if tr.Active() != 0 {
		t.Errorf("rejected Start() changed Active() to %d", tr.Active())
	}
}

func TestTracker_WaitDrainsAndTimesOut(t *testing.T) {
	tr := NewTracker()
	tr.Start()

	if err := tr.Wait(20 * time.Millisecond); !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("Wait() = %v, want ErrWaitTimeout", err)
	}

	go func() {
		time.Sleep(10 * time.Millisecond)
		tr.Done()
	}()
	if err := tr.Wait(time.Second); err != nil {
		t.Errorf("Wait() = %v, want nil once the operation finishes", err)
	}
}
