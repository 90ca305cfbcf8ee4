package monitor

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestPeriodicTriggerFiresImmediately(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{}, 1)
	trigger := StartPeriodicTrigger(time.Hour, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	defer trigger.Stop()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("expected an immediate first fire")
	}
}

func TestPeriodicTriggerFiresRepeatedly(t *testing.T) {
	t.Parallel()

	var count atomic.Int64
	trigger := StartPeriodicTrigger(5*time.Millisecond, func() {
		count.Add(1)
	})
	defer trigger.Stop()

	deadline := time.After(2 * time.Second)
	for count.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 fires, got %d", count.Load())
		case <-time.After(time.Millisecond):
		}
	}
}

func TestStopPreventsFurtherFires(t *testing.T) {
	t.Parallel()

	var count atomic.Int64
	trigger := StartPeriodicTrigger(time.Millisecond, func() {
		count.Add(1)
	})

	trigger.Stop()
	after := count.Load()

	time.Sleep(20 * time.Millisecond)
	if got := count.Load(); got != after {
		t.Fatalf("expected no fires after Stop, count went %d -> %d", after, got)
	}
}

func TestStopWaitsForInFlightFire(t *testing.T) {
	t.Parallel()

	var finished atomic.Bool
	started := make(chan struct{})
	trigger := StartPeriodicTrigger(time.Hour, func() {
		close(started)
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})

	<-started
	trigger.Stop()

	if !finished.Load() {
		t.Fatal("expected Stop to wait for the in-flight fire")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	trigger := StartPeriodicTrigger(time.Hour, func() {})
	trigger.Stop()
	trigger.Stop()
}
