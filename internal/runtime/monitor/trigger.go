package monitor

import (
	"sync"
	"time"
)

// Trigger is a running periodic callback that can be stopped.
type Trigger interface {
	// Stop cancels the trigger. It blocks until any in-flight fire has
	// completed; no fire starts after Stop returns.
	Stop()
}

// TriggerFactory starts a periodic trigger. Supplied through Dependencies so
// tests can substitute a controllable trigger.
type TriggerFactory func(interval time.Duration, fire func()) (Trigger, error)

// PeriodicTrigger fires a callback on a fixed interval, with the first fire
// happening immediately on start.
type PeriodicTrigger struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartPeriodicTrigger starts the trigger goroutine and fires once right
// away.
func StartPeriodicTrigger(interval time.Duration, fire func()) *PeriodicTrigger {
	t := &PeriodicTrigger{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(t.done)

		fire()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-ticker.C:
				fire()
			}
		}
	}()

	return t
}

// Stop cancels the trigger synchronously. Safe to call more than once.
func (t *PeriodicTrigger) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
	<-t.done
}
