// Package sampling holds the sliding window of receive-timing samples and the
// extrapolation that turns a window snapshot into a seconds-until-SLA-breach
// estimate.
package sampling

import (
	"sync"
	"time"
)

// MaxSamples bounds the sliding window. Ten samples are enough to pick up a
// critical-time trend without letting a burst from hours ago dominate the
// extrapolation.
const MaxSamples = 10

// pruneFactor controls the age cutoff used by Prune: samples older than
// pruneFactor times the newest sample's processing time are discarded.
const pruneFactor = 3

// TimingSample captures the timing of one completed receive. Immutable once
// created.
type TimingSample struct {
	// CriticalTime is the full end-to-end latency: completion time minus
	// the sender's time_sent stamp.
	CriticalTime time.Duration `json:"critical_time"`

	// ProcessingTime is completion time minus processing start, excluding
	// transport and queue wait.
	ProcessingTime time.Duration `json:"processing_time"`

	// OccurredAt is the completion time.
	OccurredAt time.Time `json:"occurred_at"`
}

// SampleWindow is a bounded, thread-safe ordered collection of timing
// samples. Samples are stored in Add-call arrival order, which may not match
// strict OccurredAt order under concurrent arrival; downstream consumers must
// tolerate this. The backing slice is never exposed by reference.
type SampleWindow struct {
	mu      sync.Mutex
	samples []TimingSample

	// onChange receives an independent post-mutation snapshot after every
	// Add and Prune, outside the window's critical section.
	onChange func([]TimingSample)
}

// NewSampleWindow constructs an empty window. onChange may be nil.
func NewSampleWindow(onChange func(snapshot []TimingSample)) *SampleWindow {
	return &SampleWindow{
		samples:  make([]TimingSample, 0, MaxSamples),
		onChange: onChange,
	}
}

// Add appends sample, dropping the oldest entries beyond MaxSamples, and
// notifies onChange with the post-insert snapshot.
func (w *SampleWindow) Add(sample TimingSample) {
	w.mu.Lock()
	w.samples = append(w.samples, sample)
	if excess := len(w.samples) - MaxSamples; excess > 0 {
		kept := copy(w.samples, w.samples[excess:])
		w.samples = w.samples[:kept]
	}
	snapshot := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snapshot)
}

// Prune removes samples older than the newest sample's OccurredAt minus three
// times its ProcessingTime. On an empty window nothing is removed. The
// onChange notification fires even when nothing was removed so the derived
// estimate is re-asserted during idle periods.
func (w *SampleWindow) Prune() {
	w.mu.Lock()
	if len(w.samples) > 0 {
		last := w.samples[len(w.samples)-1]
		cutoff := last.OccurredAt.Add(-pruneFactor * last.ProcessingTime)

		kept := w.samples[:0]
		for _, s := range w.samples {
			if !s.OccurredAt.Before(cutoff) {
				kept = append(kept, s)
			}
		}
		w.samples = kept
	}
	snapshot := w.snapshotLocked()
	w.mu.Unlock()

	w.notify(snapshot)
}

// Snapshot returns an independent ordered copy of the window's contents.
func (w *SampleWindow) Snapshot() []TimingSample {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Len reports the number of retained samples.
func (w *SampleWindow) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.samples)
}

func (w *SampleWindow) snapshotLocked() []TimingSample {
	snapshot := make([]TimingSample, len(w.samples))
	copy(snapshot, w.samples)
	return snapshot
}

func (w *SampleWindow) notify(snapshot []TimingSample) {
	if w.onChange != nil {
		w.onChange(snapshot)
	}
}
