package monitor

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/drblury/slapulse/internal/runtime/jsoncodec"
	"github.com/drblury/slapulse/internal/runtime/sampling"
)

func TestSnapshotReflectsCurrentState(t *testing.T) {
	t.Parallel()

	h := newHarness(t, monitorConfig())

	base := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	sent := base.Add(-10 * time.Second)
	h.completion(t, sent, base.Add(-time.Second), base)
	h.completion(t, sent, base.Add(9*time.Second), base.Add(10*time.Second))

	snap := h.monitor.Snapshot()
	if snap.Endpoint != "orders" {
		t.Fatalf("unexpected endpoint %q", snap.Endpoint)
	}
	if snap.EstimatedSecondsToBreach != 80 {
		t.Fatalf("unexpected estimate %d", snap.EstimatedSecondsToBreach)
	}
	if len(snap.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(snap.Samples))
	}
	if snap.EndpointSLASeconds != 100 {
		t.Fatalf("unexpected SLA seconds %v", snap.EndpointSLASeconds)
	}
}

func TestSnapshotSamplesAreDetached(t *testing.T) {
	t.Parallel()

	h := newHarness(t, monitorConfig())

	base := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	h.completion(t, base.Add(-10*time.Second), base.Add(-time.Second), base)

	snap := h.monitor.Snapshot()
	snap.Samples[0].CriticalTime = time.Hour

	if got := h.monitor.Snapshot().Samples[0].CriticalTime; got != 10*time.Second {
		t.Fatalf("expected window isolation from snapshot mutation, got %v", got)
	}
}

func TestSnapshotHandlerServesJSON(t *testing.T) {
	t.Parallel()

	h := newHarness(t, monitorConfig())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/debug/sla", nil)
	h.monitor.SnapshotHandler().ServeHTTP(recorder, request)

	if recorder.Code != 200 {
		t.Fatalf("unexpected status %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var snap Snapshot
	if err := jsoncodec.Decode(recorder.Body, &snap); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if snap.Endpoint != "orders" {
		t.Fatalf("unexpected endpoint %q", snap.Endpoint)
	}
	if snap.EstimatedSecondsToBreach != sampling.Unbounded {
		t.Fatalf("expected Unbounded in fresh snapshot, got %d", snap.EstimatedSecondsToBreach)
	}
}
