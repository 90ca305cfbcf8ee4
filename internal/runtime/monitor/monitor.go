// Package monitor wires the timing sample window, the breach estimator, and
// the exported gauge into one per-endpoint lifecycle. Construction validates
// the endpoint configuration and subscribes to receive-completion events;
// Start acquires the gauge sink and the periodic prune trigger; Stop releases
// both on every exit path.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	configpkg "github.com/drblury/slapulse/internal/runtime/config"
	errspkg "github.com/drblury/slapulse/internal/runtime/errors"
	"github.com/drblury/slapulse/internal/runtime/events"
	loggingpkg "github.com/drblury/slapulse/internal/runtime/logging"
	"github.com/drblury/slapulse/internal/runtime/metadata"
	"github.com/drblury/slapulse/internal/runtime/sampling"
)

// Dependencies holds the optional collaborators for a Monitor. Leave fields
// nil to use the Prometheus-backed defaults.
type Dependencies struct {
	// Registerer receives the breach gauge. Defaults to
	// prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer

	// SinkFactory overrides gauge acquisition entirely. When set,
	// Registerer is ignored.
	SinkFactory GaugeSinkFactory

	// TriggerFactory overrides how the periodic prune trigger is started.
	TriggerFactory TriggerFactory
}

type sinkRef struct {
	sink GaugeSink
}

// Monitor owns one endpoint's SLA breach prediction.
type Monitor struct {
	cfg *configpkg.Config
	log loggingpkg.ServiceLogger

	window         *sampling.SampleWindow
	sinkFactory    GaugeSinkFactory
	triggerFactory TriggerFactory

	estimate atomic.Int64
	sink     atomic.Pointer[sinkRef]

	mu       sync.Mutex
	started  bool
	acquired GaugeSink
	trigger  Trigger
}

// New validates cfg, subscribes to ReceiveCompleted on bus, and returns a
// stopped Monitor. Send-only endpoints and missing SLA durations are rejected
// with a ConfigValidationError before any resource is acquired.
func New(cfg *configpkg.Config, bus *events.Bus, log loggingpkg.ServiceLogger, deps Dependencies) (*Monitor, error) {
	if bus == nil {
		return nil, errspkg.ErrBusRequired
	}
	if log == nil {
		return nil, errspkg.ErrLoggerRequired
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}

	m := &Monitor{
		cfg: cfg,
		log: log.With(loggingpkg.LogFields{"endpoint": cfg.EndpointName}),
	}
	m.estimate.Store(sampling.Unbounded)
	m.window = sampling.NewSampleWindow(m.recompute)

	m.sinkFactory = deps.SinkFactory
	if m.sinkFactory == nil {
		registerer := deps.Registerer
		m.sinkFactory = func(endpoint string) (GaugeSink, error) {
			return NewPrometheusGaugeSink(registerer, endpoint)
		}
	}

	m.triggerFactory = deps.TriggerFactory
	if m.triggerFactory == nil {
		m.triggerFactory = func(interval time.Duration, fire func()) (Trigger, error) {
			return StartPeriodicTrigger(interval, fire), nil
		}
	}

	events.Subscribe(bus, m.onReceiveCompleted)

	return m, nil
}

func validate(cfg *configpkg.Config) error {
	if cfg == nil {
		return errspkg.NewConfigValidationError(errors.New("config is nil"))
	}
	if cfg.EndpointName == "" {
		return errspkg.NewConfigValidationError(errspkg.ErrEndpointNameRequired)
	}
	if cfg.SendOnly {
		return errspkg.NewConfigValidationError(errspkg.ErrSendOnlyEndpoint)
	}
	if cfg.EndpointSLA <= 0 {
		return errspkg.NewConfigValidationError(errspkg.ErrSLARequired)
	}
	return nil
}

// Start acquires the gauge sink and starts the periodic prune trigger. On
// failure, anything acquired before the failing step is released before the
// error returns.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return errspkg.ErrMonitorStarted
	}

	sink, err := m.sinkFactory(m.cfg.EndpointName)
	if err != nil {
		return fmt.Errorf("acquire breach gauge: %w", err)
	}

	trigger, err := m.triggerFactory(m.cfg.EffectivePruneInterval(), m.window.Prune)
	if err != nil {
		if relErr := sink.Release(); relErr != nil {
			m.log.Error("Failed to release gauge after partial start", relErr, nil)
		}
		return fmt.Errorf("start prune trigger: %w", err)
	}

	m.acquired = sink
	m.sink.Store(&sinkRef{sink: sink})
	m.trigger = trigger
	m.started = true

	m.log.Info("SLA monitor started", loggingpkg.LogFields{
		"sla":            m.cfg.EndpointSLA.String(),
		"prune_interval": m.cfg.EffectivePruneInterval().String(),
	})
	return nil
}

// Stop cancels the prune trigger and releases the gauge sink. It is
// idempotent and safe to call after a failed or partial Start. The trigger is
// stopped synchronously: no prune tick fires after Stop returns.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.trigger != nil {
		m.trigger.Stop()
		m.trigger = nil
	}

	var err error
	if m.acquired != nil {
		m.sink.Store(nil)
		err = m.acquired.Release()
		m.acquired = nil
	}

	if m.started {
		m.started = false
		m.log.Info("SLA monitor stopped", nil)
	}
	return err
}

// Estimate returns the most recently derived seconds-until-breach value.
// Before any samples arrive this is sampling.Unbounded.
func (m *Monitor) Estimate() int64 {
	return m.estimate.Load()
}

// onReceiveCompleted turns a completion event into a timing sample. Messages
// without a parseable time_sent header carry no send-time metadata and are
// skipped.
func (m *Monitor) onReceiveCompleted(_ context.Context, ev events.ReceiveCompleted) error {
	raw := ev.Headers.Get(metadata.KeyTimeSent)
	if raw == "" {
		m.log.Trace("Completed message has no time_sent header, sample skipped", nil)
		return nil
	}

	sentAt, err := metadata.ParseTimeSent(raw)
	if err != nil {
		m.log.Debug("Unparseable time_sent header, sample skipped", loggingpkg.LogFields{
			"time_sent": raw,
			"error":     err.Error(),
		})
		return nil
	}

	m.window.Add(sampling.TimingSample{
		CriticalTime:   ev.CompletedAt.Sub(sentAt),
		ProcessingTime: ev.CompletedAt.Sub(ev.StartedAt),
		OccurredAt:     ev.CompletedAt,
	})
	return nil
}

// recompute derives the estimate from a window snapshot and pushes it to the
// gauge. Runs outside the window's lock, on every sample and every prune
// tick.
func (m *Monitor) recompute(snapshot []sampling.TimingSample) {
	seconds := sampling.EstimateSecondsToBreach(snapshot, m.cfg.EndpointSLA)
	m.estimate.Store(seconds)

	if ref := m.sink.Load(); ref != nil {
		ref.sink.Set(seconds)
	}
}
