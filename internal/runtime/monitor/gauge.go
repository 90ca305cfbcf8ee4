package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GaugeSink is the write-only destination for the derived
// seconds-until-breach value. Implementations are identified by an endpoint
// name and must be releasable.
type GaugeSink interface {
	Set(seconds int64)
	Release() error
}

// GaugeSinkFactory acquires the sink for an endpoint. Supplied through
// Dependencies so tests and alternative telemetry backends can replace the
// Prometheus default.
type GaugeSinkFactory func(endpoint string) (GaugeSink, error)

// newBreachGaugeVec creates the gauge vec with the standard slapulse/sla
// namespace.
func newBreachGaugeVec() *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "slapulse",
			Subsystem: "sla",
			Name:      "seconds_until_breach",
			Help:      "Estimated seconds until the endpoint's critical time trend breaches its SLA.",
		},
		[]string{"endpoint"},
	)
}

type prometheusGaugeSink struct {
	vec      *prometheus.GaugeVec
	gauge    prometheus.Gauge
	endpoint string
}

// NewPrometheusGaugeSink registers the breach gauge for endpoint against
// registerer (the default registerer when nil). Registering twice is not an
// error; the existing collector is reused so several monitors can share one
// process.
func NewPrometheusGaugeSink(registerer prometheus.Registerer, endpoint string) (GaugeSink, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	vec := newBreachGaugeVec()
	if err := registerer.Register(vec); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		vec = are.ExistingCollector.(*prometheus.GaugeVec)
	}

	return &prometheusGaugeSink{
		vec:      vec,
		gauge:    vec.WithLabelValues(endpoint),
		endpoint: endpoint,
	}, nil
}

func (s *prometheusGaugeSink) Set(seconds int64) {
	s.gauge.Set(float64(seconds))
}

// Release drops the endpoint's series from the gauge vec. The vec itself
// stays registered for other monitors in the process.
func (s *prometheusGaugeSink) Release() error {
	s.vec.DeleteLabelValues(s.endpoint)
	return nil
}
