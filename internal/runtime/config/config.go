package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Configuration keys understood by FromSource. They match the keys used by
// endpoint bootstrap code so a Config can be assembled from any key-value
// settings source.
const (
	KeyEndpointName = "endpoint_name"
	KeyEndpointSLA  = "endpoint_sla"
	KeySendOnly     = "send_only"
)

// DefaultPruneInterval is how often the monitor discards stale timing samples
// and refreshes the breach gauge.
const DefaultPruneInterval = 2 * time.Second

// Source is a read-only key-value settings store. Implementations typically
// wrap environment variables, a settings file, or the host's configuration
// subsystem.
type Source interface {
	// TryGet returns the raw value for key and whether the key was present.
	TryGet(key string) (string, bool)
}

// Config groups the settings required to monitor one endpoint's SLA.
type Config struct {
	// EndpointName identifies the endpoint on the exported gauge.
	EndpointName string

	// EndpointSLA is the maximum acceptable critical time (send to
	// processing completion) before a message counts as breached.
	EndpointSLA time.Duration

	// SendOnly marks an endpoint that never runs receive processing. SLA
	// monitoring is meaningless there and is rejected at construction.
	SendOnly bool

	// PruneInterval overrides how often stale samples are discarded. Zero
	// falls back to DefaultPruneInterval.
	PruneInterval time.Duration

	// MetricsPort is the port where Prometheus metrics will be exposed.
	// Zero disables the endpoint.
	MetricsPort int

	// DebugPort exposes the monitor's JSON snapshot for inspection. Zero
	// disables the endpoint.
	DebugPort int
}

// EffectivePruneInterval returns the configured prune interval or the default.
func (c *Config) EffectivePruneInterval() time.Duration {
	if c.PruneInterval > 0 {
		return c.PruneInterval
	}
	return DefaultPruneInterval
}

// Validate checks that the configuration can support SLA monitoring. Returns
// an error describing every missing or invalid field.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.validateEndpoint()...)
	errs = append(errs, c.validateIntervals()...)
	errs = append(errs, c.validatePorts()...)

	return errors.Join(errs...)
}

func (c *Config) validateEndpoint() []error {
	var errs []error
	if c.EndpointName == "" {
		errs = append(errs, errors.New("endpoint: name is required"))
	}
	if c.SendOnly {
		errs = append(errs, errors.New("endpoint: SLA monitoring is not supported on send-only endpoints"))
	}
	if c.EndpointSLA <= 0 {
		errs = append(errs, errors.New("endpoint: SLA duration is required"))
	}
	return errs
}

func (c *Config) validateIntervals() []error {
	if c.PruneInterval < 0 {
		return []error{errors.New("prune: interval cannot be negative")}
	}
	return nil
}

func (c *Config) validatePorts() []error {
	var errs []error
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		errs = append(errs, fmt.Errorf("metrics: invalid port %d", c.MetricsPort))
	}
	if c.DebugPort < 0 || c.DebugPort > 65535 {
		errs = append(errs, fmt.Errorf("debug: invalid port %d", c.DebugPort))
	}
	return errs
}

// ValidateConfig is a convenience function to validate a config pointer.
// Returns nil if the config is valid.
func ValidateConfig(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// FromSource assembles a Config from a settings source. Missing keys are left
// at their zero values; malformed values are reported. Call Validate on the
// result to apply the monitoring preconditions.
func FromSource(src Source) (*Config, error) {
	if src == nil {
		return nil, errors.New("config: settings source is nil")
	}

	cfg := &Config{}
	var errs []error

	if name, ok := src.TryGet(KeyEndpointName); ok {
		cfg.EndpointName = name
	}

	if raw, ok := src.TryGet(KeyEndpointSLA); ok {
		sla, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", KeyEndpointSLA, err))
		} else {
			cfg.EndpointSLA = sla
		}
	}

	if raw, ok := src.TryGet(KeySendOnly); ok {
		sendOnly, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", KeySendOnly, err))
		} else {
			cfg.SendOnly = sendOnly
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}
