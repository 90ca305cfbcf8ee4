package slapulse

import (
	"context"

	configpkg "github.com/drblury/slapulse/internal/runtime/config"
	errspkg "github.com/drblury/slapulse/internal/runtime/errors"
	eventspkg "github.com/drblury/slapulse/internal/runtime/events"
	idspkg "github.com/drblury/slapulse/internal/runtime/ids"
	loggingpkg "github.com/drblury/slapulse/internal/runtime/logging"
	metadatapkg "github.com/drblury/slapulse/internal/runtime/metadata"
	monitorpkg "github.com/drblury/slapulse/internal/runtime/monitor"
	pipelinepkg "github.com/drblury/slapulse/internal/runtime/pipeline"
	samplingpkg "github.com/drblury/slapulse/internal/runtime/sampling"
)

type (
	Config       = configpkg.Config
	ConfigSource = configpkg.Source

	Metadata = metadatapkg.Metadata

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	Bus              = eventspkg.Bus
	ReceiveCompleted = eventspkg.ReceiveCompleted

	Pipeline        = pipelinepkg.Pipeline
	PipelineContext = pipelinepkg.Context
	Behavior        = pipelinepkg.Behavior
	BehaviorFunc    = pipelinepkg.BehaviorFunc
	Next            = pipelinepkg.Next
	Terminal        = pipelinepkg.Terminal

	CorrelationBehavior       = pipelinepkg.CorrelationBehavior
	CorrelationState          = pipelinepkg.CorrelationState
	ReceiveStatisticsBehavior = pipelinepkg.ReceiveStatisticsBehavior
	LoggingBehavior           = pipelinepkg.LoggingBehavior
	TracingBehavior           = pipelinepkg.TracingBehavior

	TimingSample = samplingpkg.TimingSample
	SampleWindow = samplingpkg.SampleWindow

	Monitor             = monitorpkg.Monitor
	MonitorDependencies = monitorpkg.Dependencies
	MonitorSnapshot     = monitorpkg.Snapshot
	GaugeSink           = monitorpkg.GaugeSink
	GaugeSinkFactory    = monitorpkg.GaugeSinkFactory
	PeriodicTrigger     = monitorpkg.PeriodicTrigger
	Trigger             = monitorpkg.Trigger
	TriggerFactory      = monitorpkg.TriggerFactory

	ConfigValidationError = errspkg.ConfigValidationError
)

// Well-known header keys.
const (
	HeaderCorrelationID = metadatapkg.KeyCorrelationID
	HeaderMessageID     = metadatapkg.KeyMessageID
	HeaderTimeSent      = metadatapkg.KeyTimeSent
)

const (
	// MaxSamples bounds the monitor's sliding sample window.
	MaxSamples = samplingpkg.MaxSamples

	// Unbounded is the estimate reported when the critical-time trend is
	// not converging on the SLA.
	Unbounded = samplingpkg.Unbounded
)

var (
	ValidateConfig   = configpkg.ValidateConfig
	ConfigFromSource = configpkg.FromSource

	NewMetadata           = metadatapkg.New
	MetadataFromWatermill = metadatapkg.FromWatermill
	MetadataToWatermill   = metadatapkg.ToWatermill
	FormatTimeSent        = metadatapkg.FormatTimeSent
	ParseTimeSent         = metadatapkg.ParseTimeSent

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter
	NopLogger                 = loggingpkg.Nop

	CreateULID   = idspkg.CreateULID
	NewMessageID = idspkg.NewMessageID

	NewBus = eventspkg.NewBus

	NewPipeline             = pipelinepkg.New
	NewPipelineWithTerminal = pipelinepkg.NewWithTerminal
	NewPipelineContext      = pipelinepkg.NewContext

	NewSampleWindow         = samplingpkg.NewSampleWindow
	EstimateSecondsToBreach = samplingpkg.EstimateSecondsToBreach

	NewMonitor             = monitorpkg.New
	NewPrometheusGaugeSink = monitorpkg.NewPrometheusGaugeSink
	StartPeriodicTrigger   = monitorpkg.StartPeriodicTrigger
)

// Subscribe registers handler for events of type T on bus; registration order
// is invocation order.
func Subscribe[T any](bus *Bus, handler func(ctx context.Context, event T) error) {
	eventspkg.Subscribe(bus, handler)
}

// Publish delivers event to every subscriber for T, in order, synchronously.
func Publish[T any](bus *Bus, ctx context.Context, event T) error {
	return eventspkg.Publish(bus, ctx, event)
}

// GetOrCreateExtension returns the invocation-scoped extension slot of type T
// on c, creating it on first access.
func GetOrCreateExtension[T any](c *PipelineContext) *T {
	return pipelinepkg.GetOrCreate[T](c)
}
