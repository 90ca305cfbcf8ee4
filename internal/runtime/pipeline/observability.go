package pipeline

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	loggingpkg "github.com/drblury/slapulse/internal/runtime/logging"
)

// LoggingBehavior logs the message id and headers of every invocation.
type LoggingBehavior struct {
	Logger loggingpkg.ServiceLogger
}

func (b LoggingBehavior) Invoke(c *Context, next Next) error {
	b.Logger.Debug("Processing message", loggingpkg.LogFields{
		"message_id": c.MessageID,
		"headers":    c.Headers,
	})
	return next()
}

// TracingBehavior wraps the remainder of the chain in an OpenTelemetry span.
type TracingBehavior struct{}

func (TracingBehavior) Invoke(c *Context, next Next) error {
	tracer := otel.Tracer("slapulse-pipeline-tracer")
	ctx, span := tracer.Start(c.Context(), "ProcessMessage")
	defer span.End()
	c.SetContext(ctx)

	span.SetAttributes(
		attribute.String("message.id", c.MessageID),
		attribute.String("message.headers", fmt.Sprintf("%v", c.Headers)),
	)
	return next()
}
