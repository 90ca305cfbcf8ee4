package pipeline

import (
	"time"

	"github.com/drblury/slapulse/internal/runtime/events"
)

// ReceiveStatisticsBehavior records processing start and end around the rest
// of the chain and publishes a ReceiveCompleted event once processing
// succeeded. Publication is synchronous: the invocation is not complete until
// every subscriber has run. Failed processing publishes nothing.
type ReceiveStatisticsBehavior struct {
	Bus *events.Bus
}

func (b ReceiveStatisticsBehavior) Invoke(c *Context, next Next) error {
	startedAt := time.Now().UTC()

	if err := next(); err != nil {
		return err
	}

	completedAt := time.Now().UTC()
	return events.Publish(b.Bus, c.Context(), events.ReceiveCompleted{
		StartedAt:   startedAt,
		CompletedAt: completedAt,
		Headers:     c.Headers.Clone(),
	})
}
