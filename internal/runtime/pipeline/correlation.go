package pipeline

import (
	"github.com/drblury/slapulse/internal/runtime/metadata"
)

// CorrelationState is the per-invocation extension slot through which an
// earlier stage or the caller pins an explicit correlation id for the
// outgoing message.
type CorrelationState struct {
	ID string
}

// CorrelationBehavior resolves the correlation id for an outgoing message and
// stamps it into the headers. Resolution order, first non-empty match wins:
//
//  1. an explicit id set on this invocation's CorrelationState extension,
//  2. the inbound message's correlation_id header, when responding,
//  3. the inbound message's id, when responding,
//  4. the outgoing message's own id.
//
// The behavior never short-circuits.
type CorrelationBehavior struct{}

func (CorrelationBehavior) Invoke(c *Context, next Next) error {
	id := GetOrCreate[CorrelationState](c).ID

	if id == "" && c.Incoming != nil {
		id = c.Incoming.Metadata.Get(metadata.KeyCorrelationID)
	}
	if id == "" && c.Incoming != nil {
		id = c.Incoming.UUID
	}
	if id == "" {
		id = c.MessageID
	}

	c.Headers[metadata.KeyCorrelationID] = id
	return next()
}
