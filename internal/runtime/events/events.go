package events

import (
	"time"

	"github.com/drblury/slapulse/internal/runtime/metadata"
)

// ReceiveCompleted is published by the receive pipeline after a message has
// finished processing. StartedAt and CompletedAt bound the processing work;
// the headers carry the sender-stamped metadata, including time_sent when the
// sending endpoint provided it.
type ReceiveCompleted struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Headers     metadata.Metadata
}
