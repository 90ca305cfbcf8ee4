package pipeline

import (
	"context"
	"reflect"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/drblury/slapulse/internal/runtime/metadata"
)

// Context is the mutable per-invocation record threaded through a behavior
// chain. It is created at invocation start and discarded after the chain
// completes; it must not be shared across invocations.
type Context struct {
	// MessageID identifies the message this invocation processes or emits.
	MessageID string

	// Headers are the message headers. Behaviors may read and mutate them.
	Headers metadata.Metadata

	// Incoming is the physical inbound message this invocation responds
	// to. Nil unless the invocation was triggered by an incoming message.
	Incoming *message.Message

	ctx        context.Context
	extensions map[reflect.Type]any

	chain []Behavior
	index int
}

// NewContext constructs a fresh invocation context. A nil headers map is
// replaced with an empty one so behaviors can stamp headers unconditionally.
func NewContext(ctx context.Context, messageID string, headers metadata.Metadata) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if headers == nil {
		headers = metadata.Metadata{}
	}
	return &Context{
		MessageID: messageID,
		Headers:   headers,
		ctx:       ctx,
	}
}

// Context returns the context.Context carried by this invocation.
func (c *Context) Context() context.Context {
	return c.ctx
}

// SetContext replaces the carried context.Context, typically after a behavior
// derived a new one (for example to attach a trace span).
func (c *Context) SetContext(ctx context.Context) {
	if ctx != nil {
		c.ctx = ctx
	}
}

// GetOrCreate returns this invocation's extension slot of type T, creating a
// zero-valued instance on first access. At most one instance of each type
// exists per invocation; later calls return the same pointer.
func GetOrCreate[T any](c *Context) *T {
	key := reflect.TypeOf((*T)(nil)).Elem()

	if existing, ok := c.extensions[key]; ok {
		return existing.(*T)
	}

	created := new(T)
	if c.extensions == nil {
		c.extensions = make(map[reflect.Type]any)
	}
	c.extensions[key] = created
	return created
}
