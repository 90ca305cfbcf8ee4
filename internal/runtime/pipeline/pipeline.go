// Package pipeline implements the ordered behavior chain that message
// processing flows through. A Pipeline is composed once at wiring time and is
// immutable afterwards; all mutable state lives in the per-invocation
// Context, so one Pipeline instance is safely shared across concurrently
// executing invocations.
package pipeline

import (
	errspkg "github.com/drblury/slapulse/internal/runtime/errors"
)

// Next invokes the remainder of the behavior chain. A behavior calls it
// exactly once for normal processing, or not at all to short-circuit every
// later stage. Work after the call runs once the rest of the chain returned.
type Next func() error

// Behavior is one stage of a processing chain. Instances are stateless and
// shared across invocations; per-invocation state belongs on the Context.
type Behavior interface {
	Invoke(c *Context, next Next) error
}

// BehaviorFunc adapts a plain function to the Behavior interface.
type BehaviorFunc func(c *Context, next Next) error

func (f BehaviorFunc) Invoke(c *Context, next Next) error {
	return f(c, next)
}

// Terminal runs after the last behavior called next. A nil Terminal is a
// no-op.
type Terminal func(c *Context) error

// Pipeline is a named, ordered behavior chain.
type Pipeline struct {
	name      string
	behaviors []Behavior
	terminal  Terminal
}

// New composes a pipeline from the given behaviors. The order of the
// arguments is the invocation order. Nil behaviors are rejected.
func New(name string, behaviors ...Behavior) (*Pipeline, error) {
	for _, b := range behaviors {
		if b == nil {
			return nil, errspkg.ErrBehaviorRequired
		}
	}
	return &Pipeline{
		name:      name,
		behaviors: behaviors,
	}, nil
}

// NewWithTerminal composes a pipeline whose chain ends in the given terminal
// stage instead of a no-op.
func NewWithTerminal(name string, terminal Terminal, behaviors ...Behavior) (*Pipeline, error) {
	p, err := New(name, behaviors...)
	if err != nil {
		return nil, err
	}
	p.terminal = terminal
	return p, nil
}

// Name returns the pipeline's composition-time name.
func (p *Pipeline) Name() string {
	return p.name
}

// Invoke drives c through the behavior chain. The continuation is threaded as
// an index on the context rather than a tower of nested closures; each
// behavior's next() advances the index and dispatches the following stage.
func (p *Pipeline) Invoke(c *Context) error {
	c.chain = p.behaviors
	c.index = 0
	return p.advance(c)
}

func (p *Pipeline) advance(c *Context) error {
	if c.index >= len(c.chain) {
		if p.terminal != nil {
			return p.terminal(c)
		}
		return nil
	}

	behavior := c.chain[c.index]
	c.index++
	return behavior.Invoke(c, func() error { return p.advance(c) })
}
