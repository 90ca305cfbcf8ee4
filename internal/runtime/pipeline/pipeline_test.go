package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/drblury/slapulse/internal/runtime/metadata"
)

func TestInvokeRunsBehaviorsInOrder(t *testing.T) {
	t.Parallel()

	var order []string
	stage := func(name string) Behavior {
		return BehaviorFunc(func(c *Context, next Next) error {
			order = append(order, name+" pre")
			if err := next(); err != nil {
				return err
			}
			order = append(order, name+" post")
			return nil
		})
	}

	p, err := New("receive", stage("a"), stage("b"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Invoke(NewContext(context.Background(), "m1", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a pre", "b pre", "b post", "a post"}
	if len(order) != len(want) {
		t.Fatalf("unexpected order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %q at %d, got %v", want[i], i, order)
		}
	}
}

func TestShortCircuitSkipsRemainingBehaviors(t *testing.T) {
	t.Parallel()

	var before, after, skipped bool

	first := BehaviorFunc(func(c *Context, next Next) error {
		before = true
		err := next()
		after = true
		return err
	})
	circuitBreaker := BehaviorFunc(func(c *Context, next Next) error {
		// Deliberately never calls next.
		return nil
	})
	unreachable := BehaviorFunc(func(c *Context, next Next) error {
		skipped = true
		return next()
	})

	p, err := New("receive", first, circuitBreaker, unreachable)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Invoke(NewContext(context.Background(), "m1", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !before || !after {
		t.Fatal("expected the stage before the short-circuit to see its post path")
	}
	if skipped {
		t.Fatal("expected behaviors after the short-circuit to be skipped")
	}
}

func TestBehaviorErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("stage failed")
	failing := BehaviorFunc(func(c *Context, next Next) error {
		return sentinel
	})
	var reached bool
	later := BehaviorFunc(func(c *Context, next Next) error {
		reached = true
		return next()
	})

	p, err := New("receive", failing, later)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Invoke(NewContext(context.Background(), "m1", nil)); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if reached {
		t.Fatal("expected later behaviors to be skipped on error")
	}
}

func TestEmptyPipelineIsNoOp(t *testing.T) {
	t.Parallel()

	p, err := New("empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Invoke(NewContext(context.Background(), "m1", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewRejectsNilBehavior(t *testing.T) {
	t.Parallel()

	if _, err := New("receive", nil); err == nil {
		t.Fatal("expected error for nil behavior")
	}
}

func TestTerminalRunsAfterLastBehavior(t *testing.T) {
	t.Parallel()

	var terminalRan bool
	p, err := NewWithTerminal("receive", func(c *Context) error {
		terminalRan = true
		return nil
	}, BehaviorFunc(func(c *Context, next Next) error {
		return next()
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Invoke(NewContext(context.Background(), "m1", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !terminalRan {
		t.Fatal("expected terminal stage to run")
	}
}

func TestTerminalSkippedOnShortCircuit(t *testing.T) {
	t.Parallel()

	var terminalRan bool
	p, err := NewWithTerminal("receive", func(c *Context) error {
		terminalRan = true
		return nil
	}, BehaviorFunc(func(c *Context, next Next) error {
		return nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := p.Invoke(NewContext(context.Background(), "m1", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if terminalRan {
		t.Fatal("expected terminal stage to be skipped")
	}
}

func TestPipelineSharedAcrossConcurrentInvocations(t *testing.T) {
	t.Parallel()

	counting := BehaviorFunc(func(c *Context, next Next) error {
		GetOrCreate[CorrelationState](c).ID = c.MessageID
		return next()
	})
	p, err := New("receive", counting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			c := NewContext(context.Background(), id, nil)
			if err := p.Invoke(c); err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if got := GetOrCreate[CorrelationState](c).ID; got != id {
				t.Errorf("expected per-invocation state %q, got %q", id, got)
			}
		}(string(rune('a' + i)))
	}
	wg.Wait()
}

func TestGetOrCreateReturnsSameInstancePerInvocation(t *testing.T) {
	t.Parallel()

	c := NewContext(context.Background(), "m1", nil)

	first := GetOrCreate[CorrelationState](c)
	first.ID = "pinned"
	second := GetOrCreate[CorrelationState](c)

	if first != second {
		t.Fatal("expected one extension instance per type per invocation")
	}
	if second.ID != "pinned" {
		t.Fatalf("expected state to persist, got %q", second.ID)
	}
}

func TestGetOrCreateDistinctTypes(t *testing.T) {
	t.Parallel()

	type otherState struct{ n int }

	c := NewContext(context.Background(), "m1", nil)
	GetOrCreate[CorrelationState](c).ID = "x"
	GetOrCreate[otherState](c).n = 7

	if GetOrCreate[CorrelationState](c).ID != "x" || GetOrCreate[otherState](c).n != 7 {
		t.Fatal("expected extension slots to be independent per type")
	}
}

func TestNewContextDefaults(t *testing.T) {
	t.Parallel()

	c := NewContext(nil, "m1", nil)
	if c.Context() == nil {
		t.Fatal("expected non-nil context")
	}
	if c.Headers == nil {
		t.Fatal("expected non-nil headers")
	}

	c.Headers[metadata.KeyMessageID] = "m1"
	if c.Headers.Get(metadata.KeyMessageID) != "m1" {
		t.Fatal("expected headers to be writable")
	}
}
