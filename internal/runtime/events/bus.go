// Package events provides the typed in-process pub/sub registry used by the
// receive pipeline to announce lifecycle events. Subscribers run in the order
// they registered; Publish returns only after every handler for the event has
// finished, so a publishing pipeline stage can treat delivery as part of its
// own invocation.
package events

import (
	"context"
	"errors"
	"reflect"
	"sync"
)

// Bus is a process-scoped registry mapping event types to ordered handler
// lists. The zero value is not usable; construct with NewBus.
type Bus struct {
	mu       sync.RWMutex
	handlers map[reflect.Type][]func(context.Context, any) error
}

// NewBus returns an empty event bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]func(context.Context, any) error)}
}

// Subscribe appends handler to the subscriber list for event type T. The
// registration order is the invocation order on Publish.
func Subscribe[T any](b *Bus, handler func(ctx context.Context, event T) error) {
	if handler == nil {
		return
	}

	key := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[key] = append(b.handlers[key], func(ctx context.Context, event any) error {
		return handler(ctx, event.(T))
	})
}

// Publish invokes every handler registered for T, in subscription order. The
// handler list is snapshotted before invocation so subscribing during
// publication does not affect the in-flight event. Handler errors do not stop
// later handlers; all errors are joined into the returned error.
func Publish[T any](b *Bus, ctx context.Context, event T) error {
	key := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.RLock()
	subscribers := b.handlers[key]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range subscribers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SubscriberCount reports how many handlers are registered for T.
func SubscriberCount[T any](b *Bus) int {
	key := reflect.TypeOf((*T)(nil)).Elem()

	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[key])
}
