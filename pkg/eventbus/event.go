package eventbus

import (
	"reflect"
	"sync/atomic"
)

// Cancellable is implemented by event categories whose dispatch may be stopped
// part way. Publish checks Cancelled after every callback and stops delivering
// the event once it reports true.
type Cancellable interface {
	Cancel()
	Cancelled() bool
}

// CancellableEvent makes an event category cancellable when embedded:
//
//	type SaveRequested struct {
//		eventbus.CancellableEvent
//		Path string
//	}
//
// The flag is one-way; nothing resets it.
type CancellableEvent struct {
	cancelled atomic.Bool
}

// Cancel marks the event as cancelled.
func (e *CancellableEvent) Cancel() { e.cancelled.Store(true) }

// Cancelled reports whether Cancel has been called.
func (e *CancellableEvent) Cancelled() bool { return e.cancelled.Load() }

func isCancellable[E any]() bool {
	_, ok := any((*E)(nil)).(Cancellable)
	return ok
}

func categoryName[E any]() string {
	return reflect.TypeFor[E]().String()
}
