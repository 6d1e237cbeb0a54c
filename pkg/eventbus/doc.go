// Package eventbus provides an in-process, typed publish/subscribe bus.
//
// An event category is any Go type. Callers subscribe to a category with a
// callback taking a pointer to it, and producers publish values of that
// category; delivery is synchronous, on the publisher's goroutine, in
// descending priority order:
//
//	type Resized struct{ W, H int }
//
//	bus := eventbus.New[eventbus.DefaultMutex]()
//	eventbus.Subscribe(bus, func(e *Resized) { layout(e.W, e.H) }, eventbus.WithPriority(eventbus.PriorityHigh))
//	eventbus.Publish(bus, &Resized{W: 80, H: 24})
//
// # Owners
//
// SubscribeOwner binds a subscription to an object that the bus references
// weakly. When the object is garbage collected the subscription stops firing
// and is removed on the next Publish of that category. There is no explicit
// unsubscribe.
//
// # Cancellation
//
// Categories that embed CancellableEvent (or otherwise implement Cancellable)
// can be cancelled by any callback; lower-priority callbacks then do not see
// that event. Cancellation never outlives the event value.
//
// # Locking
//
// The mutex policy is a type parameter. DefaultMutex makes a bus safe for
// concurrent use; NoMutex removes locking for buses owned by one goroutine.
// Callbacks always run without the bus holding any lock, so they may publish
// or subscribe themselves.
package eventbus
