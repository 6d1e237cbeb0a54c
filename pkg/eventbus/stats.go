package eventbus

import "sync/atomic"

// Stats is a point-in-time view of bus activity.
type Stats struct {
	// Categories is the number of event categories with storage on this bus.
	Categories uint64

	// Published counts Publish calls.
	Published uint64

	// Delivered counts callback invocations that returned normally.
	Delivered uint64

	// Pruned counts owner-bound subscriptions removed after their owner was collected.
	Pruned uint64

	// Cancelled counts dispatches cut short by a cancelled event.
	Cancelled uint64
}

type counters struct {
	categories atomic.Uint64
	published  atomic.Uint64
	delivered  atomic.Uint64
	pruned     atomic.Uint64
	cancelled  atomic.Uint64
}

// Stats returns the bus counters.
func (b *Bus[M, PM]) Stats() Stats {
	return Stats{
		Categories: b.stats.categories.Load(),
		Published:  b.stats.published.Load(),
		Delivered:  b.stats.delivered.Load(),
		Pruned:     b.stats.pruned.Load(),
		Cancelled:  b.stats.cancelled.Load(),
	}
}
