package eventbus

// Publish delivers event to every live subscriber of category E, highest
// priority first, on the calling goroutine.
//
// The subscriber list is pruned, sorted and copied under the category lock;
// callbacks then run without the lock held, so they may Subscribe or Publish
// freely. Subscriptions added while a dispatch is running are not seen by it.
//
// If E is Cancellable, delivery stops after the first callback that leaves
// the event cancelled. A panicking callback is not recovered: the panic
// reaches the caller and the remaining callbacks are skipped for this event.
func Publish[E any, M MutexPolicy, PM PolicyPtr[M]](b *Bus[M, PM], event *E) {
	if event == nil {
		panic(ErrNilEvent)
	}

	s := storageFor[E](b)
	subs, pruned := s.snapshot()

	b.stats.published.Add(1)
	if pruned > 0 {
		b.stats.pruned.Add(uint64(pruned))
		b.log.Debug().
			Str("category", s.name).
			Int("pruned", pruned).
			Int("remaining", len(subs)).
			Msg("expired subscriptions removed")
	}

	var c Cancellable
	if s.cancellable {
		c = any(event).(Cancellable)
	}

	for _, sub := range subs {
		if !sub.invoke(event) {
			// owner collected after the snapshot was taken
			continue
		}
		b.stats.delivered.Add(1)

		if c != nil && c.Cancelled() {
			b.stats.cancelled.Add(1)
			return
		}
	}
}
