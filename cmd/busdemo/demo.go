package main

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Leegeev/eventbus/pkg/config"
	"github.com/Leegeev/eventbus/pkg/eventbus"
)

type orderEvent struct {
	seen []eventbus.Priority
}

type vetoEvent struct {
	eventbus.CancellableEvent
	reached int
}

type heartbeat struct{}

type chainEvent struct {
	depth int
}

type loadEvent struct {
	publisher int
	seq       int
}

type watcher struct {
	name  string
	fired *int
}

func (w *watcher) onHeartbeat(*heartbeat) {
	*w.fired++
}

// demo runs every scenario against one bus instantiation.
type demo[M eventbus.MutexPolicy, PM eventbus.PolicyPtr[M]] struct {
	bus        *eventbus.Bus[M, PM]
	cfg        *config.Config
	log        zerolog.Logger
	concurrent bool
}

func newDemo[M eventbus.MutexPolicy, PM eventbus.PolicyPtr[M]](bus *eventbus.Bus[M, PM], cfg *config.Config, log zerolog.Logger, concurrent bool) *demo[M, PM] {
	return &demo[M, PM]{bus: bus, cfg: cfg, log: log, concurrent: concurrent}
}

func (d *demo[M, PM]) run(ctx context.Context) error {
	scenarios := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"priority", d.priority},
		{"cancellation", d.cancellation},
		{"owner-expiry", d.ownerExpiry},
		{"recursion", d.recursion},
		{"concurrent", d.load},
	}

	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("scenario %s: %w", s.name, err)
		}
		d.log.Info().Str("scenario", s.name).Msg("scenario passed")
	}

	st := d.bus.Stats()
	d.log.Info().
		Uint64("categories", st.Categories).
		Uint64("published", st.Published).
		Uint64("delivered", st.Delivered).
		Uint64("pruned", st.Pruned).
		Uint64("cancelled", st.Cancelled).
		Msg("bus stats")
	return nil
}

func (d *demo[M, PM]) priority(context.Context) error {
	for _, p := range []eventbus.Priority{eventbus.PriorityLow, eventbus.PriorityHigh, eventbus.PriorityDefault} {
		eventbus.Subscribe(d.bus, func(e *orderEvent) { e.seen = append(e.seen, p) }, eventbus.WithPriority(p))
	}

	e := &orderEvent{}
	eventbus.Publish(d.bus, e)

	want := []eventbus.Priority{eventbus.PriorityHigh, eventbus.PriorityDefault, eventbus.PriorityLow}
	if fmt.Sprint(e.seen) != fmt.Sprint(want) {
		return fmt.Errorf("dispatch order %v, want %v", e.seen, want)
	}
	return nil
}

func (d *demo[M, PM]) cancellation(context.Context) error {
	eventbus.Subscribe(d.bus, func(e *vetoEvent) {
		e.reached++
		e.Cancel()
	}, eventbus.WithPriority(eventbus.PriorityHigh))
	eventbus.Subscribe(d.bus, func(e *vetoEvent) { e.reached++ }, eventbus.WithPriority(eventbus.PriorityLow))

	e := &vetoEvent{}
	eventbus.Publish(d.bus, e)
	if !e.Cancelled() || e.reached != 1 {
		return fmt.Errorf("cancelled=%t reached=%d, want cancelled after first callback", e.Cancelled(), e.reached)
	}
	return nil
}

func (d *demo[M, PM]) ownerExpiry(context.Context) error {
	fired := 0
	func() {
		w := &watcher{name: "short-lived", fired: &fired}
		eventbus.SubscribeOwner(d.bus, w, (*watcher).onHeartbeat)
		eventbus.Publish(d.bus, &heartbeat{})
	}()
	runtime.GC()
	runtime.GC()

	eventbus.Publish(d.bus, &heartbeat{})
	if fired != 1 {
		return fmt.Errorf("watcher fired %d times, want 1", fired)
	}
	if n := eventbus.Subscribers[heartbeat](d.bus); n != 0 {
		return fmt.Errorf("%d heartbeat subscriptions left after owner was collected", n)
	}
	return nil
}

func (d *demo[M, PM]) recursion(context.Context) error {
	maxDepth := d.cfg.Demo.RecursionDepth
	calls := 0
	eventbus.Subscribe(d.bus, func(e *chainEvent) {
		calls++
		if e.depth < maxDepth {
			eventbus.Publish(d.bus, &chainEvent{depth: e.depth + 1})
		}
	})

	eventbus.Publish(d.bus, &chainEvent{})
	if calls != maxDepth+1 {
		return fmt.Errorf("chain fired %d times, want %d", calls, maxDepth+1)
	}
	return nil
}

func (d *demo[M, PM]) load(ctx context.Context) error {
	if !d.concurrent {
		d.log.Warn().Msg("mutex policy none is single-goroutine only, skipping concurrent scenario")
		return nil
	}

	var received atomic.Int64
	eventbus.Subscribe(d.bus, func(*loadEvent) { received.Add(1) })

	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < d.cfg.Demo.Publishers; p++ {
		g.Go(func() error {
			for i := 0; i < d.cfg.Demo.EventsPerPublisher; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				eventbus.Publish(d.bus, &loadEvent{publisher: p, seq: i})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	want := int64(d.cfg.Demo.Publishers * d.cfg.Demo.EventsPerPublisher)
	if got := received.Load(); got != want {
		return fmt.Errorf("received %d events, want %d", got, want)
	}
	return nil
}
