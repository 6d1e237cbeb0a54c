package eventbus

import (
	"reflect"
	"sync"
	"weak"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Bus is a typed publish/subscribe bus. The zero value is not usable; create
// one with New.
//
// M selects the locking strategy for the whole bus. PM is always *M and is
// inferred by the compiler.
type Bus[M MutexPolicy, PM PolicyPtr[M]] struct {
	storages sync.Map // reflect.Type -> *storage[E, M, PM]
	log      zerolog.Logger
	stats    counters
}

// SharedBus may be used from any number of goroutines.
type SharedBus = Bus[DefaultMutex, *DefaultMutex]

// LocalBus must only be used from a single goroutine.
type LocalBus = Bus[NoMutex, *NoMutex]

// Option configures a Bus.
type Option func(*busConfig)

type busConfig struct {
	logger zerolog.Logger
}

// WithLogger sets the logger used for the bus's debug output.
// By default the bus does not log.
func WithLogger(l zerolog.Logger) Option {
	return func(c *busConfig) {
		c.logger = l
	}
}

// New creates an empty bus using mutex policy M:
//
//	bus := eventbus.New[eventbus.DefaultMutex]()
func New[M MutexPolicy, PM PolicyPtr[M]](opts ...Option) *Bus[M, PM] {
	cfg := busConfig{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bus[M, PM]{
		log: cfg.logger.With().
			Str("component", "eventbus").
			Str("mutex_policy", policyName[M]()).
			Logger(),
	}
}

var shared = sync.OnceValue(func() *SharedBus {
	return New[DefaultMutex](WithLogger(log.Logger))
})

// Shared returns the process-wide bus. It is created on first use, logs
// through zerolog's global logger, and is never torn down.
func Shared() *SharedBus {
	return shared()
}

// Subscribe registers fn for events of category E.
//
// The subscription lives as long as the bus. If Subscribe is called from a
// callback that is being dispatched, fn is first invoked by the next Publish.
func Subscribe[E any, M MutexPolicy, PM PolicyPtr[M]](b *Bus[M, PM], fn func(*E), opts ...SubscribeOption) {
	if fn == nil {
		panic(ErrNilCallback)
	}
	cfg := newSubscribeConfig(opts)
	storageFor[E](b).add(subscription[E]{
		priority: cfg.priority,
		invoke: func(e *E) bool {
			fn(e)
			return true
		},
	})
}

// SubscribeOwner registers fn for events of category E on behalf of owner.
//
// The bus holds owner only weakly. Once owner has been garbage collected, fn
// is no longer invoked and the subscription is dropped by the next Publish.
// fn is typically a method expression such as (*Panel).OnResize; a closure
// that captures owner keeps it alive and defeats the expiry.
func SubscribeOwner[E, T any, M MutexPolicy, PM PolicyPtr[M]](b *Bus[M, PM], owner *T, fn func(*T, *E), opts ...SubscribeOption) {
	if owner == nil {
		panic(ErrNilOwner)
	}
	if fn == nil {
		panic(ErrNilCallback)
	}
	ref := weak.Make(owner)
	cfg := newSubscribeConfig(opts)
	storageFor[E](b).add(subscription[E]{
		priority: cfg.priority,
		invoke: func(e *E) bool {
			o := ref.Value()
			if o == nil {
				return false
			}
			fn(o, e)
			return true
		},
		alive: func() bool {
			return ref.Value() != nil
		},
	})
}

// Subscribers returns the number of subscriptions registered for category E.
// Subscriptions whose owner has been collected are counted until a Publish of
// E removes them. It does not register the category.
func Subscribers[E any, M MutexPolicy, PM PolicyPtr[M]](b *Bus[M, PM]) int {
	v, ok := b.storages.Load(reflect.TypeFor[E]())
	if !ok {
		return 0
	}
	return v.(*storage[E, M, PM]).len()
}
