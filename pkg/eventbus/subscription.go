package eventbus

import "strconv"

// Priority orders callbacks within a category. Higher values run first;
// callbacks with equal priority run in the order they were subscribed.
type Priority int

const (
	PriorityHigh    Priority = 100
	PriorityDefault Priority = 0
	PriorityLow     Priority = -100
)

// String returns the level name for the named priorities and the number otherwise.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityDefault:
		return "default"
	case PriorityLow:
		return "low"
	default:
		return strconv.Itoa(int(p))
	}
}

// SubscribeOption configures a single subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	priority Priority
}

func newSubscribeConfig(opts []SubscribeOption) subscribeConfig {
	cfg := subscribeConfig{priority: PriorityDefault}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithPriority sets the subscription priority. The default is PriorityDefault.
func WithPriority(p Priority) SubscribeOption {
	return func(c *subscribeConfig) {
		c.priority = p
	}
}

// subscription is one registered callback for event category E.
type subscription[E any] struct {
	priority Priority

	// invoke runs the callback and reports whether it ran. Owner-bound
	// subscriptions return false once their owner has been collected.
	invoke func(*E) bool

	// alive is nil for anonymous subscriptions.
	alive func() bool
}

func (s subscription[E]) expired() bool {
	return s.alive != nil && !s.alive()
}

func byDescendingPriority[E any](a, b subscription[E]) int {
	switch {
	case a.priority > b.priority:
		return -1
	case a.priority < b.priority:
		return 1
	default:
		return 0
	}
}
