package eventbus

import "sync"

// MutexPolicy is the set of locking strategies a Bus can be instantiated with.
// The policy guards each category's subscription list; it is fixed for the
// lifetime of the bus.
type MutexPolicy interface {
	NoMutex | DefaultMutex
}

// PolicyPtr ties a policy to its pointer type, which carries Lock and Unlock.
// It is always inferred, e.g. New[DefaultMutex]() yields *Bus[DefaultMutex, *DefaultMutex].
type PolicyPtr[M MutexPolicy] interface {
	*M
	sync.Locker
}

// NoMutex does no locking at all.
//
// A bus built with NoMutex must be confined to a single goroutine for its whole
// life. Concurrent Subscribe or Publish calls on such a bus are data races.
type NoMutex struct{}

func (*NoMutex) Lock()   {}
func (*NoMutex) Unlock() {}

// DefaultMutex serialises access to a category with a sync.Mutex.
type DefaultMutex struct {
	mu sync.Mutex
}

func (m *DefaultMutex) Lock()   { m.mu.Lock() }
func (m *DefaultMutex) Unlock() { m.mu.Unlock() }

func policyName[M MutexPolicy]() string {
	switch any((*M)(nil)).(type) {
	case *NoMutex:
		return "none"
	default:
		return "default"
	}
}
