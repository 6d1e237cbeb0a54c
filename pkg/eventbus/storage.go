package eventbus

import "slices"

// storage holds every subscription for one event category.
type storage[E any, M MutexPolicy, PM PolicyPtr[M]] struct {
	mu          M
	subs        []subscription[E]
	sorted      bool
	cancellable bool
	name        string
}

func newStorage[E any, M MutexPolicy, PM PolicyPtr[M]]() *storage[E, M, PM] {
	return &storage[E, M, PM]{
		sorted:      true,
		cancellable: isCancellable[E](),
		name:        categoryName[E](),
	}
}

func (s *storage[E, M, PM]) lock()   { PM(&s.mu).Lock() }
func (s *storage[E, M, PM]) unlock() { PM(&s.mu).Unlock() }

// add appends sub. Ordering is deferred to the next snapshot.
func (s *storage[E, M, PM]) add(sub subscription[E]) {
	s.lock()
	s.subs = append(s.subs, sub)
	s.sorted = false
	s.unlock()
}

// snapshot drops subscriptions whose owner is gone, sorts the remainder if
// anything was added since the last sort, and returns a private copy along
// with the number of subscriptions dropped.
func (s *storage[E, M, PM]) snapshot() ([]subscription[E], int) {
	s.lock()
	defer s.unlock()

	before := len(s.subs)
	s.subs = slices.DeleteFunc(s.subs, subscription[E].expired)
	pruned := before - len(s.subs)

	if !s.sorted {
		slices.SortStableFunc(s.subs, byDescendingPriority[E])
		s.sorted = true
	}

	return slices.Clone(s.subs), pruned
}

func (s *storage[E, M, PM]) len() int {
	s.lock()
	defer s.unlock()
	return len(s.subs)
}
