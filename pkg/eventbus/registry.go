package eventbus

import "reflect"

// storageFor returns the single storage for category E, creating it on first
// use. Concurrent first calls for the same category all observe the same
// storage.
func storageFor[E any, M MutexPolicy, PM PolicyPtr[M]](b *Bus[M, PM]) *storage[E, M, PM] {
	key := reflect.TypeFor[E]()
	if v, ok := b.storages.Load(key); ok {
		return v.(*storage[E, M, PM])
	}

	v, loaded := b.storages.LoadOrStore(key, newStorage[E, M, PM]())
	s := v.(*storage[E, M, PM])
	if !loaded {
		b.stats.categories.Add(1)
		b.log.Debug().
			Str("category", s.name).
			Bool("cancellable", s.cancellable).
			Msg("event category registered")
	}
	return s
}
