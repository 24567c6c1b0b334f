// Package keylock hands out one long-lived mutex per key.
//
// Lookups for a key that already has a mutex go through a sync.Map and never
// touch the map-wide lock, so contention stays confined to callers of the
// same key. The map-wide lock is taken only to create a key's mutex.
package keylock

import "sync"

type Map[K comparable] struct {
	create sync.Mutex
	locks  sync.Map // K -> *sync.Mutex
	n      int
}

func New[K comparable]() *Map[K] { return &Map[K]{} }

func (m *Map[K]) get(key K) *sync.Mutex {
	if v, ok := m.locks.Load(key); ok {
		return v.(*sync.Mutex)
	}
	m.create.Lock()
	defer m.create.Unlock()
	// another caller may have created it while we waited
	if v, ok := m.locks.Load(key); ok {
		return v.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	m.locks.Store(key, mu)
	m.n++
	return mu
}

// Do runs fn while holding key's mutex. The mutex is released when fn
// returns, errors or panics.
func (m *Map[K]) Do(key K, fn func() error) error {
	mu := m.get(key)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// Len reports how many keys have a mutex.
func (m *Map[K]) Len() int {
	m.create.Lock()
	defer m.create.Unlock()
	return m.n
}
