package mutex

import (
	"context"
	"sync"
)

// KeyedMutex is a set of mutexes created on demand per key.
// Entries are dropped once nobody holds or waits for them.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		entries: make(map[string]*keyedEntry),
	}
}

// Lock blocks until the key is free or ctx is done.
func (m *KeyedMutex) Lock(ctx context.Context, key string) error {
	e := m.acquire(key)

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.release(key)
		return ctx.Err()
	}
}

// Unlock releases the key. It panics if the key is not locked.
func (m *KeyedMutex) Unlock(key string) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()

	if !ok {
		panic("mutex: unlock of unlocked key " + key)
	}

	select {
	case <-e.sem:
	default:
		panic("mutex: unlock of unlocked key " + key)
	}

	m.release(key)
}

func (m *KeyedMutex) acquire(key string) *keyedEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		e = &keyedEntry{sem: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++

	return e
}

func (m *KeyedMutex) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
}

func (m *KeyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
