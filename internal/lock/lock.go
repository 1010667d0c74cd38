// Package lock provides per-key mutual exclusion. The session registry uses
// it to serialize one player's actions while unrelated players proceed in
// parallel.
package lock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// Keyed is a set of mutexes addressed by string key. Entries are created on
// demand and removed once no goroutine holds or waits on them.
type Keyed struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewKeyed creates an empty Keyed lock set
func NewKeyed() *Keyed {
	return &Keyed{
		entries: make(map[string]*entry),
	}
}

func (k *Keyed) acquire(key string) *entry {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return e
}

func (k *Keyed) release(key string, e *entry) {
	e.mu.Unlock()

	k.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(k.entries, key)
	}
	k.mu.Unlock()
}

// Do runs fn while holding the mutex for key
func (k *Keyed) Do(key string, fn func() error) error {
	e := k.acquire(key)
	defer k.release(key, e)
	return fn()
}

// Len returns the number of live entries (held or contended)
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
