package concurrency

import "sync"

// InFlight is a per-key mutual-exclusion set. An attempt to acquire a key that
// is already held is dropped immediately rather than queued; callers must
// release the key in all exit paths.
type InFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewInFlight creates an empty in-flight set
func NewInFlight() *InFlight {
	return &InFlight{keys: make(map[string]struct{})}
}

// TryAcquire claims the key if it is free. Returns false if the key is held.
func (f *InFlight) TryAcquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, held := f.keys[key]; held {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

// Release frees the key. Releasing an unheld key is a no-op.
func (f *InFlight) Release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
}
