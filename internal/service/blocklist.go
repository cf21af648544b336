package service

import "sync"

// Blocklist records revoked token IDs (jti).
type Blocklist interface {
	Revoke(jti string)
	IsRevoked(jti string) bool
	Len() int
}

// memoryBlocklist keeps revoked IDs for the lifetime of the process. Entries
// are never swept; the tokens they refer to expire on their own and a
// restart starts from an empty set.
type memoryBlocklist struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

// NewBlocklist creates an empty in-memory blocklist. Create one per process
// and share it between the middleware and the auth service.
func NewBlocklist() Blocklist {
	return &memoryBlocklist{revoked: make(map[string]struct{})}
}

func (b *memoryBlocklist) Revoke(jti string) {
	if jti == "" {
		return
	}
	b.mu.Lock()
	b.revoked[jti] = struct{}{}
	b.mu.Unlock()
}

func (b *memoryBlocklist) IsRevoked(jti string) bool {
	b.mu.RLock()
	_, ok := b.revoked[jti]
	b.mu.RUnlock()
	return ok
}

func (b *memoryBlocklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.revoked)
}
