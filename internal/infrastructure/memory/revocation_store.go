package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore keeps revoked session ids in memory until their TTL lapses.
// Expired entries are dropped lazily on lookup and by Sweep.
type RevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *RevocationStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	s.revoked[sessionID] = s.now().Add(ttl)
	s.mu.Unlock()
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	until, ok := s.revoked[sessionID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.now().Before(until) {
		return true, nil
	}
	s.mu.Lock()
	if cur, ok := s.revoked[sessionID]; ok && cur.Equal(until) {
		delete(s.revoked, sessionID)
	}
	s.mu.Unlock()
	return false, nil
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *RevocationStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
			n++
		}
	}
	return n
}

// Len is the number of tracked ids, expired or not.
func (s *RevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.revoked)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (s *RevocationStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
