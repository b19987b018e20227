package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/okian/encore/internal/domain/model"
)

// InMemoryProfileStore implements ProfileStore with a single guarded
// map. Profile traffic is onboarding-shaped; it does not need shards.
type InMemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]model.UserProfile
}

// NewInMemoryProfileStore creates an empty profile store.
func NewInMemoryProfileStore() *InMemoryProfileStore {
	return &InMemoryProfileStore{
		profiles: make(map[string]model.UserProfile),
	}
}

// Save inserts or replaces a profile keyed by username.
func (s *InMemoryProfileStore) Save(_ context.Context, p model.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	key := profileKey(p.Username)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[key] = p
	return nil
}

// Get returns the profile for the given username.
func (s *InMemoryProfileStore) Get(_ context.Context, username string) (model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[profileKey(username)]
	if !ok {
		return model.UserProfile{}, ErrNotFound
	}
	return p, nil
}

// Count returns the number of stored profiles.
func (s *InMemoryProfileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// profileKey normalizes usernames so lookups are case-insensitive.
func profileKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
