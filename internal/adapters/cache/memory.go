package cache

import (
	"context"
	"time"

	"conferencecentral/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// memoryEntries bounds the in-process store; only a handful of keys are ever written.
const memoryEntries = 64

type memoryStore struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryStore returns an in-process CacheStore whose entries expire after ttl (0 keeps them forever).
// Entries are not shared between instances.
func NewMemoryStore(ttl time.Duration) domain.CacheStore {
	return &memoryStore{lru: expirable.NewLRU[string, string](memoryEntries, nil, ttl)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.lru.Get(key)
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.lru.Add(key, value)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}
