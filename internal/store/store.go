// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package store keeps recently fetched forecasts in memory.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/wneessen/bestbikeday/internal/weather"
)

var ErrNotFound = errors.New("no forecast stored for location")

type entry struct {
	data    *weather.Data
	expires time.Time
}

// MemoryStore is a concurrency safe forecast store with a fixed maximum age per entry.
type MemoryStore struct {
	maxAge time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxAge:  maxAge,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Save stores data under key, replacing any previous entry.
func (s *MemoryStore) Save(key string, data *weather.Data) {
	if data == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{data: data, expires: s.now().Add(s.maxAge)}
}

// Get returns the data stored under key. Expired entries are reported as ErrNotFound.
func (s *MemoryStore) Get(key string) (*weather.Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expires) {
		return nil, ErrNotFound
	}
	return e.data, nil
}

// Len returns the number of stored entries, including expired ones not yet pruned.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Prune removes all expired entries and returns how many were removed.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for key, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}
