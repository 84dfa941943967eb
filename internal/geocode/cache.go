// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/wneessen/bestbikeday/internal/geo"
)

type cacheKey struct {
	Provider string
	Kind     string
	Value    string
}

type cacheEntry struct {
	Address Address
	Coords  geo.Coordinate
	Expiry  time.Time
}

// CachedGeocoder caches the results of another Geocoder. Found results are kept for ttlHit,
// misses for ttlMiss. Errors are never cached.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Search(ctx context.Context, address string) (geo.Coordinate, error) {
	key := cacheKey{Provider: c.coder.Name(), Kind: "search", Value: normalizeQuery(address)}
	if entry, ok := c.lookup(key); ok {
		coords := entry.Coords
		coords.CacheHit = true
		return coords, nil
	}

	coords, err := c.coder.Search(ctx, address)
	if err != nil {
		return coords, err
	}
	c.store(key, cacheEntry{Coords: coords}, coords.Found)
	return coords, nil
}

func (c *CachedGeocoder) Reverse(ctx context.Context, coords geo.Coordinate) (Address, error) {
	key := cacheKey{Provider: c.coder.Name(), Kind: "reverse", Value: coords.Key()}
	if entry, ok := c.lookup(key); ok {
		addr := entry.Address
		addr.CacheHit = true
		return addr, nil
	}

	addr, err := c.coder.Reverse(ctx, coords)
	if err != nil {
		return addr, err
	}
	c.store(key, cacheEntry{Address: addr}, addr.AddressFound)
	return addr, nil
}

func (c *CachedGeocoder) lookup(key cacheKey) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || !time.Now().Before(entry.Expiry) {
		return cacheEntry{}, false
	}
	return entry, true
}

func (c *CachedGeocoder) store(key cacheKey, entry cacheEntry, found bool) {
	ttl := c.ttlHit
	if !found {
		ttl = c.ttlMiss
	}
	entry.Expiry = time.Now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = entry
}

// normalizeQuery folds case and whitespace so that equivalent queries share a cache entry.
func normalizeQuery(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
