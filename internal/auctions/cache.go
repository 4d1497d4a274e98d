package auctions

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// historyCacheEntry holds cached history with its expiry.
type historyCacheEntry struct {
	points  []HistoryPoint
	expires time.Time
}

// historyCache is a thread-safe L1 in-memory cache for item history.
// A singleflight.Group prevents duplicate in-flight fetches for the
// same item when the report and the API server refresh concurrently.
type historyCache struct {
	mu      sync.RWMutex
	entries map[int32]*historyCacheEntry
	group   singleflight.Group
}

func newHistoryCache() *historyCache {
	return &historyCache{entries: make(map[int32]*historyCacheEntry)}
}

// get returns cached points if they exist and have not expired.
func (hc *historyCache) get(itemID int32) ([]HistoryPoint, bool) {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	e, ok := hc.entries[itemID]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.points, true
}

// put stores points with the given expiry.
func (hc *historyCache) put(itemID int32, points []HistoryPoint, expires time.Time) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.entries[itemID] = &historyCacheEntry{points: points, expires: expires}
}

// ItemHistory returns history for an item through three layers:
//  1. L1 in-memory cache (TTL = maxAge)
//  2. L2 persistent store, if fresh
//  3. the remote API, persisting the result
//
// Concurrent calls for the same item coalesce into one fetch.
func (c *Client) ItemHistory(itemID int32, realm, period string, maxAge time.Duration) ([]HistoryPoint, error) {
	if points, ok := c.cache.get(itemID); ok {
		return points, nil
	}

	sfKey := fmt.Sprintf("%d:%s:%s", itemID, realm, period)
	result, err, _ := c.cache.group.Do(sfKey, func() (interface{}, error) {
		// Re-check L1 under singleflight: a coalesced waiter may arrive
		// after the winner already populated it.
		if points, ok := c.cache.get(itemID); ok {
			return points, nil
		}

		if c.store != nil {
			if points, ok := c.store.GetAuctionHistory(itemID, maxAge); ok {
				c.cache.put(itemID, points, time.Now().Add(maxAge))
				return points, nil
			}
		}

		points, err := c.FetchItemHistory(itemID, realm, period)
		if err != nil {
			return nil, err
		}
		if c.store != nil {
			c.store.SetAuctionHistory(itemID, points)
		}
		c.cache.put(itemID, points, time.Now().Add(maxAge))
		return points, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]HistoryPoint), nil
}
