package auctions

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gold-goblin/internal/logger"
)

// LoadAll fetches history for every catalog item, serving from cache where
// fresh. Items that fail to load are skipped with a warning; the call fails
// only when nothing could be loaded at all.
func (c *Client) LoadAll(items map[int32]string, realm, period string, maxAge time.Duration) (map[int32][]HistoryPoint, error) {
	var (
		mu      sync.Mutex
		results = make(map[int32][]HistoryPoint, len(items))
	)

	var g errgroup.Group
	g.SetLimit(8)
	for itemID, name := range items {
		g.Go(func() error {
			points, err := c.ItemHistory(itemID, realm, period, maxAge)
			if err != nil {
				logger.Warn("Auctions", fmt.Sprintf("Skipping %s (ID %d): %v", name, itemID, err))
				return nil // per-item failures are recoverable
			}
			if len(points) == 0 {
				logger.Warn("Auctions", fmt.Sprintf("No history for %s (ID %d)", name, itemID))
				return nil
			}
			mu.Lock()
			results[itemID] = points
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if len(results) == 0 {
		return nil, fmt.Errorf("no auction history could be loaded for realm %q", realm)
	}
	logger.Success("Auctions", fmt.Sprintf("Loaded history for %d/%d items", len(results), len(items)))
	return results, nil
}
