package auctions

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.wowauctions.net"

// Client is a rate-limited auction-history HTTP client.
type Client struct {
	http    *http.Client
	baseURL string
	sem     chan struct{}
	cache   *historyCache
	store   HistoryStore
}

// HistoryStore is a persistent L2 cache for fetched history (SQLite).
type HistoryStore interface {
	GetAuctionHistory(itemID int32, maxAge time.Duration) ([]HistoryPoint, bool)
	SetAuctionHistory(itemID int32, points []HistoryPoint)
}

// NewClient creates a client with the given persistent cache store.
// The API tolerates modest concurrency; 8 in-flight requests keeps a full
// catalog refresh quick without tripping rate limits.
func NewClient(store HistoryStore) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		sem:     make(chan struct{}, 8),
		cache:   newHistoryCache(),
		store:   store,
	}
}

// SetBaseURL overrides the API endpoint (tests, mirrors).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// FetchItemHistory fetches auction history for one item straight from the API.
func (c *Client) FetchItemHistory(itemID int32, realm, period string) ([]HistoryPoint, error) {
	url := fmt.Sprintf("%s/items/stats/%s/%s/mergedAh/%d", c.baseURL, period, realm, itemID)

	var raw map[string]rawPoint
	if err := c.getJSON(url, &raw); err != nil {
		return nil, err
	}
	return parseHistory(raw)
}

// getJSON fetches a URL and decodes JSON into dst.
func (c *Client) getJSON(url string, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "gold-goblin/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("auctions API %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
