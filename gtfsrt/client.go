package gtfsrt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/theoremus-urban-solutions/itinerary-filter/config"
)

// ErrNoLocation is returned by Load when the config names neither a path nor a URL.
var ErrNoLocation = errors.New("gtfsrt: no path or tripUpdatesURL configured")

// Client is a simple HTTP client for fetching GTFS-RT protobuf data.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new GTFS-RT HTTP client. A zero timeout means none.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch fetches a single GTFS-RT feed from a URL and returns raw protobuf bytes.
// Returns nil if url is empty (allows optional feeds).
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// FetchTripUpdates fetches and decodes a trip updates feed.
func (c *Client) FetchTripUpdates(ctx context.Context, url string) (*Feed, error) {
	data, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("trip updates: %w", err)
	}
	return ParseTripUpdates(data)
}

// Load reads trip updates from cfg.Path, or fetches them from
// cfg.TripUpdatesURL when no path is set.
func Load(ctx context.Context, cfg config.GTFSRTConfig) (*Feed, error) {
	if cfg.Path != "" {
		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("trip updates: %w", err)
		}
		return ParseTripUpdates(data)
	}
	if cfg.TripUpdatesURL == "" {
		return nil, ErrNoLocation
	}
	return NewClient(time.Duration(cfg.TimeoutMS)*time.Millisecond).FetchTripUpdates(ctx, cfg.TripUpdatesURL)
}
