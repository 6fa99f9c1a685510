package gtfsrt

import (
	"context"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// DefaultTimeout bounds a single feed fetch, including the body read.
const DefaultTimeout = 30 * time.Second

// Client is an HTTP client for fetching and decoding GTFS-RT protobuf feeds.
// It performs no retries; the poll loop's next cycle is the retry.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new GTFS-RT client. A non-positive timeout falls back
// to DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Fetch retrieves a single feed and decodes it into a FeedMessage.
// Network failures and non-200 responses return a *TransportError;
// payloads that are not valid GTFS-RT protobuf return a *DecodeError.
func (c *Client) Fetch(ctx context.Context, url string) (*gtfsrtpb.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return &fm, nil
}
