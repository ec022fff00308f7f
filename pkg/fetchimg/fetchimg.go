// Package fetchimg retrieves binary image resources from external URLs.
package fetchimg

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single download attempt.
const DefaultTimeout = 15 * time.Second

// Fetcher downloads a resource in a single attempt. Retry policy belongs to
// the caller.
type Fetcher struct {
	// Client overrides the transport. Default http.DefaultClient.
	Client *http.Client

	// Timeout bounds each Fetch call. Default DefaultTimeout.
	Timeout time.Duration
}

// Fetch downloads url and returns the body bytes. A non-200 status is an
// error, handled no differently from a transport failure.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	return data, nil
}
