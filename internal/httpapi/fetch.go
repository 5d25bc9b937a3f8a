package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// fetchWorksFeed issues the GET for the works feed and returns its body for
// the parser to stream from directly, avoiding buffering the whole feed in
// memory.
func fetchWorksFeed(ctx context.Context, url string, timeout time.Duration) (io.ReadCloser, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build works-feed request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch works feed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("works feed returned status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
