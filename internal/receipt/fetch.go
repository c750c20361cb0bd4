package receipt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxFetchSize bounds remote downloads to the same limit as uploads
const maxFetchSize = 50 << 20

// Fetcher downloads remote documents
type Fetcher interface {
	// Fetch returns the body and content type of url
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}

// HTTPFetcher implements Fetcher with a plain HTTP GET
type HTTPFetcher struct {
	client  *http.Client
	maxSize int64
}

// NewHTTPFetcher creates an HTTPFetcher; zero timeout means 30 seconds
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		maxSize: maxFetchSize,
	}
}

// Fetch downloads url; any non-200 status is an ErrFetchFailed
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	// One byte over the limit tells a full body from a truncated one
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading body: %w", ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxSize {
		return nil, "", fmt.Errorf("%w: document too large (max %d bytes)", ErrFetchFailed, f.maxSize)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
