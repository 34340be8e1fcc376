package profile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tikscope/tikscope/internal/logger"
)

const (
	defaultBaseURL   = "https://www.tiktok.com"
	browserUserAgent = "Mozilla/5.0"

	// Profile pages run to a few MB of embedded state; cap reads well above that.
	maxPageBytes = 10 << 20
)

// FetchError covers an unreachable page, a non-success status, or a timeout.
// Fetch failures never consume quota.
type FetchError struct {
	Username   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch profile @%s: %v", e.Username, e.Err)
	}
	return fmt.Sprintf("failed to fetch profile @%s: status %d", e.Username, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the raw profile page text for a username.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (string, error)
}

// HTTPFetcher fetches profile pages over HTTP with a bounded timeout.
type HTTPFetcher struct {
	client  *http.Client
	baseURL string
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client:  &http.Client{Timeout: timeout},
		baseURL: defaultBaseURL,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, username string) (string, error) {
	url := fmt.Sprintf("%s/@%s", f.baseURL, username)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{Username: username, Err: err}
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{Username: username, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug("Profile fetch returned non-success status", map[string]interface{}{
			"username": username,
			"status":   resp.StatusCode,
		})
		return "", &FetchError{Username: username, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", &FetchError{Username: username, Err: err}
	}

	return string(body), nil
}
