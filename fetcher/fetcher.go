package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Fetcher retrieves the raw HTML for a listing URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BlockedError means the remote site refused the request (access denied,
// throttled, or similar). Callers recover by supplying a locally saved HTML
// file; there is no automatic retry.
type BlockedError struct {
	URL        string
	StatusCode int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("fetch blocked: %s returned status %d", e.URL, e.StatusCode)
}

// IsBlocked reports whether err wraps a BlockedError.
func IsBlocked(err error) bool {
	var be *BlockedError
	return errors.As(err, &be)
}

func blockedStatus(code int) bool {
	switch code {
	case 401, 403, 407, 429, 503:
		return true
	}
	return false
}

// ReadLocal loads HTML from a file on disk, the fallback source when a site
// blocks the request.
func ReadLocal(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local html %q: %w", path, err)
	}
	return string(data), nil
}
