package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocolly/colly/v2"
)

// PageFetcher fetches pages with a plain HTTP GET through a colly collector.
type PageFetcher struct {
	base   *colly.Collector
	logger *slog.Logger
}

// NewPageFetcher builds a PageFetcher with the given User-Agent and request
// timeout. Each Fetch runs on a clone of the base collector so per-request
// callbacks never leak between calls.
func NewPageFetcher(userAgent string, timeout time.Duration, logger *slog.Logger) *PageFetcher {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(timeout)

	return &PageFetcher{base: c, logger: logger}
}

// Fetch retrieves the raw HTML for url. Access-denied style statuses are
// reported as *BlockedError so callers can fall back to a local file.
func (f *PageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := f.base.Clone()

	var body string
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	})

	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil && blockedStatus(r.StatusCode) {
			fetchErr = &BlockedError{URL: url, StatusCode: r.StatusCode}
			return
		}
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		fetchErr = fmt.Errorf("fetch %s (status %d): %w", url, status, err)
	})

	visitErr := c.Visit(url)
	c.Wait()

	if fetchErr != nil {
		f.logger.Warn("page fetch failed", "url", url, "err", fetchErr)
		return "", fetchErr
	}
	if visitErr != nil {
		f.logger.Warn("page fetch failed", "url", url, "err", visitErr)
		return "", fmt.Errorf("fetch %s: %w", url, visitErr)
	}
	if body == "" {
		return "", fmt.Errorf("fetch %s: empty response body", url)
	}

	f.logger.Debug("page fetched", "url", url, "bytes", len(body))
	return body, nil
}
