package comparables

import (
	"context"
	"log/slog"

	"estate-intel/extractor"
	"estate-intel/fetcher"
	"estate-intel/models"
	"estate-intel/utils"
)

// Collector resolves candidate comparable URLs into listing records.
// A candidate that fails to fetch or parse is dropped silently; the
// remaining candidates are still processed.
type Collector struct {
	fetcher fetcher.Fetcher
	logger  *slog.Logger
}

// New creates a Collector fetching through the given Fetcher.
func New(f fetcher.Fetcher, logger *slog.Logger) *Collector {
	return &Collector{fetcher: f, logger: logger}
}

// Collect fetches and extracts each candidate URL in order. The result
// preserves candidate order, is deduplicated by URL, and contains only the
// candidates that yielded a parseable page.
func (c *Collector) Collect(ctx context.Context, urls []string) []*models.Listing {
	visited := utils.NewURLSet()
	listings := make([]*models.Listing, 0, len(urls))

	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("comparable collection abandoned", "remaining", len(urls)-len(listings), "err", err)
			break
		}
		if !visited.Add(u) {
			c.logger.Debug("skipping duplicate comparable", "url", u)
			continue
		}

		html, err := c.fetcher.Fetch(ctx, u)
		if err != nil {
			c.logger.Warn("comparable dropped: fetch failed", "url", u, "err", err)
			continue
		}

		listing, err := extractor.Extract(html, u)
		if err != nil {
			c.logger.Warn("comparable dropped: parse failed", "url", u, "err", err)
			continue
		}

		listings = append(listings, listing)
	}

	c.logger.Info("comparables collected", "candidates", len(urls), "kept", len(listings))
	return listings
}
