package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverComparables scans anchors in the page and returns up to max
// absolute URLs on the same domain as sourceURL, deduplicated, excluding
// the source page itself, in first-seen order.
func DiscoverComparables(html, sourceURL string, max int) ([]string, error) {
	if max <= 0 {
		return nil, nil
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("discover: parse source url %q: %w", sourceURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("discover: parse html: %w", err)
	}

	source := normalizeURL(base)
	seen := map[string]struct{}{source: {}}
	var found []string

	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}

		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return true
		}
		if abs.Host != base.Host {
			return true
		}

		candidate := normalizeURL(abs)
		if _, dup := seen[candidate]; dup {
			return true
		}
		seen[candidate] = struct{}{}
		found = append(found, candidate)

		return len(found) < max
	})

	return found, nil
}

// normalizeURL strips the fragment so anchor variants of one page compare equal.
func normalizeURL(u *url.URL) string {
	clone := *u
	clone.Fragment = ""
	return clone.String()
}
