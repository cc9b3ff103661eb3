package comparables

import (
	"context"
	"fmt"
	"testing"

	"estate-intel/utils"
)

const compHTML = `<html><head><title>Comp</title></head><body>
<p>Condo with 2 bedrooms, 1,000 sqft for $500,000.</p></body></html>`

type fakeFetcher struct {
	pages map[string]string
	fail  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.fail[url]; ok {
		return "", err
	}
	html, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("no page for %s", url)
	}
	return html, nil
}

func TestCollectDropsFailuresSilently(t *testing.T) {
	ff := &fakeFetcher{
		pages: map[string]string{
			"https://homes.test/c/1": compHTML,
			"https://homes.test/c/3": compHTML,
		},
		fail: map[string]error{
			"https://homes.test/c/2": fmt.Errorf("timeout"),
		},
	}

	c := New(ff, utils.NewLogger("error"))
	got := c.Collect(context.Background(), []string{
		"https://homes.test/c/1",
		"https://homes.test/c/2",
		"https://homes.test/c/3",
	})

	if len(got) != 2 {
		t.Fatalf("got %d listings, want 2", len(got))
	}
	if got[0].URL != "https://homes.test/c/1" || got[1].URL != "https://homes.test/c/3" {
		t.Errorf("order not preserved: %q, %q", got[0].URL, got[1].URL)
	}
}

func TestCollectDeduplicates(t *testing.T) {
	ff := &fakeFetcher{pages: map[string]string{"https://homes.test/c/1": compHTML}}

	c := New(ff, utils.NewLogger("error"))
	got := c.Collect(context.Background(), []string{
		"https://homes.test/c/1",
		"https://homes.test/c/1",
	})

	if len(got) != 1 {
		t.Errorf("got %d listings, want 1", len(got))
	}
	if len(ff.calls) != 1 {
		t.Errorf("duplicate url fetched %d times, want 1", len(ff.calls))
	}
}

func TestCollectStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ff := &fakeFetcher{pages: map[string]string{"https://homes.test/c/1": compHTML}}
	c := New(ff, utils.NewLogger("error"))

	if got := c.Collect(ctx, []string{"https://homes.test/c/1"}); len(got) != 0 {
		t.Errorf("cancelled context should collect nothing, got %d", len(got))
	}
	if len(ff.calls) != 0 {
		t.Errorf("fetch should not run after cancellation, got %d calls", len(ff.calls))
	}
}
