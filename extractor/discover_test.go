package extractor

import (
	"reflect"
	"testing"
)

const discoverHTML = `<html><body>
<a href="/listing/2">two</a>
<a href="https://homes.example.com/listing/3">three</a>
<a href="/listing/2">duplicate of two</a>
<a href="https://other.example.org/listing/9">off domain</a>
<a href="/listing/1">the source itself</a>
<a href="#details">fragment of the source</a>
<a href="mailto:agent@example.com">mail</a>
<a href="/listing/4">four</a>
<a href="/listing/5">five</a>
<a href="/listing/6">six</a>
</body></html>`

const sourceURL = "https://homes.example.com/listing/1"

func TestDiscoverComparablesTruncatesInOrder(t *testing.T) {
	got, err := DiscoverComparables(discoverHTML, sourceURL, 3)
	if err != nil {
		t.Fatalf("DiscoverComparables returned error: %v", err)
	}

	want := []string{
		"https://homes.example.com/listing/2",
		"https://homes.example.com/listing/3",
		"https://homes.example.com/listing/4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscoverComparablesAll(t *testing.T) {
	got, err := DiscoverComparables(discoverHTML, sourceURL, 10)
	if err != nil {
		t.Fatalf("DiscoverComparables returned error: %v", err)
	}

	// 5 same-domain candidates survive: dedup, off-domain, source and
	// non-http anchors are all filtered.
	if len(got) != 5 {
		t.Fatalf("got %d urls (%v), want 5", len(got), got)
	}
	for _, u := range got {
		if u == sourceURL {
			t.Errorf("source url leaked into results: %v", got)
		}
	}
}

func TestDiscoverComparablesZeroMax(t *testing.T) {
	got, err := DiscoverComparables(discoverHTML, sourceURL, 0)
	if err != nil {
		t.Fatalf("DiscoverComparables returned error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestDiscoverComparablesBadSourceURL(t *testing.T) {
	if _, err := DiscoverComparables(discoverHTML, "://not-a-url", 3); err == nil {
		t.Error("expected error for unparseable source url")
	}
}
