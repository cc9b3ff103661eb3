package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"estate-intel/utils"
)

func testServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><h1>Listing</h1></body></html>"))
	})
	mux.HandleFunc("/blocked", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func newTestFetcher() *PageFetcher {
	return NewPageFetcher("test-agent", 5*time.Second, utils.NewLogger("error"))
}

func TestPageFetcherFetch(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	html, err := newTestFetcher().Fetch(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(html, "<h1>Listing</h1>") {
		t.Errorf("unexpected body: %q", html)
	}
}

func TestPageFetcherBlockedStatus(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	_, err := newTestFetcher().Fetch(context.Background(), srv.URL+"/blocked")
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !IsBlocked(err) {
		t.Errorf("403 should map to BlockedError, got %v", err)
	}
}

func TestPageFetcherOtherErrorIsNotBlocked(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	_, err := newTestFetcher().Fetch(context.Background(), srv.URL+"/missing")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if IsBlocked(err) {
		t.Errorf("404 must not count as blocked: %v", err)
	}
}

func TestPageFetcherCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestFetcher().Fetch(ctx, "https://homes.test/x"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestReadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.html")
	if err := os.WriteFile(path, []byte("<html>saved</html>"), 0644); err != nil {
		t.Fatal(err)
	}

	html, err := ReadLocal(path)
	if err != nil {
		t.Fatalf("ReadLocal returned error: %v", err)
	}
	if html != "<html>saved</html>" {
		t.Errorf("got %q", html)
	}

	if _, err := ReadLocal(filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Error("expected error for missing file")
	}
}
