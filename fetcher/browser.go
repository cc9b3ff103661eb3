package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser fetches pages through headless Chrome so JS-rendered listings can
// still be extracted. Opt-in: the plain PageFetcher is the default.
type Browser struct {
	execPath  string
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
}

// NewBrowser builds a chromedp-backed Fetcher. execPath may be empty, in
// which case the binary is located on PATH or in the usual install locations.
func NewBrowser(execPath, userAgent string, timeout time.Duration, logger *slog.Logger) *Browser {
	if execPath == "" {
		execPath = findChromeBinary()
	}
	return &Browser{
		execPath:  execPath,
		userAgent: userAgent,
		timeout:   timeout,
		logger:    logger,
	}
}

// Fetch navigates to url in a fresh headless tab and returns the rendered HTML.
func (b *Browser) Fetch(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(b.userAgent),
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelTab()

	runCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		b.logger.Warn("browser fetch failed", "url", url, "err", err)
		return "", fmt.Errorf("browser fetch %s: %w", url, err)
	}

	b.logger.Debug("browser fetched", "url", url, "bytes", len(html))
	return html, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
