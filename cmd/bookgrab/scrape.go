package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/scrape"
	bgslog "github.com/fwojciec/bookgrab/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.URL == "" || c.URL == bookgrab.DefaultBookURL {
		fmt.Fprintln(deps.Stderr, "error: book URL required")
		return bookgrab.Errorf(bookgrab.EINVALID, "book URL required")
	}
	if c.Interval <= 0 {
		return bookgrab.Errorf(bookgrab.EINVALID, "interval must be positive")
	}
	if c.Rate <= 0 {
		return bookgrab.Errorf(bookgrab.EINVALID, "rate must be positive")
	}

	cfg := BrowserConfig{
		DownloadDir: c.Dir,
		Width:       deps.Settings.Window.BrowserWidth,
		Height:      deps.Settings.Window.BrowserHeight,
		X:           deps.Settings.Window.BrowserX,
		Y:           deps.Settings.Window.BrowserY,
		Logger:      deps.Logger,
	}
	if c.Profile {
		cfg.ProfileDir = c.ProfileDir
		cfg.ClearProfile = c.ClearProfile
	}

	browser, err := deps.OpenBrowser(cfg)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer browser.Close()

	if err := browser.Navigate(deps.Ctx, c.URL); err != nil {
		return fmt.Errorf("failed to open book: %w", err)
	}

	ctx, cancel := context.WithCancel(deps.Ctx)
	defer cancel()
	lines := readLines(ctx, deps.Stdin)

	fmt.Fprintln(deps.Stdout, "Log in and open the book in the browser window, then press Enter to start.")
	select {
	case _, ok := <-lines:
		if !ok {
			fmt.Fprintln(deps.Stdout, "Input closed, nothing captured.")
			return nil
		}
	case <-ctx.Done():
		return nil
	}

	key := bookKey(c.URL)
	if c.Resume {
		prior, err := deps.Ledger.Load(deps.Ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		if len(prior) > 0 {
			fmt.Fprintf(deps.Stdout, "Resuming after %d saved pages, numbered from %d.\n", len(prior), prior[0].Number)
		}
	} else {
		if err := deps.Ledger.Delete(deps.Ctx, key); err != nil && bookgrab.ErrorCode(err) != bookgrab.ENOTFOUND {
			return fmt.Errorf("failed to reset ledger: %w", err)
		}
	}

	var viewer bookgrab.Viewer = bgslog.NewLoggingViewer(browser.Viewer(), deps.Logger)
	downloader := browser.Downloader()
	if deps.Debug {
		downloader = bgslog.NewLoggingDownloader(downloader, deps.Logger)
	}
	downloader = scrape.NewThrottledDownloader(downloader, c.Rate, scrape.DefaultDownloadBurst)

	sess := scrape.NewSession(viewer, downloader,
		scrape.WithOffset(c.Offset),
		scrape.WithInterval(c.Interval),
		scrape.WithLogger(deps.Logger),
		scrape.WithLedgerStore(deps.Ledger, key),
	)

	out := &syncWriter{w: deps.Stdout}
	err = sess.Start(deps.Ctx, func(ds []bookgrab.Discovery) {
		for _, d := range ds {
			fmt.Fprintf(out, "%s <- %s\n", scrape.FileName(d.Number), d.Locator)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}
	fmt.Fprintln(out, "Capturing. Keep the reader window visible. Press Enter to stop.")

	// A closed input stops the capture like Enter does.
	select {
	case <-lines:
	case <-ctx.Done():
	}
	sess.Stop()
	sess.Wait()

	fmt.Fprintf(deps.Stdout, "Captured %d pages into %s\n", sess.Discovered(), c.Dir)

	deps.remember(func(s *bookgrab.Settings) {
		s.Scraper.BookURL = c.URL
		s.Scraper.DownloadPath = c.Dir
		s.Scraper.StartNumber = sess.Offset()
		s.Scraper.UseProfile = c.Profile
		s.Scraper.ProfilePath = c.ProfileDir
	})
	return nil
}

// bookKey identifies a book by the reader's id query parameter, falling back
// to the URL itself.
func bookKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if id := u.Query().Get("id"); id != "" {
		return id
	}
	return raw
}

// readLines delivers each line read from r until ctx is done. The channel is
// closed at EOF.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case ch <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

// syncWriter serializes writes from the capture loop and the command.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
