// Package rod drives the book viewer through a Chrome browser using go-rod.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultWaitTimeout bounds each element lookup in the viewer.
const DefaultWaitTimeout = 5 * time.Second

// Browser owns one visible Chrome window with a single page showing the
// book viewer.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	closed   atomic.Bool
	mu       sync.Mutex // guards page

	headless     bool
	profileDir   string
	clearProfile bool
	downloadDir  string
	width        int
	height       int
	x, y         int
	positioned   bool
	waitTimeout  time.Duration
	retryDelays  []time.Duration
	layout       bookgrab.Layout
	logger       *slog.Logger
}

// BrowserOption configures a Browser.
type BrowserOption func(*Browser)

// WithProfileDir runs Chrome with a persistent user data directory so that
// the login survives between runs. If clear is true the directory is
// removed before launch.
func WithProfileDir(dir string, clear bool) BrowserOption {
	return func(b *Browser) {
		b.profileDir = dir
		b.clearProfile = clear
	}
}

// WithDownloadDir sets the directory downloads are saved to.
// The directory is created if it does not exist.
func WithDownloadDir(dir string) BrowserOption {
	return func(b *Browser) {
		b.downloadDir = dir
	}
}

// WithWindow sets the window size and position.
func WithWindow(width, height, x, y int) BrowserOption {
	return func(b *Browser) {
		b.width = width
		b.height = height
		b.x = x
		b.y = y
		b.positioned = true
	}
}

// WithHeadless launches Chrome without a window.
func WithHeadless(headless bool) BrowserOption {
	return func(b *Browser) {
		b.headless = headless
	}
}

// WithWaitTimeout sets the bound on each element lookup.
// Defaults to 5s if not specified.
func WithWaitTimeout(d time.Duration) BrowserOption {
	return func(b *Browser) {
		b.waitTimeout = d
	}
}

// WithRetryDelays sets the backoff delays between navigation attempts.
// Defaults to DefaultRetryDelays if not specified.
func WithRetryDelays(delays []time.Duration) BrowserOption {
	return func(b *Browser) {
		b.retryDelays = delays
	}
}

// WithLayout sets the viewer markup to look for.
// Defaults to bookgrab.PlayBooksLayout if not specified.
func WithLayout(layout bookgrab.Layout) BrowserOption {
	return func(b *Browser) {
		b.layout = layout
	}
}

// WithBrowserLogger sets the logger for navigation retries.
func WithBrowserLogger(logger *slog.Logger) BrowserOption {
	return func(b *Browser) {
		b.logger = logger
	}
}

// NewBrowser launches Chrome and opens a blank page.
// Close must be called when the Browser is no longer needed.
func NewBrowser(opts ...BrowserOption) (*Browser, error) {
	b := &Browser{
		waitTimeout: DefaultWaitTimeout,
		retryDelays: DefaultRetryDelays(),
		layout:      bookgrab.PlayBooksLayout,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.profileDir != "" && b.clearProfile {
		if err := os.RemoveAll(b.profileDir); err != nil {
			return nil, fmt.Errorf("clearing profile: %w", err)
		}
	}
	if b.downloadDir != "" {
		if err := os.MkdirAll(b.downloadDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating download directory: %w", err)
		}
	}

	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Browser) launch() error {
	lnchr := launcher.New().
		Set("disable-popup-blocking").
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Leakless(true).
		Headless(b.headless)
	if b.profileDir != "" {
		lnchr = lnchr.UserDataDir(b.profileDir)
	}
	if b.positioned {
		lnchr = lnchr.
			Set("window-size", strconv.Itoa(b.width)+","+strconv.Itoa(b.height)).
			Set("window-position", strconv.Itoa(b.x)+","+strconv.Itoa(b.y))
	}

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	if b.downloadDir != "" {
		err := proto.BrowserSetDownloadBehavior{
			Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
			DownloadPath: b.downloadDir,
		}.Call(browser)
		if err != nil {
			_ = browser.Close()
			lnchr.Kill()
			return fmt.Errorf("setting download behavior: %w", err)
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return fmt.Errorf("opening page: %w", err)
	}

	b.browser = browser
	b.launcher = lnchr
	b.page = page
	return nil
}

// Navigate opens url on the viewer page and waits for it to load.
// Failed attempts are retried after each of the configured delays.
func (b *Browser) Navigate(ctx context.Context, url string) error {
	if b.closed.Load() {
		return bookgrab.Errorf(bookgrab.EUNAVAILABLE, "browser closed")
	}

	b.mu.Lock()
	page := b.page
	b.mu.Unlock()

	return Retry(ctx, b.retryDelays, func(ctx context.Context) error {
		p := page.Context(ctx)
		if err := p.Navigate(url); err != nil {
			b.logger.Warn("navigate failed", "url", url, "err", err)
			return fmt.Errorf("navigating to %s: %w", url, err)
		}
		if err := p.WaitLoad(); err != nil {
			b.logger.Warn("page load failed", "url", url, "err", err)
			return fmt.Errorf("loading %s: %w", url, err)
		}
		return nil
	})
}

// Viewer returns the viewer rendered on the browser's page.
func (b *Browser) Viewer() *Viewer {
	return &Viewer{
		browser: b,
		extract: goquery.NewExtractor(b.layout),
	}
}

// Downloader returns a Downloader that saves pages through the browser.
func (b *Browser) Downloader() *Downloader {
	return &Downloader{browser: b}
}

// Close releases browser resources. Close is safe to call multiple times.
func (b *Browser) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	b.page = nil
	return err
}

// currentPage returns the page, or EUNAVAILABLE once the browser is closed.
func (b *Browser) currentPage() (*rod.Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed.Load() || b.page == nil {
		return nil, bookgrab.Errorf(bookgrab.EUNAVAILABLE, "browser closed")
	}
	return b.page, nil
}

// document returns the page hosting the viewer: the content of the layout's
// iframe, or the top-level page if the layout has no frame.
func (b *Browser) document(ctx context.Context) (*rod.Page, error) {
	page, err := b.currentPage()
	if err != nil {
		return nil, err
	}
	page = page.Context(ctx)
	if b.layout.Frame == "" {
		return page, nil
	}

	iframe, err := page.Timeout(b.waitTimeout).Element(b.layout.Frame)
	if err != nil {
		return nil, lookupError(ctx, "viewer frame", err)
	}
	frame, err := iframe.Frame()
	if err != nil {
		return nil, lookupError(ctx, "viewer frame", err)
	}
	return frame.Context(ctx), nil
}
