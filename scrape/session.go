// Package scrape provides the page discovery loop.
// It samples a live viewer on a fixed interval, numbers newly rendered pages,
// and dispatches one download per page.
package scrape

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/bookgrab"
)

// DefaultInterval is the delay between two sampling cycles.
const DefaultInterval = 2 * time.Second

// State is the lifecycle state of a Session.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Session runs the discovery loop against one viewer.
//
// The ledger belongs to the Session: stopping and starting the same Session
// continues numbering and never re-dispatches a page it has already seen.
// A new Session starts from an empty ledger unless a LedgerStore is
// configured, in which case the ledger persisted under the book key is
// loaded before the first cycle.
//
// The callback passed to Start or Run is invoked only for cycles that
// discovered at least one page, on the loop's goroutine.
type Session struct {
	viewer     bookgrab.Viewer
	downloader bookgrab.Downloader
	offset     int
	interval   time.Duration
	logger     *slog.Logger
	store      bookgrab.LedgerStore
	bookKey    string

	state atomic.Int32

	mu     sync.Mutex // guards engine and done
	engine *Engine
	done   chan struct{}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithOffset sets the sequence offset added to each page's discovery index.
// The offset is fixed for the lifetime of the Session.
func WithOffset(offset int) SessionOption {
	return func(s *Session) {
		s.offset = offset
	}
}

// WithInterval sets the delay between sampling cycles.
// Defaults to 2s if not specified.
func WithInterval(d time.Duration) SessionOption {
	return func(s *Session) {
		s.interval = d
	}
}

// WithLogger sets the logger for cycle-level failures.
// Logs are discarded if not specified.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLedgerStore persists discoveries under key and resumes from them.
func WithLedgerStore(store bookgrab.LedgerStore, key string) SessionOption {
	return func(s *Session) {
		s.store = store
		s.bookKey = key
	}
}

// NewSession creates an idle Session.
func NewSession(viewer bookgrab.Viewer, downloader bookgrab.Downloader, opts ...SessionOption) *Session {
	s := &Session{
		viewer:     viewer,
		downloader: downloader,
		interval:   DefaultInterval,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Start runs the loop on a new goroutine and returns immediately.
// Returns EINVALID if the Session is already running, or the error from
// loading a persisted ledger.
func (s *Session) Start(ctx context.Context, fn bookgrab.DiscoveryFunc) error {
	if err := s.begin(); err != nil {
		return err
	}
	if err := s.prepare(ctx); err != nil {
		s.finish()
		return err
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer s.finish()
		s.loop(ctx, fn)
	}()
	return nil
}

// Run runs the loop on the calling goroutine until Stop is called or ctx
// is done. Returns EINVALID if the Session is already running.
func (s *Session) Run(ctx context.Context, fn bookgrab.DiscoveryFunc) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.finish()
	if err := s.prepare(ctx); err != nil {
		return err
	}
	s.loop(ctx, fn)
	return nil
}

// Stop asks the loop to exit. The cycle in flight completes first; a Stop
// issued during the inter-cycle wait takes effect when the wait ends.
// Stop does not block; use Wait to block until the loop has exited.
func (s *Session) Stop() {
	s.state.CompareAndSwap(int32(StateRunning), int32(StateStopping))
}

// Wait blocks until a loop started with Start has exited.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Offset returns the sequence offset in effect. When resuming a persisted
// ledger this is the offset the ledger was created with.
func (s *Session) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine != nil {
		return s.engine.Offset()
	}
	return s.offset
}

// Discovered returns the number of distinct pages discovered so far.
func (s *Session) Discovered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return 0
	}
	return s.engine.Len()
}

// Ledger returns a copy of the discovered locators in discovery order.
func (s *Session) Ledger() []bookgrab.Locator {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		return nil
	}
	return s.engine.Locators()
}

func (s *Session) begin() error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return bookgrab.Errorf(bookgrab.EINVALID, "session already running")
	}
	return nil
}

func (s *Session) finish() {
	s.state.Store(int32(StateIdle))
}

// prepare creates the engine on first use, seeding it from the ledger store.
func (s *Session) prepare(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine != nil {
		return nil
	}

	offset := s.offset
	var prior []bookgrab.Discovery
	if s.store != nil {
		var err error
		prior, err = s.store.Load(ctx, s.bookKey)
		if err != nil {
			return fmt.Errorf("loading ledger: %w", err)
		}
		if len(prior) > 0 && prior[0].Number != offset {
			s.logger.Warn("resuming with persisted offset",
				"book", s.bookKey,
				"configured", offset,
				"persisted", prior[0].Number,
			)
			offset = prior[0].Number
		}
	}

	engine := NewEngine(offset)
	locators := make([]bookgrab.Locator, len(prior))
	for i, d := range prior {
		locators[i] = d.Locator
	}
	if n := engine.Seed(locators); n > 0 {
		s.logger.Info("resumed ledger", "book", s.bookKey, "pages", n)
	}
	s.engine = engine
	return nil
}

func (s *Session) stopping(ctx context.Context) bool {
	return s.State() != StateRunning || ctx.Err() != nil
}

func (s *Session) loop(ctx context.Context, fn bookgrab.DiscoveryFunc) {
	for !s.stopping(ctx) {
		s.cycle(ctx, fn)

		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// cycle runs one sample, discover, download, report, scroll pass.
// Failures are logged and end the cycle's remaining work where they occur.
func (s *Session) cycle(ctx context.Context, fn bookgrab.DiscoveryFunc) {
	begin := time.Now()

	snap, err := Sample(ctx, s.viewer)
	if err != nil {
		s.logger.Warn("sample failed",
			"code", bookgrab.ErrorCode(err),
			"err", err,
		)
		return
	}

	var result []bookgrab.Discovery
	if len(snap.Locators) > 0 {
		s.mu.Lock()
		result = s.engine.Discover(snap.Locators)
		s.mu.Unlock()
	}

	for _, d := range result {
		if err := s.downloader.Download(ctx, d); err != nil {
			s.logger.Warn("download dispatch failed",
				"number", d.Number,
				"err", err,
			)
		}
	}

	if len(result) > 0 && s.store != nil {
		if err := s.store.Append(ctx, s.bookKey, result); err != nil {
			s.logger.Error("persisting ledger failed",
				"book", s.bookKey,
				"pages", len(result),
				"err", err,
			)
		}
	}

	if len(result) > 0 && fn != nil {
		fn(result)
	}

	if snap.Last != nil {
		if err := snap.Container.ScrollTo(ctx, snap.Last); err != nil {
			s.logger.Warn("scroll failed", "err", err)
		}
	}

	s.logger.Debug("cycle",
		"locators", len(snap.Locators),
		"new", len(result),
		"duration", time.Since(begin),
	)
}
