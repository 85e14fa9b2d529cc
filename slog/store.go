package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookgrab"
)

var _ bookgrab.LedgerStore = (*LoggingLedgerStore)(nil)

// LoggingLedgerStore wraps a LedgerStore with logging.
type LoggingLedgerStore struct {
	next   bookgrab.LedgerStore
	logger *slog.Logger
}

// NewLoggingLedgerStore creates a new LoggingLedgerStore.
func NewLoggingLedgerStore(next bookgrab.LedgerStore, logger *slog.Logger) *LoggingLedgerStore {
	return &LoggingLedgerStore{next: next, logger: logger}
}

func (s *LoggingLedgerStore) Load(ctx context.Context, key string) (ds []bookgrab.Discovery, err error) {
	defer func(begin time.Time) {
		s.logger.Info("ledger load",
			"book", key,
			"pages", len(ds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx, key)
}

func (s *LoggingLedgerStore) Append(ctx context.Context, key string, ds []bookgrab.Discovery) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("ledger append",
			"book", key,
			"pages", len(ds),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Append(ctx, key, ds)
}

func (s *LoggingLedgerStore) List(ctx context.Context) (books []*bookgrab.Book, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("ledger list",
			"books", len(books),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.List(ctx)
}

func (s *LoggingLedgerStore) Delete(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("ledger delete",
			"book", key,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Delete(ctx, key)
}
