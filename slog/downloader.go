package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookgrab"
)

// Ensure LoggingDownloader implements bookgrab.Downloader.
var _ bookgrab.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with logging of each dispatch.
type LoggingDownloader struct {
	next   bookgrab.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next bookgrab.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download logs the page number and delegates to the wrapped downloader.
func (d *LoggingDownloader) Download(ctx context.Context, disc bookgrab.Discovery) (err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"number", disc.Number,
			"locator", string(disc.Locator),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, disc)
}
