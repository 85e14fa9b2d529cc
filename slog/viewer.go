// Package slog provides logging decorators for bookgrab services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/bookgrab"
)

var (
	_ bookgrab.Viewer    = (*LoggingViewer)(nil)
	_ bookgrab.Container = (*loggingContainer)(nil)
)

// LoggingViewer wraps a Viewer with debug logging of each lookup.
type LoggingViewer struct {
	next   bookgrab.Viewer
	logger *slog.Logger
}

// NewLoggingViewer creates a new LoggingViewer.
func NewLoggingViewer(next bookgrab.Viewer, logger *slog.Logger) *LoggingViewer {
	return &LoggingViewer{next: next, logger: logger}
}

// Container logs the container lookup and wraps the result so unit lookups
// and scrolls are logged too.
func (v *LoggingViewer) Container(ctx context.Context) (c bookgrab.Container, err error) {
	defer func(begin time.Time) {
		v.logger.Debug("container",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	c, err = v.next.Container(ctx)
	if err != nil {
		return nil, err
	}
	return &loggingContainer{next: c, logger: v.logger}, nil
}

type loggingContainer struct {
	next   bookgrab.Container
	logger *slog.Logger
}

func (c *loggingContainer) Units(ctx context.Context) (units []bookgrab.Unit, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("units",
			"count", len(units),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Units(ctx)
}

func (c *loggingContainer) ScrollTo(ctx context.Context, u bookgrab.Unit) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("scroll",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.ScrollTo(ctx, u)
}
