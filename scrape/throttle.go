package scrape

import (
	"context"

	"github.com/fwojciec/bookgrab"
	"golang.org/x/time/rate"
)

var _ bookgrab.Downloader = (*ThrottledDownloader)(nil)

// Default download throttle. Chrome starts prompting (or silently blocking)
// when a page fires many automatic downloads at once.
const (
	DefaultDownloadRate  = 4.0
	DefaultDownloadBurst = 4
)

// ThrottledDownloader limits the rate at which downloads are dispatched
// using a token bucket.
type ThrottledDownloader struct {
	next    bookgrab.Downloader
	limiter *rate.Limiter
}

// NewThrottledDownloader wraps next so that at most rps downloads per second
// are dispatched, with bursts of up to burst.
func NewThrottledDownloader(next bookgrab.Downloader, rps float64, burst int) *ThrottledDownloader {
	if burst < 1 {
		burst = 1
	}
	return &ThrottledDownloader{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Download waits for the limiter and delegates to the wrapped downloader.
// Returns the context's error if it is canceled while waiting.
func (d *ThrottledDownloader) Download(ctx context.Context, disc bookgrab.Discovery) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	return d.next.Download(ctx, disc)
}
