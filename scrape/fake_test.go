package scrape_test

import (
	"context"
	"sync"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/mock"
)

// failFrame marks a cycle in which the container cannot be located.
var failFrame = []string{"<fail>"}

// scriptedViewer replays one frame of mounted locators per sampling pass,
// repeating the last frame once the script is exhausted. An empty string
// in a frame is a unit that has not rendered yet.
type scriptedViewer struct {
	mu       sync.Mutex
	frames   [][]string
	samples  int
	scrolled []bookgrab.Unit

	// onSample, if set, is called with the 1-based sample count.
	onSample func(n int)
	// onScroll, if set, is called after each scroll.
	onScroll func()
}

func newScriptedViewer(frames ...[]string) *scriptedViewer {
	return &scriptedViewer{frames: frames}
}

func (v *scriptedViewer) Samples() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.samples
}

func (v *scriptedViewer) Scrolls() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.scrolled)
}

func (v *scriptedViewer) Viewer() *mock.Viewer {
	return &mock.Viewer{
		ContainerFn: func(_ context.Context) (bookgrab.Container, error) {
			v.mu.Lock()
			v.samples++
			n := v.samples
			i := n - 1
			if i >= len(v.frames) {
				i = len(v.frames) - 1
			}
			var frame []string
			if i >= 0 {
				frame = v.frames[i]
			}
			v.mu.Unlock()

			if v.onSample != nil {
				v.onSample(n)
			}
			if len(frame) == 1 && frame[0] == failFrame[0] {
				return nil, bookgrab.Errorf(bookgrab.ETIMEOUT, "container not found")
			}
			return v.container(frame), nil
		},
	}
}

func (v *scriptedViewer) container(frame []string) *mock.Container {
	return &mock.Container{
		UnitsFn: func(_ context.Context) ([]bookgrab.Unit, error) {
			units := make([]bookgrab.Unit, len(frame))
			for i, src := range frame {
				units[i] = unit(src)
			}
			return units, nil
		},
		ScrollToFn: func(_ context.Context, u bookgrab.Unit) error {
			v.mu.Lock()
			v.scrolled = append(v.scrolled, u)
			v.mu.Unlock()
			if v.onScroll != nil {
				v.onScroll()
			}
			return nil
		},
	}
}

// unit returns a mock unit exposing src, or an unrendered unit if src is empty.
func unit(src string) *mock.Unit {
	return &mock.Unit{
		LocatorFn: func(_ context.Context) (bookgrab.Locator, bool) {
			if src == "" {
				return "", false
			}
			return bookgrab.Locator(src), true
		},
	}
}

// recordingDownloader records every dispatched download.
type recordingDownloader struct {
	mu   sync.Mutex
	got  []bookgrab.Discovery
	fail map[bookgrab.Locator]bool
}

func (d *recordingDownloader) Downloader() *mock.Downloader {
	return &mock.Downloader{
		DownloadFn: func(_ context.Context, disc bookgrab.Discovery) error {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.got = append(d.got, disc)
			if d.fail[disc.Locator] {
				return bookgrab.Errorf(bookgrab.EUNAVAILABLE, "script failed")
			}
			return nil
		},
	}
}

func (d *recordingDownloader) Downloads() []bookgrab.Discovery {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]bookgrab.Discovery, len(d.got))
	copy(out, d.got)
	return out
}
