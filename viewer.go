package bookgrab

import "context"

// Viewer is the narrow capability surface of a live document viewer.
// Implementations run against a browser automation driver; the discovery
// engine only ever sees these interfaces.
type Viewer interface {
	// Container locates the scrollable content container.
	// Returns ETIMEOUT if it is not found within a bounded wait and
	// EUNAVAILABLE if the browser session is gone.
	Container(ctx context.Context) (Container, error)
}

// Container is the scrollable list holding the viewer's rendered units.
type Container interface {
	// Units returns the renderable units currently mounted, in display order.
	// Returns ETIMEOUT if the list is not found within a bounded wait.
	Units(ctx context.Context) ([]Unit, error)

	// ScrollTo scrolls the unit into view so the viewer renders what follows.
	ScrollTo(ctx context.Context, unit Unit) error
}

// Unit is one item of the viewer's virtualized list.
type Unit interface {
	// Locator extracts the unit's content locator.
	// The bool result is false if the unit has not rendered its content yet.
	Locator(ctx context.Context) (Locator, bool)
}

// Downloader asks the browser to save the content behind a locator.
// Downloads are fire-and-forget: a nil error means the request was
// dispatched, not that a file was written.
type Downloader interface {
	Download(ctx context.Context, d Discovery) error
}

// Progress reports progress of a batch file operation.
type Progress struct {
	Message string
	Done    int
	Total   int
	Err     error
}

// ProgressFunc is called as a batch operation proceeds.
type ProgressFunc func(Progress)
