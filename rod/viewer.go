package rod

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/goquery"
	"github.com/go-rod/rod"
)

var (
	_ bookgrab.Viewer    = (*Viewer)(nil)
	_ bookgrab.Container = (*Container)(nil)
	_ bookgrab.Unit      = (*Unit)(nil)
)

// Viewer locates the scrollable page list in the browser's current page.
type Viewer struct {
	browser *Browser
	extract *goquery.Extractor
}

// Container returns the viewer's scrollable content wrapper.
// Returns ETIMEOUT if it does not appear within the wait timeout.
func (v *Viewer) Container(ctx context.Context) (bookgrab.Container, error) {
	doc, err := v.browser.document(ctx)
	if err != nil {
		return nil, err
	}

	el, err := doc.Timeout(v.browser.waitTimeout).Element(v.browser.layout.Container)
	if err != nil {
		return nil, lookupError(ctx, "content wrapper", err)
	}
	return &Container{
		el:     el.Context(ctx),
		viewer: v,
	}, nil
}

// Container is the content wrapper holding the ordered list of units.
type Container struct {
	el     *rod.Element
	viewer *Viewer
}

// Units returns the list items currently mounted, in document order.
func (c *Container) Units(ctx context.Context) ([]bookgrab.Unit, error) {
	layout := c.viewer.browser.layout

	list, err := c.el.Context(ctx).Timeout(c.viewer.browser.waitTimeout).Element(layout.List)
	if err != nil {
		return nil, lookupError(ctx, "unit list", err)
	}
	items, err := list.Context(ctx).Elements(layout.Unit)
	if err != nil {
		return nil, lookupError(ctx, "units", err)
	}

	units := make([]bookgrab.Unit, len(items))
	for i, item := range items {
		units[i] = &Unit{el: item, extract: c.viewer.extract}
	}
	return units, nil
}

// ScrollTo scrolls the viewer until u is in view, prompting the viewer to
// render the units that follow it.
func (c *Container) ScrollTo(ctx context.Context, u bookgrab.Unit) error {
	unit, ok := u.(*Unit)
	if !ok {
		return bookgrab.Errorf(bookgrab.EINVALID, "unit %T does not belong to this viewer", u)
	}
	if err := unit.el.Context(ctx).ScrollIntoView(); err != nil {
		return lookupError(ctx, "scroll target", err)
	}
	return nil
}

// Unit is one list item of the viewer.
type Unit struct {
	el      *rod.Element
	extract *goquery.Extractor
}

// Locator returns the source of the unit's rendered page image.
// The bool result is false if the unit is a placeholder or has gone stale.
func (u *Unit) Locator(ctx context.Context) (bookgrab.Locator, bool) {
	html, err := u.el.Context(ctx).HTML()
	if err != nil {
		return "", false
	}
	return u.extract.ExtractLocator(html)
}

// lookupError maps a failed element lookup to an application error.
// Expired lookups become ETIMEOUT unless the caller's context ended.
func lookupError(ctx context.Context, what string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("locating %s: %w", what, ctxErr)
	}
	var notFound *rod.ElementNotFoundError
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &notFound) {
		return bookgrab.Errorf(bookgrab.ETIMEOUT, "%s not found", what)
	}
	return fmt.Errorf("locating %s: %w", what, err)
}
