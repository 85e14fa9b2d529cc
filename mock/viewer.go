package mock

import (
	"context"

	"github.com/fwojciec/bookgrab"
)

// Compile-time interface verification.
var (
	_ bookgrab.Viewer     = (*Viewer)(nil)
	_ bookgrab.Container  = (*Container)(nil)
	_ bookgrab.Unit       = (*Unit)(nil)
	_ bookgrab.Downloader = (*Downloader)(nil)
)

// Viewer is a mock implementation of bookgrab.Viewer.
type Viewer struct {
	ContainerFn func(ctx context.Context) (bookgrab.Container, error)
}

func (v *Viewer) Container(ctx context.Context) (bookgrab.Container, error) {
	return v.ContainerFn(ctx)
}

// Container is a mock implementation of bookgrab.Container.
type Container struct {
	UnitsFn    func(ctx context.Context) ([]bookgrab.Unit, error)
	ScrollToFn func(ctx context.Context, unit bookgrab.Unit) error
}

func (c *Container) Units(ctx context.Context) ([]bookgrab.Unit, error) {
	return c.UnitsFn(ctx)
}

func (c *Container) ScrollTo(ctx context.Context, unit bookgrab.Unit) error {
	return c.ScrollToFn(ctx, unit)
}

// Unit is a mock implementation of bookgrab.Unit.
type Unit struct {
	LocatorFn func(ctx context.Context) (bookgrab.Locator, bool)
}

func (u *Unit) Locator(ctx context.Context) (bookgrab.Locator, bool) {
	return u.LocatorFn(ctx)
}

// Downloader is a mock implementation of bookgrab.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, d bookgrab.Discovery) error
}

func (d *Downloader) Download(ctx context.Context, disc bookgrab.Discovery) error {
	return d.DownloadFn(ctx, disc)
}
