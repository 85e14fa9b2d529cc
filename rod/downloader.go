package rod

import (
	"context"
	"fmt"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/scrape"
)

var _ bookgrab.Downloader = (*Downloader)(nil)

// downloadScript fetches the blob behind src and saves it under name through
// a temporary anchor element. The fetch is not awaited: completion is
// observed only as a file in the download directory.
const downloadScript = `(src, name) => {
	fetch(src)
		.then(response => response.blob())
		.then(blob => {
			const url = URL.createObjectURL(blob);
			const a = document.createElement('a');
			a.style.display = 'none';
			a.href = url;
			a.download = name;
			document.body.appendChild(a);
			a.click();
			document.body.removeChild(a);
			URL.revokeObjectURL(url);
		})
		.catch(err => console.error('page download failed:', err));
}`

// Downloader asks the viewer document to save a page's image as
// "<number>.png" in the browser's download directory.
type Downloader struct {
	browser *Browser
}

// Download dispatches the save and returns without waiting for the file.
func (d *Downloader) Download(ctx context.Context, disc bookgrab.Discovery) error {
	doc, err := d.browser.document(ctx)
	if err != nil {
		return err
	}
	if _, err := doc.Eval(downloadScript, string(disc.Locator), scrape.FileName(disc.Number)); err != nil {
		return fmt.Errorf("dispatching download of %d: %w", disc.Number, err)
	}
	return nil
}
