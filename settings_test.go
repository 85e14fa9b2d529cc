package bookgrab_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/bookgrab"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := bookgrab.DefaultSettings("/work")

	assert.Equal(t, bookgrab.DefaultBookURL, s.Scraper.BookURL)
	assert.Equal(t, filepath.Join("/work", "Downloads"), s.Scraper.DownloadPath)
	assert.Equal(t, 0, s.Scraper.StartNumber)
	assert.True(t, s.Scraper.UseProfile)
	assert.Equal(t, ".png", s.Reorder.FileExtension)
	assert.Equal(t, filepath.Join("/work", "output.pdf"), s.PDF.OutputFile)
	assert.InDelta(t, 1.5, s.PDF.ColorFactor, 0.0001)
	assert.Equal(t, 1200, s.Window.BrowserWidth)
	assert.Equal(t, 800, s.Window.BrowserHeight)
}
