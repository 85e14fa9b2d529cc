package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/bookgrab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx           context.Context
	Stdin         io.Reader
	Stdout        io.Writer
	Stderr        io.Writer
	Logger        *slog.Logger
	Debug         bool
	Settings      *bookgrab.Settings
	SettingsStore bookgrab.SettingsStore
	SettingsPath  string
	Ledger        bookgrab.LedgerStore
	OpenBrowser   func(BrowserConfig) (Browser, error)
}

// Browser is the browser session scrape drives.
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Viewer() bookgrab.Viewer
	Downloader() bookgrab.Downloader
	Close() error
}

// BrowserConfig describes how to launch the browser.
type BrowserConfig struct {
	DownloadDir  string
	ProfileDir   string
	ClearProfile bool
	Width        int
	Height       int
	X            int
	Y            int
	Logger       *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB    string `name:"db" default:"${db_path}" help:"Ledger database path"`
	Debug bool   `help:"Log every viewer lookup and download"`

	Scrape   ScrapeCmd   `cmd:"" help:"Capture pages from a book open in the web reader"`
	PNG      PNGCmd      `cmd:"" name:"png" help:"Convert every image in a directory to PNG"`
	JPEG     JPEGCmd     `cmd:"" name:"jpeg" help:"Convert PNG pages to JPEG"`
	Reorder  ReorderCmd  `cmd:"" help:"Rename pages to consecutive numbers in natural order"`
	PDF      PDFCmd      `cmd:"" name:"pdf" help:"Bundle PNG pages into one PDF"`
	Books    BooksCmd    `cmd:"" help:"List books with a saved ledger"`
	Forget   ForgetCmd   `cmd:"" help:"Delete the saved ledger of a book"`
	Settings SettingsCmd `cmd:"" help:"Show the settings file"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL          string        `arg:"" optional:"" default:"${book_url}" help:"Book reader URL"`
	Dir          string        `short:"d" default:"${download_dir}" help:"Download directory"`
	Offset       int           `short:"o" default:"${offset}" help:"Number of the first page"`
	Interval     time.Duration `short:"i" default:"2s" help:"Delay between samples of the viewer"`
	Resume       bool          `short:"r" help:"Continue the saved ledger of this book"`
	Profile      bool          `negatable:"" default:"${use_profile}" help:"Keep the browser login in a profile directory"`
	ProfileDir   string        `default:"${profile_dir}" help:"Browser profile directory"`
	ClearProfile bool          `help:"Remove the profile directory before launch"`
	Rate         float64       `default:"4" help:"Maximum downloads per second"`
}

// PNGCmd is the "png" subcommand.
type PNGCmd struct {
	Dir         string `arg:"" optional:"" default:"${converter_dir}" help:"Image directory"`
	Concurrency int    `short:"c" default:"4" help:"Images converted at once"`
}

// JPEGCmd is the "jpeg" subcommand.
type JPEGCmd struct {
	Src         string `arg:"" optional:"" default:"${converter_dir}" help:"PNG directory"`
	Out         string `short:"O" default:"${jpeg_output}" help:"JPEG output directory (default: <src>/jpeg)"`
	Sharpen     bool   `negatable:"" default:"${sharpen}" help:"Sharpen pages before encoding"`
	Concurrency int    `short:"c" default:"4" help:"Images converted at once"`
}

// ReorderCmd is the "reorder" subcommand.
type ReorderCmd struct {
	Dir     string `arg:"" optional:"" default:"${reorder_dir}" help:"Page directory"`
	Ext     string `short:"e" default:"${reorder_ext}" help:"Extension of files to rename"`
	Start   int    `short:"s" default:"${reorder_start}" help:"Number given to the first file"`
	Preview bool   `short:"p" help:"Show the renames without performing them"`
}

// PDFCmd is the "pdf" subcommand.
type PDFCmd struct {
	Src     string  `arg:"" optional:"" default:"${pdf_source}" help:"PNG directory"`
	Out     string  `short:"O" default:"${pdf_output}" help:"Output PDF file"`
	Enhance bool    `negatable:"" default:"${enhance}" help:"Enhance page colour"`
	Color   float64 `default:"${color_factor}" help:"Colour enhancement factor"`
}

// BooksCmd is the "books" subcommand.
type BooksCmd struct{}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	Key   string `arg:"" help:"Book key as shown by 'bookgrab books'"`
	Force bool   `help:"Confirm deletion"`
}

// SettingsCmd is the "settings" subcommand.
type SettingsCmd struct{}

// remember applies fn to the settings and saves them. Failures are logged.
func (d *Dependencies) remember(fn func(*bookgrab.Settings)) {
	fn(d.Settings)
	if err := d.SettingsStore.Save(d.Settings); err != nil {
		d.Logger.Warn("saving settings failed", "err", err)
	}
}
