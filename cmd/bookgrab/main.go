// Command bookgrab captures the pages of a book open in a web reader and
// turns the downloaded images into a PDF.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/rod"
	bgslog "github.com/fwojciec/bookgrab/slog"
	"github.com/fwojciec/bookgrab/sqlite"
	"github.com/fwojciec/bookgrab/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Settings file path. Set before calling Run().
	SettingsPath string

	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// Directory the default settings are rooted at.
	WorkDir string

	// Input read by interactive commands.
	Stdin io.Reader

	// SQLite database backing the ledger store. Opened on demand.
	DB *sqlite.DB

	// OpenBrowser launches the browser for scrape. Replaced in tests.
	OpenBrowser func(BrowserConfig) (Browser, error)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	settingsPath, err := toml.DefaultPath()
	if err != nil {
		settingsPath = "settings.toml"
	}
	dbPath, err := sqlite.DefaultPath()
	if err != nil {
		dbPath = "bookgrab.db"
	}
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return &Main{
		SettingsPath: settingsPath,
		DBPath:       dbPath,
		WorkDir:      wd,
		Stdin:        os.Stdin,
		OpenBrowser:  openRodBrowser,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	settingsStore := toml.NewSettingsStore(m.SettingsPath, m.WorkDir)
	settings, err := settingsStore.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different settings file\n", toml.SettingsPathEnv)
		return fmt.Errorf("failed to load settings from %q: %w", m.SettingsPath, err)
	}

	deps := &Dependencies{
		Ctx:           ctx,
		Stdin:         m.Stdin,
		Stdout:        stdout,
		Stderr:        stderr,
		Settings:      settings,
		SettingsStore: settingsStore,
		SettingsPath:  m.SettingsPath,
		OpenBrowser:   m.OpenBrowser,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bookgrab"),
		kong.Description("Capture book pages from a web reader and bundle them into a PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
		settingsVars(settings, m.DBPath),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookgrab --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	deps.Debug = cli.Debug
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cmd == "scrape" || cmd == "books" || cmd == "forget" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", sqlite.DBPathEnv)
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()

		var ledger bookgrab.LedgerStore = sqlite.NewLedgerStore(m.DB)
		if cli.Debug {
			ledger = bgslog.NewLoggingLedgerStore(ledger, deps.Logger)
		}
		deps.Ledger = ledger
	}

	return kongCtx.Run(deps)
}

// settingsVars exposes persisted settings as flag defaults.
func settingsVars(s *bookgrab.Settings, dbPath string) kong.Vars {
	return kong.Vars{
		"db_path":       dbPath,
		"book_url":      s.Scraper.BookURL,
		"download_dir":  s.Scraper.DownloadPath,
		"offset":        strconv.Itoa(s.Scraper.StartNumber),
		"use_profile":   strconv.FormatBool(s.Scraper.UseProfile),
		"profile_dir":   s.Scraper.ProfilePath,
		"converter_dir": s.Converter.Directory,
		"jpeg_output":   s.Converter.JPEGOutput,
		"sharpen":       strconv.FormatBool(s.Converter.ApplySharpness),
		"reorder_dir":   s.Reorder.Directory,
		"reorder_ext":   s.Reorder.FileExtension,
		"reorder_start": strconv.Itoa(s.Reorder.StartNumber),
		"pdf_source":    s.PDF.SourceDirectory,
		"pdf_output":    s.PDF.OutputFile,
		"enhance":       strconv.FormatBool(s.PDF.EnhanceColor),
		"color_factor":  strconv.FormatFloat(s.PDF.ColorFactor, 'f', -1, 64),
	}
}

// rodBrowser adapts rod.Browser to the Browser interface.
type rodBrowser struct {
	*rod.Browser
}

func (b rodBrowser) Viewer() bookgrab.Viewer         { return b.Browser.Viewer() }
func (b rodBrowser) Downloader() bookgrab.Downloader { return b.Browser.Downloader() }

func openRodBrowser(cfg BrowserConfig) (Browser, error) {
	opts := []rod.BrowserOption{
		rod.WithDownloadDir(cfg.DownloadDir),
		rod.WithWindow(cfg.Width, cfg.Height, cfg.X, cfg.Y),
		rod.WithBrowserLogger(cfg.Logger),
	}
	if cfg.ProfileDir != "" {
		opts = append(opts, rod.WithProfileDir(cfg.ProfileDir, cfg.ClearProfile))
	}
	b, err := rod.NewBrowser(opts...)
	if err != nil {
		return nil, err
	}
	return rodBrowser{b}, nil
}
