package bookgrab

import "path/filepath"

// DefaultBookURL is the reader URL prefix offered when no book is configured.
const DefaultBookURL = "https://play.google.com/books/reader?id="

// Settings holds persisted user preferences for every command.
type Settings struct {
	Scraper   ScraperSettings   `toml:"scraper"`
	Converter ConverterSettings `toml:"converter"`
	Reorder   ReorderSettings   `toml:"reorder"`
	PDF       PDFSettings       `toml:"pdf"`
	Window    WindowSettings    `toml:"window"`
}

// ScraperSettings configures a scraping run.
type ScraperSettings struct {
	BookURL      string `toml:"book_url"`
	DownloadPath string `toml:"download_path"`
	StartNumber  int    `toml:"force_start_number"`
	UseProfile   bool   `toml:"use_profile"`
	ProfilePath  string `toml:"profile_path"`
	ZoomLevel    int    `toml:"zoom_level"`
}

// ConverterSettings configures image format conversion.
type ConverterSettings struct {
	Directory      string `toml:"directory"`
	JPEGOutput     string `toml:"jpeg_output"`
	ApplySharpness bool   `toml:"apply_sharpness"`
}

// ReorderSettings configures natural-order renaming.
type ReorderSettings struct {
	Directory     string `toml:"directory"`
	FileExtension string `toml:"file_extension"`
	StartNumber   int    `toml:"start_number"`
}

// PDFSettings configures PDF assembly.
type PDFSettings struct {
	SourceDirectory string  `toml:"source_directory"`
	OutputFile      string  `toml:"output_file"`
	EnhanceColor    bool    `toml:"enhance_color"`
	ColorFactor     float64 `toml:"color_factor"`
}

// WindowSettings configures the browser window geometry.
type WindowSettings struct {
	BrowserWidth  int `toml:"browser_width"`
	BrowserHeight int `toml:"browser_height"`
	BrowserX      int `toml:"browser_x"`
	BrowserY      int `toml:"browser_y"`
}

// DefaultSettings returns the settings used when no file exists yet.
// Directories are rooted at dir, normally the working directory.
func DefaultSettings(dir string) *Settings {
	downloads := filepath.Join(dir, "Downloads")
	return &Settings{
		Scraper: ScraperSettings{
			BookURL:      DefaultBookURL,
			DownloadPath: downloads,
			StartNumber:  0,
			UseProfile:   true,
			ProfilePath:  filepath.Join(dir, "profile"),
			ZoomLevel:    100,
		},
		Converter: ConverterSettings{
			Directory:      downloads,
			ApplySharpness: true,
		},
		Reorder: ReorderSettings{
			Directory:     downloads,
			FileExtension: ".png",
			StartNumber:   0,
		},
		PDF: PDFSettings{
			SourceDirectory: downloads,
			OutputFile:      filepath.Join(dir, "output.pdf"),
			EnhanceColor:    true,
			ColorFactor:     1.5,
		},
		Window: WindowSettings{
			BrowserWidth:  1200,
			BrowserHeight: 800,
			BrowserX:      500,
			BrowserY:      100,
		},
	}
}

// SettingsStore loads and persists Settings.
type SettingsStore interface {
	// Load returns the stored settings, writing defaults if none exist.
	Load() (*Settings, error)

	// Save persists settings.
	Save(s *Settings) error
}
