package toml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("writes defaults when file is missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "config", "settings.toml")
		store := toml.NewSettingsStore(path, "/work")

		settings, err := store.Load()

		require.NoError(t, err)
		assert.Equal(t, bookgrab.DefaultSettings("/work"), settings)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[scraper]")
		assert.Contains(t, string(data), "force_start_number = 0")
	})

	t.Run("fills missing keys from defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.toml")
		content := "[scraper]\nforce_start_number = 12\n\n[pdf]\ncolor_factor = 2.0\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		store := toml.NewSettingsStore(path, "/work")

		settings, err := store.Load()

		require.NoError(t, err)
		assert.Equal(t, 12, settings.Scraper.StartNumber)
		assert.InDelta(t, 2.0, settings.PDF.ColorFactor, 1e-9)
		assert.Equal(t, filepath.Join("/work", "Downloads"), settings.Scraper.DownloadPath)
		assert.Equal(t, 1200, settings.Window.BrowserWidth)
	})

	t.Run("rejects malformed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("[scraper\n"), 0o600))
		store := toml.NewSettingsStore(path, "/work")

		_, err := store.Load()

		require.Error(t, err)
		assert.Equal(t, bookgrab.EINVALID, bookgrab.ErrorCode(err))
	})
}

func TestSettingsStore_Save(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.toml")
	store := toml.NewSettingsStore(path, "/work")

	settings := bookgrab.DefaultSettings("/work")
	settings.Scraper.BookURL = "https://play.google.com/books/reader?id=abc"
	settings.Reorder.FileExtension = ".jpg"
	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(toml.SettingsPathEnv, "/etc/bookgrab.toml")

	p, err := toml.DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, "/etc/bookgrab.toml", p)
}
