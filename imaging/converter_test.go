package imaging_test

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/fwojciec/bookgrab"
	bgimaging "github.com/fwojciec/bookgrab/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(c color.Color) *image.NRGBA {
	return imaging.New(8, 6, c)
}

func saveAs(t *testing.T, img image.Image, path string, format imaging.Format) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, imaging.Encode(f, img, format))
}

func formatOf(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return format
}

func TestConverter_ToPNG(t *testing.T) {
	t.Parallel()

	t.Run("converts images and fixes misnamed files", func(t *testing.T) {
		t.Parallel()

		// Given a JPEG, a real PNG, a JPEG saved under a .png name and a text file
		dir := t.TempDir()
		red := page(color.NRGBA{R: 200, A: 255})
		saveAs(t, red, filepath.Join(dir, "1.jpg"), imaging.JPEG)
		saveAs(t, red, filepath.Join(dir, "2.png"), imaging.PNG)
		saveAs(t, red, filepath.Join(dir, "3.png"), imaging.JPEG)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

		var reports []bookgrab.Progress
		result, err := bgimaging.NewConverter(bgimaging.WithConcurrency(2)).ToPNG(context.Background(), dir, func(p bookgrab.Progress) {
			reports = append(reports, p)
		})

		// Then every image is a PNG
		require.NoError(t, err)
		assert.Equal(t, 3, result.Found)
		assert.Equal(t, 3, result.Converted)
		assert.Zero(t, result.Failed)
		assert.Equal(t, []string{"3.png"}, result.Misnamed)
		for _, name := range []string{"1.png", "2.png", "3.png"} {
			assert.Equal(t, "png", formatOf(t, filepath.Join(dir, name)), name)
		}
		assert.Len(t, reports, 4)
	})

	t.Run("counts undecodable files as failed", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0o644))

		var errs int
		result, err := bgimaging.NewConverter().ToPNG(context.Background(), dir, func(p bookgrab.Progress) {
			if p.Err != nil {
				errs++
			}
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, errs)
		assert.NoFileExists(t, filepath.Join(dir, "broken.png"))
	})

	t.Run("returns error for missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := bgimaging.NewConverter().ToPNG(context.Background(), filepath.Join(t.TempDir(), "missing"), nil)

		require.Error(t, err)
	})
}

func TestConverter_ToJPEG(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "jpeg")
	saveAs(t, page(color.NRGBA{G: 120, A: 255}), filepath.Join(src, "0.png"), imaging.PNG)
	saveAs(t, page(color.NRGBA{B: 120, A: 128}), filepath.Join(src, "1.png"), imaging.PNG)

	n, err := bgimaging.NewConverter().ToJPEG(context.Background(), src, out, true, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "jpeg", formatOf(t, filepath.Join(out, "0.jpg")))
	assert.Equal(t, "jpeg", formatOf(t, filepath.Join(out, "1.jpg")))
}

func TestEnhance(t *testing.T) {
	t.Parallel()

	t.Run("factor one keeps opaque pixels", func(t *testing.T) {
		t.Parallel()

		src := page(color.NRGBA{R: 180, G: 90, B: 30, A: 255})

		got := bgimaging.Enhance(src, 1.0)

		assert.Equal(t, src.Pix, got.Pix)
	})

	t.Run("factor zero removes colour", func(t *testing.T) {
		t.Parallel()

		got := bgimaging.Enhance(page(color.NRGBA{R: 180, G: 90, B: 30, A: 255}), 0)

		c := got.NRGBAAt(0, 0)
		assert.Equal(t, c.R, c.G)
		assert.Equal(t, c.G, c.B)
	})

	t.Run("higher factor spreads channels apart", func(t *testing.T) {
		t.Parallel()

		src := page(color.NRGBA{R: 180, G: 90, B: 30, A: 255})

		got := bgimaging.Enhance(src, 1.5).NRGBAAt(0, 0)

		assert.Greater(t, int(got.R)-int(got.B), 180-30)
	})
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	got := bgimaging.Flatten(page(color.NRGBA{}))

	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, got.NRGBAAt(0, 0))
}
