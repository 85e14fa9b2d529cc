package pdfcpu_test

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePages(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		img := imaging.New(20, 30, color.NRGBA{R: 150, G: 100, B: 50, A: 255})
		require.NoError(t, imaging.Save(img, filepath.Join(dir, name)))
	}
}

func TestAssembler_Assemble(t *testing.T) {
	t.Parallel()

	t.Run("writes one page per image", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writePages(t, src, "0.png", "1.png", "2.png")
		out := filepath.Join(t.TempDir(), "book.pdf")

		err := pdfcpu.NewAssembler().Assemble(context.Background(), src, out, pdfcpu.Options{}, nil)

		require.NoError(t, err)
		n, err := api.PageCountFile(out)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("replaces existing output when enhancing", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		writePages(t, src, "0.png", "1.png")
		out := filepath.Join(t.TempDir(), "book.pdf")
		asm := pdfcpu.NewAssembler()
		opts := pdfcpu.Options{Enhance: true, ColorFactor: 1.5}

		var reports int
		require.NoError(t, asm.Assemble(context.Background(), src, out, opts, nil))
		require.NoError(t, asm.Assemble(context.Background(), src, out, opts, func(bookgrab.Progress) { reports++ }))

		n, err := api.PageCountFile(out)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 3, reports)
	})

	t.Run("returns not found without PNGs", func(t *testing.T) {
		t.Parallel()

		src := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("x"), 0o644))

		err := pdfcpu.NewAssembler().Assemble(context.Background(), src, filepath.Join(src, "out.pdf"), pdfcpu.Options{}, nil)

		assert.Equal(t, bookgrab.ENOTFOUND, bookgrab.ErrorCode(err))
	})
}
