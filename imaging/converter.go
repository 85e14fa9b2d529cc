// Package imaging converts and enhances downloaded page images.
package imaging

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/fs"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of images processed at once.
const DefaultConcurrency = 4

// DefaultColorFactor is the saturation factor used when enhancing colour.
const DefaultColorFactor = 1.5

// SharpenSigma is the Gaussian sigma of the sharpening applied to JPEG output.
const SharpenSigma = 1.2

// sourceExts are the extensions ToPNG picks up, matched case-insensitively.
var sourceExts = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".webp"}

// Converter converts directories of images.
type Converter struct {
	concurrency int
}

// ConverterOption configures a Converter.
type ConverterOption func(*Converter)

// WithConcurrency sets how many images are processed at once.
// Defaults to 4 if not specified.
func WithConcurrency(n int) ConverterOption {
	return func(c *Converter) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewConverter creates a Converter.
func NewConverter(opts ...ConverterOption) *Converter {
	c := &Converter{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PNGResult summarizes a ToPNG run.
type PNGResult struct {
	Found     int
	Converted int
	Failed    int
	// Misnamed lists files with a .png extension holding another format.
	Misnamed []string
}

// ToPNG converts every image in dir to "<stem>.png" alongside it.
// Files that are already PNG are counted as converted and left untouched.
// Per-file failures are reported through progress and counted.
func (c *Converter) ToPNG(ctx context.Context, dir string, progress bookgrab.ProgressFunc) (*PNGResult, error) {
	names, err := listImages(dir)
	if err != nil {
		return nil, err
	}

	result := &PNGResult{Found: len(names)}
	formats := make([]string, len(names))
	for i, name := range names {
		format, err := sniff(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		formats[i] = format
		if format != "png" && strings.EqualFold(filepath.Ext(name), ".png") {
			result.Misnamed = append(result.Misnamed, name)
		}
	}

	r := newReporter(progress, len(names))
	r.message(fmt.Sprintf("found %d image files", len(names)))

	var mu sync.Mutex
	err = c.each(ctx, names, func(i int, name string) {
		path := filepath.Join(dir, name)
		err := convertToPNG(path, formats[i])

		mu.Lock()
		if err != nil {
			result.Failed++
		} else {
			result.Converted++
		}
		mu.Unlock()

		r.step(name, err)
	})
	return result, err
}

func convertToPNG(path, format string) error {
	isPNGName := strings.EqualFold(filepath.Ext(path), ".png")
	if format == "png" && isPNGName {
		return nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	target := strings.TrimSuffix(path, filepath.Ext(path)) + ".png"
	return writeImage(img, target, imaging.PNG)
}

// ToJPEG converts every .png in src to a .jpg of the same stem in out,
// creating out if needed. Alpha is flattened onto white. If sharpen is true
// the image is sharpened before encoding. Returns the number of files written.
func (c *Converter) ToJPEG(ctx context.Context, src, out string, sharpen bool, progress bookgrab.ProgressFunc) (int, error) {
	if err := os.MkdirAll(out, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}
	names, err := fs.List(src, ".png")
	if err != nil {
		return 0, err
	}

	r := newReporter(progress, len(names))
	var mu sync.Mutex
	written := 0
	err = c.each(ctx, names, func(_ int, name string) {
		err := convertToJPEG(filepath.Join(src, name), filepath.Join(out, strings.TrimSuffix(name, ".png")+".jpg"), sharpen)
		if err == nil {
			mu.Lock()
			written++
			mu.Unlock()
		}
		r.step(name, err)
	})
	return written, err
}

func convertToJPEG(src, dst string, sharpen bool) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(src), err)
	}
	flat := Flatten(img)
	if sharpen {
		flat = imaging.Sharpen(flat, SharpenSigma)
	}
	return writeImage(flat, dst, imaging.JPEG, imaging.JPEGQuality(100))
}

// Flatten composites img onto an opaque white background.
func Flatten(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// Enhance adjusts colour saturation by factor: 1.0 leaves the image
// unchanged, 1.5 is half again as saturated, 0 is greyscale. The result is
// opaque.
func Enhance(img image.Image, factor float64) *image.NRGBA {
	flat := Flatten(img)
	if factor == 1.0 {
		return flat
	}
	pct := (factor - 1.0) * 100
	pct = max(-100, min(100, pct))
	return imaging.AdjustSaturation(flat, pct)
}

// EnhanceFile decodes path and returns it colour enhanced by factor.
func EnhanceFile(path string, factor float64) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return Enhance(img, factor), nil
}

// each runs fn for every name with bounded concurrency. It returns the
// context's error if ctx ends before all names are processed.
func (c *Converter) each(ctx context.Context, names []string, fn func(i int, name string)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(i, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// writeImage encodes img to path through a temporary file in the same
// directory, so that a failed encode never truncates an existing file.
func writeImage(img image.Image, path string, format imaging.Format, opts ...imaging.EncodeOption) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bookgrab-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := imaging.Encode(tmp, img, format, opts...); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	_, format, err := image.DecodeConfig(f)
	return format, err
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, want := range sourceExts {
			if ext == want {
				names = append(names, e.Name())
				break
			}
		}
	}
	fs.NaturalSort(names)
	return names, nil
}

// reporter serializes progress calls from concurrent workers.
type reporter struct {
	mu    sync.Mutex
	fn    bookgrab.ProgressFunc
	done  int
	total int
}

func newReporter(fn bookgrab.ProgressFunc, total int) *reporter {
	return &reporter{fn: fn, total: total}
}

func (r *reporter) message(msg string) {
	if r.fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fn(bookgrab.Progress{Message: msg, Done: r.done, Total: r.total})
}

func (r *reporter) step(msg string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	if r.fn != nil {
		r.fn(bookgrab.Progress{Message: msg, Done: r.done, Total: r.total, Err: err})
	}
}

// EnhanceTo writes src colour enhanced by factor to dst as a PNG.
func EnhanceTo(src, dst string, factor float64) error {
	img, err := EnhanceFile(src, factor)
	if err != nil {
		return err
	}
	return writeImage(img, dst, imaging.PNG)
}
