// Package pdfcpu bundles page images into a PDF using pdfcpu.
package pdfcpu

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/bookgrab"
	bgfs "github.com/fwojciec/bookgrab/fs"
	"github.com/fwojciec/bookgrab/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Options controls PDF assembly.
type Options struct {
	// Enhance applies colour enhancement to each page before import.
	Enhance bool

	// ColorFactor is the saturation factor used when Enhance is set.
	// Zero means imaging.DefaultColorFactor.
	ColorFactor float64
}

// Assembler builds one PDF from a directory of PNG pages.
type Assembler struct {
	conf *model.Configuration
}

// NewAssembler creates an Assembler with pdfcpu's default configuration.
func NewAssembler() *Assembler {
	return &Assembler{conf: model.NewDefaultConfiguration()}
}

// Assemble writes every .png in src, in natural order, as one page each to
// out, replacing out if it exists. Returns ENOTFOUND if src has no PNGs.
// Pages that fail to enhance are reported through progress and skipped.
func (a *Assembler) Assemble(ctx context.Context, src, out string, opts Options, progress bookgrab.ProgressFunc) error {
	if progress == nil {
		progress = func(bookgrab.Progress) {}
	}

	names, err := bgfs.List(src, ".png")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return bookgrab.Errorf(bookgrab.ENOTFOUND, "no PNG images found in %s", src)
	}

	files := make([]string, 0, len(names))
	if opts.Enhance {
		factor := opts.ColorFactor
		if factor == 0 {
			factor = imaging.DefaultColorFactor
		}

		tmp, err := os.MkdirTemp("", "bookgrab-pdf-*")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)

		for i, name := range names {
			if err := ctx.Err(); err != nil {
				return err
			}
			dst := filepath.Join(tmp, fmt.Sprintf("%06d.png", i))
			err := imaging.EnhanceTo(filepath.Join(src, name), dst, factor)
			progress(bookgrab.Progress{Message: name, Done: i + 1, Total: len(names), Err: err})
			if err != nil {
				continue
			}
			files = append(files, dst)
		}
	} else {
		for i, name := range names {
			files = append(files, filepath.Join(src, name))
			progress(bookgrab.Progress{Message: name, Done: i + 1, Total: len(names)})
		}
	}

	if len(files) == 0 {
		return bookgrab.Errorf(bookgrab.ENOTFOUND, "no readable PNG images in %s", src)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// ImportImagesFile appends to an existing file.
	if err := os.Remove(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replacing %s: %w", out, err)
	}
	if err := api.ImportImagesFile(files, out, nil, a.conf); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	progress(bookgrab.Progress{Message: "created " + out, Done: len(names), Total: len(names)})
	return nil
}
