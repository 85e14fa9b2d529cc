package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/imaging"
)

// Run executes the png command.
func (c *PNGCmd) Run(deps *Dependencies) error {
	progress := newProgressReporter(deps.Stderr, "Converting")
	result, err := imaging.NewConverter(imaging.WithConcurrency(c.Concurrency)).
		ToPNG(deps.Ctx, c.Dir, progress.Report)
	progress.Finish()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
		return err
	}

	for _, name := range result.Misnamed {
		fmt.Fprintf(deps.Stdout, "Fixed misnamed file: %s\n", name)
	}
	fmt.Fprintf(deps.Stdout, "Converted %d of %d images in %s\n", result.Converted, result.Found, c.Dir)

	deps.remember(func(s *bookgrab.Settings) {
		s.Converter.Directory = c.Dir
	})
	return nil
}

// Run executes the jpeg command.
func (c *JPEGCmd) Run(deps *Dependencies) error {
	out := c.Out
	if out == "" {
		out = filepath.Join(c.Src, "jpeg")
	}

	progress := newProgressReporter(deps.Stderr, "Converting")
	n, err := imaging.NewConverter(imaging.WithConcurrency(c.Concurrency)).
		ToJPEG(deps.Ctx, c.Src, out, c.Sharpen, progress.Report)
	progress.Finish()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %d JPEG files to %s\n", n, out)

	deps.remember(func(s *bookgrab.Settings) {
		s.Converter.Directory = c.Src
		s.Converter.JPEGOutput = c.Out
		s.Converter.ApplySharpness = c.Sharpen
	})
	return nil
}
