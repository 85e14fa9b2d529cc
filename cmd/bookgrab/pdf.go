package main

import (
	"fmt"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/pdfcpu"
)

// Run executes the pdf command.
func (c *PDFCmd) Run(deps *Dependencies) error {
	if c.Color <= 0 {
		return bookgrab.Errorf(bookgrab.EINVALID, "color factor must be positive")
	}

	progress := newProgressReporter(deps.Stderr, "Processing")
	err := pdfcpu.NewAssembler().Assemble(deps.Ctx, c.Src, c.Out, pdfcpu.Options{
		Enhance:     c.Enhance,
		ColorFactor: c.Color,
	}, progress.Report)
	progress.Finish()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "PDF created: %s\n", c.Out)

	deps.remember(func(s *bookgrab.Settings) {
		s.PDF.SourceDirectory = c.Src
		s.PDF.OutputFile = c.Out
		s.PDF.EnhanceColor = c.Enhance
		s.PDF.ColorFactor = c.Color
	})
	return nil
}
