package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/bookgrab"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/schollz/progressbar/v3"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetOutputMirror(w)
	return t
}

// progressReporter renders batch progress as a bar and collects per-file
// failures to print once the bar is done.
type progressReporter struct {
	w        io.Writer
	desc     string
	bar      *progressbar.ProgressBar
	failures []string
}

func newProgressReporter(w io.Writer, desc string) *progressReporter {
	return &progressReporter{w: w, desc: desc}
}

func (r *progressReporter) Report(p bookgrab.Progress) {
	if p.Err != nil {
		r.failures = append(r.failures, fmt.Sprintf("%s: %v", p.Message, p.Err))
	}
	if p.Total == 0 {
		return
	}
	if r.bar == nil {
		r.bar = progressbar.NewOptions(p.Total,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionSetDescription(r.desc),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = r.bar.Set(p.Done)
}

// Finish clears the bar and prints collected failures.
// Returns the number of failures.
func (r *progressReporter) Finish() int {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	for _, f := range r.failures {
		fmt.Fprintf(r.w, "failed: %s\n", f)
	}
	return len(r.failures)
}
