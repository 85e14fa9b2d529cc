package main

import (
	"fmt"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/fs"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the reorder command.
func (c *ReorderCmd) Run(deps *Dependencies) error {
	if c.Preview {
		plan, err := fs.Plan(c.Dir, c.Ext, c.Start)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
			return err
		}
		if len(plan) == 0 {
			fmt.Fprintf(deps.Stdout, "No %s files in %s\n", c.Ext, c.Dir)
			return nil
		}

		t := newTable(deps.Stdout)
		t.AppendHeader(table.Row{"#", "Current name", "New name"})
		for i, r := range plan {
			t.AppendRow(table.Row{i + 1, r.From, r.To})
		}
		t.Render()
		return nil
	}

	progress := newProgressReporter(deps.Stderr, "Renaming")
	n, err := fs.Reorder(c.Dir, c.Ext, c.Start, progress.Report)
	progress.Finish()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Renamed %d files in %s\n", n, c.Dir)

	deps.remember(func(s *bookgrab.Settings) {
		s.Reorder.Directory = c.Dir
		s.Reorder.FileExtension = c.Ext
		s.Reorder.StartNumber = c.Start
	})
	return nil
}
