package main

import (
	"fmt"

	"github.com/fwojciec/bookgrab"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the books command.
func (c *BooksCmd) Run(deps *Dependencies) error {
	books, err := deps.Ledger.List(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved ledgers. Use 'bookgrab scrape' to capture a book.")
		return nil
	}

	t := newTable(deps.Stdout)
	t.AppendHeader(table.Row{"Book", "Pages", "Updated"})
	for _, b := range books {
		t.AppendRow(table.Row{b.Key, b.Count, b.UpdatedAt.Local().Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return bookgrab.Errorf(bookgrab.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Ledger.Delete(deps.Ctx, c.Key); err != nil {
		if bookgrab.ErrorCode(err) == bookgrab.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: book %q not found. Use 'bookgrab books' to see saved ledgers.\n", c.Key)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", bookgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Forgot book %q\n", c.Key)
	return nil
}
