package fs

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fwojciec/bookgrab"
)

// List returns the names of the regular files in dir ending in ext, in
// natural order.
func List(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ext) {
			names = append(names, e.Name())
		}
	}
	NaturalSort(names)
	return names, nil
}

// Rename is one planned step of Reorder.
type Rename struct {
	From string
	To   string
}

// Plan returns the final renames Reorder would perform on dir.
func Plan(dir, ext string, start int) ([]Rename, error) {
	names, err := List(dir, ext)
	if err != nil {
		return nil, err
	}
	plan := make([]Rename, len(names))
	for i, name := range names {
		plan[i] = Rename{From: name, To: strconv.Itoa(start+i) + ext}
	}
	return plan, nil
}

// Reorder renames the files in dir ending in ext to start, start+1, ... in
// natural order. Files are first moved into a fresh hidden subdirectory so
// that no final name can collide with a file that has yet to be renamed, and
// are never renamed over an existing file. Per-file failures are reported
// through progress and the file is skipped; a file that could not be given
// its final name stays in the subdirectory. Returns the number of files
// given their final name.
func Reorder(dir, ext string, start int, progress bookgrab.ProgressFunc) (int, error) {
	if progress == nil {
		progress = func(bookgrab.Progress) {}
	}

	names, err := List(dir, ext)
	if err != nil {
		return 0, err
	}
	total := len(names) * 2
	progress(bookgrab.Progress{Message: fmt.Sprintf("found %d %s files", len(names), ext), Total: total})
	if len(names) == 0 {
		return 0, nil
	}

	staging, err := os.MkdirTemp(dir, ".reorder-*")
	if err != nil {
		return 0, fmt.Errorf("creating staging directory: %w", err)
	}

	staged := make([]string, len(names))
	for i, name := range names {
		temp := filepath.Join(staging, strconv.Itoa(i)+ext)
		if err := renameNew(filepath.Join(dir, name), temp); err != nil {
			progress(bookgrab.Progress{Message: name, Done: i + 1, Total: total, Err: err})
			continue
		}
		staged[i] = temp
		progress(bookgrab.Progress{Message: name, Done: i + 1, Total: total})
	}

	renamed := 0
	for i, temp := range staged {
		done := len(names) + i + 1
		if temp == "" {
			continue
		}
		final := strconv.Itoa(start+i) + ext
		if err := renameNew(temp, filepath.Join(dir, final)); err != nil {
			progress(bookgrab.Progress{Message: names[i] + " (kept as " + temp + ")", Done: done, Total: total, Err: err})
			continue
		}
		renamed++
		progress(bookgrab.Progress{Message: names[i] + " -> " + final, Done: done, Total: total})
	}

	// Left in place when a file could not be moved out of it.
	if renamed == countStaged(staged) {
		if err := os.Remove(staging); err != nil {
			return renamed, fmt.Errorf("removing staging directory: %w", err)
		}
	}
	return renamed, nil
}

// renameNew renames from to to, refusing to replace an existing file.
func renameNew(from, to string) error {
	if _, err := os.Lstat(to); err == nil {
		return bookgrab.Errorf(bookgrab.EINVALID, "%s already exists", filepath.Base(to))
	} else if !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return os.Rename(from, to)
}

func countStaged(staged []string) int {
	n := 0
	for _, s := range staged {
		if s != "" {
			n++
		}
	}
	return n
}
