package scrape

import (
	"context"
	"fmt"

	"github.com/fwojciec/bookgrab"
)

// Snapshot holds what one sampling pass read from the viewer.
type Snapshot struct {
	// Container is the scrollable container the units were read from.
	Container bookgrab.Container

	// Locators are the extracted locators in display order. Units that
	// had not rendered their content are absent.
	Locators []bookgrab.Locator

	// Last is the last unit of the list, used as the next scroll target.
	// Nil if the list was empty.
	Last bookgrab.Unit
}

// Sample reads the units currently mounted in the viewer.
// A unit whose locator cannot be extracted is skipped. If the container or
// the list cannot be located, Sample returns an empty snapshot and an
// error carrying the viewer's code (usually ETIMEOUT). Sample never scrolls.
func Sample(ctx context.Context, viewer bookgrab.Viewer) (*Snapshot, error) {
	container, err := viewer.Container(ctx)
	if err != nil {
		return &Snapshot{}, fmt.Errorf("locating container: %w", err)
	}

	units, err := container.Units(ctx)
	if err != nil {
		return &Snapshot{}, fmt.Errorf("locating units: %w", err)
	}

	snap := &Snapshot{Container: container}
	if len(units) == 0 {
		return snap, nil
	}
	snap.Last = units[len(units)-1]

	snap.Locators = make([]bookgrab.Locator, 0, len(units))
	for _, unit := range units {
		loc, ok := unit.Locator(ctx)
		if !ok || loc == "" {
			continue
		}
		snap.Locators = append(snap.Locators, loc)
	}
	return snap, nil
}
