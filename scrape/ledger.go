package scrape

import (
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/bookgrab"
)

// Ledger is the append-only record of locators discovered in a run.
// Membership is exact: locators are bucketed by their xxhash digest and
// compared by full string equality within a bucket, so a digest collision
// never hides a new page.
//
// Ledger is not safe for concurrent use.
type Ledger struct {
	locators []bookgrab.Locator
	index    map[uint64][]int
}

// NewLedger returns an empty Ledger.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[uint64][]int)}
}

// Contains reports whether loc has been recorded.
func (l *Ledger) Contains(loc bookgrab.Locator) bool {
	_, ok := l.find(loc, xxhash.Sum64String(string(loc)))
	return ok
}

// Append records loc and returns its 0-based discovery index.
// The bool result is false if loc was already recorded, in which case the
// returned index is the one assigned when it was first seen.
func (l *Ledger) Append(loc bookgrab.Locator) (int, bool) {
	h := xxhash.Sum64String(string(loc))
	if i, ok := l.find(loc, h); ok {
		return i, false
	}
	i := len(l.locators)
	l.locators = append(l.locators, loc)
	l.index[h] = append(l.index[h], i)
	return i, true
}

// Len returns the number of distinct locators recorded.
func (l *Ledger) Len() int {
	return len(l.locators)
}

// Locators returns a copy of the recorded locators in discovery order.
func (l *Ledger) Locators() []bookgrab.Locator {
	out := make([]bookgrab.Locator, len(l.locators))
	copy(out, l.locators)
	return out
}

func (l *Ledger) find(loc bookgrab.Locator, h uint64) (int, bool) {
	for _, i := range l.index[h] {
		if l.locators[i] == loc {
			return i, true
		}
	}
	return 0, false
}
