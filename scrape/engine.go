package scrape

import "github.com/fwojciec/bookgrab"

// Engine assigns sequence numbers to newly seen locators.
// The number of a locator is its ledger index plus the run's offset, so
// numbers are gapless and strictly increasing in discovery order.
//
// Engine is not safe for concurrent use; the Session serializes access.
type Engine struct {
	ledger *Ledger
	offset int
}

// NewEngine returns an Engine with an empty ledger and a fixed offset.
func NewEngine(offset int) *Engine {
	return &Engine{
		ledger: NewLedger(),
		offset: offset,
	}
}

// Offset returns the sequence offset of the run.
func (e *Engine) Offset() int {
	return e.offset
}

// Len returns the number of distinct locators discovered so far.
func (e *Engine) Len() int {
	return e.ledger.Len()
}

// Locators returns a copy of the ledger in discovery order.
func (e *Engine) Locators() []bookgrab.Locator {
	return e.ledger.Locators()
}

// Seed records locators discovered by an earlier run without reporting
// them as new. It returns the number of locators added.
func (e *Engine) Seed(locators []bookgrab.Locator) int {
	var n int
	for _, loc := range locators {
		if loc == "" {
			continue
		}
		if _, added := e.ledger.Append(loc); added {
			n++
		}
	}
	return n
}

// Discover records every unseen locator, in order, and returns them with
// their assigned numbers. Locators already in the ledger are skipped.
// The result is empty if nothing new was found.
func (e *Engine) Discover(locators []bookgrab.Locator) []bookgrab.Discovery {
	var result []bookgrab.Discovery
	for _, loc := range locators {
		if loc == "" {
			continue
		}
		i, added := e.ledger.Append(loc)
		if !added {
			continue
		}
		result = append(result, bookgrab.Discovery{
			Locator: loc,
			Number:  i + e.offset,
		})
	}
	return result
}
