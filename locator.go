package bookgrab

import (
	"context"
	"time"
)

// Locator identifies the underlying content of one rendered page, typically
// the src of the page image. Two locators are the same page if and only if
// the strings are equal.
type Locator string

// Discovery pairs a newly seen locator with the number assigned to it.
type Discovery struct {
	Locator Locator
	Number  int
}

// DiscoveryFunc receives the discoveries of one sampling cycle, in
// discovery order.
type DiscoveryFunc func([]Discovery)

// Book summarizes a persisted ledger.
type Book struct {
	ID        string
	Key       string
	Count     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LedgerStore persists discovered locators per book so that a stopped run
// can be resumed without re-downloading pages.
type LedgerStore interface {
	// Load returns the persisted discoveries for key in discovery order.
	// Returns an empty slice if nothing is stored for key.
	Load(ctx context.Context, key string) ([]Discovery, error)

	// Append stores discoveries for key, creating the book if needed.
	Append(ctx context.Context, key string, discoveries []Discovery) error

	// List returns all persisted books.
	List(ctx context.Context) ([]*Book, error)

	// Delete removes a book and its discoveries.
	// Returns ENOTFOUND if the book does not exist.
	Delete(ctx context.Context, key string) error
}
