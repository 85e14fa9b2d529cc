package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/bookgrab"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ bookgrab.LedgerStore = (*LedgerStore)(nil)

// LedgerStore implements bookgrab.LedgerStore using SQLite.
type LedgerStore struct {
	db *DB
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(db *DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// Load returns the discoveries persisted for key, ordered by discovery.
func (s *LedgerStore) Load(ctx context.Context, key string) ([]bookgrab.Discovery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.locator, l.number
		FROM locators l
		JOIN books b ON b.id = l.book_id
		WHERE b.key = ?
		ORDER BY l.position
	`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	discoveries := []bookgrab.Discovery{}
	for rows.Next() {
		var loc string
		var d bookgrab.Discovery
		if err := rows.Scan(&loc, &d.Number); err != nil {
			return nil, err
		}
		d.Locator = bookgrab.Locator(loc)
		discoveries = append(discoveries, d)
	}
	return discoveries, rows.Err()
}

// Append stores discoveries for key after the ones already persisted.
// Locators already stored for the book are ignored.
func (s *LedgerStore) Append(ctx context.Context, key string, discoveries []bookgrab.Discovery) error {
	if key == "" {
		return bookgrab.Errorf(bookgrab.EINVALID, "book key required")
	}
	if len(discoveries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	var bookID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM books WHERE key = ?`, key).Scan(&bookID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		bookID = uuid.New().String()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO books (id, key, created_at, updated_at) VALUES (?, ?, ?, ?)
		`, bookID, key, now, now); err != nil {
			return fmt.Errorf("failed to create book: %w", err)
		}
	case err != nil:
		return err
	default:
		if _, err := tx.ExecContext(ctx, `UPDATE books SET updated_at = ? WHERE id = ?`, now, bookID); err != nil {
			return err
		}
	}

	var next int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position) + 1, 0) FROM locators WHERE book_id = ?
	`, bookID).Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO locators (book_id, position, locator, number, discovered_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range discoveries {
		res, err := stmt.ExecContext(ctx, bookID, next, string(d.Locator), d.Number, now)
		if err != nil {
			return fmt.Errorf("failed to store locator %d: %w", d.Number, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
		}
	}

	return tx.Commit()
}

// List returns all books with their page counts, most recently updated first.
func (s *LedgerStore) List(ctx context.Context) ([]*bookgrab.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.key, COUNT(l.locator), b.created_at, b.updated_at
		FROM books b
		LEFT JOIN locators l ON l.book_id = b.id
		GROUP BY b.id
		ORDER BY b.updated_at DESC, b.key
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*bookgrab.Book
	for rows.Next() {
		var book bookgrab.Book
		var createdAt, updatedAt string
		if err := rows.Scan(&book.ID, &book.Key, &book.Count, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if book.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if book.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	return books, rows.Err()
}

// Delete removes a book and its locators.
func (s *LedgerStore) Delete(ctx context.Context, key string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE key = ?`, key)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return bookgrab.Errorf(bookgrab.ENOTFOUND, "book not found")
	}
	return nil
}
