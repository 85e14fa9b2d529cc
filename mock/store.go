package mock

import (
	"context"

	"github.com/fwojciec/bookgrab"
)

// Compile-time interface verification.
var (
	_ bookgrab.LedgerStore   = (*LedgerStore)(nil)
	_ bookgrab.SettingsStore = (*SettingsStore)(nil)
)

// LedgerStore is a mock implementation of bookgrab.LedgerStore.
type LedgerStore struct {
	LoadFn   func(ctx context.Context, key string) ([]bookgrab.Discovery, error)
	AppendFn func(ctx context.Context, key string, discoveries []bookgrab.Discovery) error
	ListFn   func(ctx context.Context) ([]*bookgrab.Book, error)
	DeleteFn func(ctx context.Context, key string) error
}

func (s *LedgerStore) Load(ctx context.Context, key string) ([]bookgrab.Discovery, error) {
	return s.LoadFn(ctx, key)
}

func (s *LedgerStore) Append(ctx context.Context, key string, discoveries []bookgrab.Discovery) error {
	return s.AppendFn(ctx, key, discoveries)
}

func (s *LedgerStore) List(ctx context.Context) ([]*bookgrab.Book, error) {
	return s.ListFn(ctx)
}

func (s *LedgerStore) Delete(ctx context.Context, key string) error {
	return s.DeleteFn(ctx, key)
}

// SettingsStore is a mock implementation of bookgrab.SettingsStore.
type SettingsStore struct {
	LoadFn func() (*bookgrab.Settings, error)
	SaveFn func(s *bookgrab.Settings) error
}

func (s *SettingsStore) Load() (*bookgrab.Settings, error) {
	return s.LoadFn()
}

func (s *SettingsStore) Save(settings *bookgrab.Settings) error {
	return s.SaveFn(settings)
}
