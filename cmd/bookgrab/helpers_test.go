package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fwojciec/bookgrab"
	main "github.com/fwojciec/bookgrab/cmd/bookgrab"
	"github.com/fwojciec/bookgrab/mock"
)

// testDeps holds Dependencies plus captured output and saved settings.
type testDeps struct {
	*main.Dependencies
	stdout *bytes.Buffer
	stderr *bytes.Buffer

	mu    sync.Mutex
	saved *bookgrab.Settings
}

func newTestDeps() *testDeps {
	td := &testDeps{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	td.Dependencies = &main.Dependencies{
		Ctx:      context.Background(),
		Stdin:    strings.NewReader(""),
		Stdout:   td.stdout,
		Stderr:   td.stderr,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Settings: bookgrab.DefaultSettings("/work"),
		SettingsStore: &mock.SettingsStore{
			SaveFn: func(s *bookgrab.Settings) error {
				td.mu.Lock()
				defer td.mu.Unlock()
				cp := *s
				td.saved = &cp
				return nil
			},
		},
	}
	return td
}

func (td *testDeps) Saved() *bookgrab.Settings {
	td.mu.Lock()
	defer td.mu.Unlock()
	return td.saved
}
