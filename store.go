package cashflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// File names inside a data directory.
const (
	CombinedFilename = "combined_transactions.csv"
	HistoryFilename  = "upload_history.json"
)

// Store persists the combined transactions of a data directory.
//
// Reads are cached: the file is decoded again only when its modification time
// changes, or when a watcher reports a change. Writes are atomic.
// A Store is safe for concurrent use.
type Store struct {
	dir string
	log zerolog.Logger
	now func() time.Time

	mu     sync.Mutex
	cache  Transactions
	mtime  time.Time
	cached bool
}

// NewStore returns a store for the data directory dir.
func NewStore(dir string, log zerolog.Logger) *Store {
	return &Store{dir: dir, log: log, now: time.Now}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the combined transactions file path.
func (s *Store) Path() string { return filepath.Join(s.dir, CombinedFilename) }

// HistoryPath returns the upload history file path.
func (s *Store) HistoryPath() string { return filepath.Join(s.dir, HistoryFilename) }

// Load returns the stored transactions. A missing file is an empty list.
// The returned slice must not be modified.
func (s *Store) Load() (Transactions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() (Transactions, error) {
	info, err := os.Stat(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		s.cache, s.mtime, s.cached = nil, time.Time{}, true
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.cached && info.ModTime().Equal(s.mtime) {
		return s.cache, nil
	}

	f, err := os.Open(s.Path())
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load %q: %w", s.Path(), err)
	}
	s.cache, s.mtime, s.cached = txs, info.ModTime(), true
	s.log.Debug().Str("path", s.Path()).Int("transactions", len(txs)).Msg("transactions loaded")
	return txs, nil
}

// Invalidate forgets the cached transactions.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = false
}

// Save replaces the stored transactions, sorted chronologically.
func (s *Store) Save(txs Transactions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(txs)
}

func (s *Store) save(txs Transactions) error {
	sorted := make(Transactions, len(txs))
	copy(sorted, txs)
	sorted.Sort()

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, sorted); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := renameio.WriteFile(s.Path(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot save %q: %w", s.Path(), err)
	}
	s.cached = false
	s.log.Info().Str("path", s.Path()).Int("transactions", len(sorted)).Msg("transactions saved")
	return nil
}

// Append adds transactions to the store, drops exact duplicates and saves.
// It returns the number of stored transactions.
func (s *Store) Append(txs Transactions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.load()
	if err != nil {
		return 0, err
	}
	all := make(Transactions, 0, len(existing)+len(txs))
	all = append(all, existing...)
	all = append(all, txs...)
	all = all.Dedup()
	if err := s.save(all); err != nil {
		return 0, err
	}
	return len(all), nil
}

// Watch invalidates the cache whenever the combined file changes, until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	// Watch the directory: atomic writes replace the file.
	if err := w.Add(s.dir); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != CombinedFilename {
				continue
			}
			s.log.Debug().Str("event", ev.Op.String()).Msg("transactions file changed")
			s.Invalidate()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(err).Msg("watcher error")
		}
	}
}
