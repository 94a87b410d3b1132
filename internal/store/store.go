// Package store persists ClarityOS collections in a Badger database.
//
// The layout is one key per logical collection (see keys.go); every value is
// a single JSON document holding the whole collection. Mutations rewrite the
// full collection. This mirrors the storage contract the clients were built
// against: whole-collection reads and writes, JSON-serializable values, and
// last-write-wins semantics.
//
// Reads substitute a caller-supplied zero value when a key is absent or its
// payload fails to parse; the failure is logged, never surfaced. Routine
// collection writes log and swallow failures as well. The backup slots use
// the error-returning write path so the backup service can report failure.
//
// The store performs no cross-key transactions: a snapshot that reads ten
// namespaces sees each one at a slightly different instant. The deployment
// model is a single server process owning the database directory, so there
// are no concurrent writers to race against; do not add cross-key locking
// here without revisiting that assumption.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open creates a Store backed by the database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{db: db, logger: logger}
	logger.Info("database opened", "path", path)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReadJSON unmarshals the value at key into `into`. Returns false and leaves
// `into` untouched when the key is absent or the stored payload does not
// parse; both cases are logged and never propagate to the caller.
func (s *Store) ReadJSON(key string, into any) bool {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append(raw, val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false
	}
	if err != nil {
		s.logger.Warn("read failed, using default", "key", key, "error", err)
		return false
	}

	if err := json.Unmarshal(raw, into); err != nil {
		s.logger.Warn("stored value does not parse, using default", "key", key, "error", err)
		return false
	}
	return true
}

// WriteJSON marshals v and writes it at key. Used directly by callers that
// need to observe failure (the backup slots).
func (s *Store) WriteJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.SetRaw(key, data)
}

// GetRaw returns the raw stored bytes at key.
func (s *Store) GetRaw(key string) ([]byte, bool) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append(raw, val...)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.logger.Warn("raw read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

// SetRaw writes raw bytes at key.
func (s *Store) SetRaw(key string, raw []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// write is the swallow-on-failure variant used by routine collection saves.
// Matches the client contract: a failed save degrades to "nothing happened"
// rather than an error the UI has to handle.
func (s *Store) write(key string, v any) {
	if err := s.WriteJSON(key, v); err != nil {
		s.logger.Error("collection write dropped", "key", key, "error", err)
	}
}
