// Package state implements the ETL's durable watermark store (C1): a
// single JSON file holding the {film_work,person,genre}_proceed_date_time
// map, rewritten atomically (temp file + rename) on every Set, in the
// style of the original Python JsonFileStorage. A sync.Mutex serializes
// writer access within the process, matching the single-writer
// concurrency note in spec.md §5 — external processes do not share the
// store.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// Store is a single-writer durable mapping from string key to string
// value. A crash during Set leaves the file in either the prior or the
// new state, never partially written.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// Open loads the state file at path, creating an empty store if the
// file does not yet exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("state: read %s: %w", path, err)
	}

	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("state: parse %s: %w", path, err)
	}
	return s, nil
}

// Get returns the value for k and whether it was present. Absent keys
// are the caller's cue to use a default (e.g. the epoch for a watermark).
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set persists key=value. It is durable on return: the whole map is
// serialized to a temp file in the same directory, fsynced, then
// renamed over the destination path so a crash mid-write cannot leave a
// partially-written state file.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	next[key] = value

	if err := s.writeAtomic(next); err != nil {
		return err
	}
	s.data = next
	return nil
}

func (s *Store) writeAtomic(data map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("state: mkdir %s: %w", dir, err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("state: encode: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("state: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("state: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("state: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("state: close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("state: rename %s to %s: %w", tmpPath, s.path, err)
	}
	return nil
}
