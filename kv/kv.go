// Package kv is the durable key-value layer under the application state.
// One key maps to one JSON blob. Errors never cross this boundary: a failed
// write or an unreadable blob is logged, reported through the notifier, and
// the caller keeps going with its in-memory state.
package kv

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Store is the persistence contract the state container writes through.
type Store interface {
	// Save serializes value under key. It reports success; on failure the
	// condition has already been logged and notified.
	Save(key string, value any) bool
	// Load reads the blob at key into out. It returns false when the key is
	// absent or unreadable, in which case out is left untouched so the
	// caller's default survives.
	Load(key string, out any) bool
	// Remove deletes the blob at key, best effort.
	Remove(key string)
	// Clear removes all the given keys, best effort.
	Clear(keys ...string)
}

// Notifier receives user-facing durability warnings. A nil notifier drops
// the message.
type Notifier func(msg string)

// DirStore persists each key as a JSON file in a directory. Human readable
// and diff friendly, so the data directory can live in a private repo.
type DirStore struct {
	dir    string
	notify Notifier
}

// NewDirStore creates the directory if needed and returns a store over it.
func NewDirStore(dir string, notify Notifier) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	return &DirStore{dir: dir, notify: notify}, nil
}

func (s *DirStore) path(key string) string {
	// keys are fixed application constants, but keep the filename safe anyway
	name := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, name+".json")
}

func (s *DirStore) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	if s.notify != nil {
		s.notify(msg)
	}
}

// Save writes value as pretty JSON under key, via a temp file and rename so
// a crash mid-write never truncates the previous blob.
func (s *DirStore) Save(key string, value any) bool {
	content, err := json.MarshalIndent(value, "", " ")
	if err != nil {
		s.warn("cannot serialize %q: %v", key, err)
		return false
	}
	file := s.path(key)
	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, content, 0o644); err != nil {
		s.warn("cannot save %q: %v (data kept in memory only)", key, err)
		return false
	}
	if err := os.Rename(tmp, file); err != nil {
		s.warn("cannot save %q: %v (data kept in memory only)", key, err)
		os.Remove(tmp)
		return false
	}
	return true
}

// Load reads the blob at key into out.
func (s *DirStore) Load(key string, out any) bool {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		// absent is the normal first-run case, not worth a warning
		if !os.IsNotExist(err) {
			s.warn("cannot read %q: %v (using defaults)", key, err)
		}
		return false
	}
	if err := json.Unmarshal(content, out); err != nil {
		s.warn("cannot parse %q: %v (using defaults)", key, err)
		return false
	}
	return true
}

// Remove deletes the blob at key.
func (s *DirStore) Remove(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		log.Printf("cannot remove %q: %v", key, err)
	}
}

// Clear removes all the given keys.
func (s *DirStore) Clear(keys ...string) {
	for _, key := range keys {
		s.Remove(key)
	}
}
