// Package settings is the flat key/value store backing application state that
// must survive restarts (performance tier, first-run flag, user overrides).
// It is a plain JSON file; callers receive an explicit *Store rather than
// reaching for process-wide state.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is a JSON-on-disk key/value map. Every Set is written through to disk
// synchronously; there is no transactional batching.
type Store struct {
	log  *slog.Logger
	path string

	mu     sync.Mutex
	values map[string]any
}

// Open loads the store at path, creating an empty one when the file does not
// exist. A corrupt file is treated as empty and logged; losing preferences is
// preferable to refusing to start.
func Open(path string, log *slog.Logger) *Store {
	s := &Store{
		log:    log,
		path:   path,
		values: make(map[string]any),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("settings file unreadable, starting empty", "path", path, "error", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		log.Warn("settings file corrupt, starting empty", "path", path, "error", err)
		s.values = make(map[string]any)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the raw value for key, or def when absent.
func (s *Store) Get(key string, def any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// GetString returns the string value for key, or def when absent or not a
// string.
func (s *Store) GetString(key, def string) string {
	if v, ok := s.Get(key, def).(string); ok {
		return v
	}
	return def
}

// GetBool returns the bool value for key, or def when absent or not a bool.
func (s *Store) GetBool(key string, def bool) bool {
	if v, ok := s.Get(key, def).(bool); ok {
		return v
	}
	return def
}

// Set stores key=value and writes the file through to disk.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return s.save()
}

// Delete removes a key and writes the file through to disk.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.values, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
