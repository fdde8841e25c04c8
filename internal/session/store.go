// Package session owns per-person profile persistence and the
// reset-on-new-session rule: a process-wide session identifier is
// compared against the last-seen identifier, and on mismatch all stored
// profiles are cleared and defaulted.
package session

import (
	"errors"
	"fmt"
	"os"
	"sync"

	json "github.com/goccy/go-json"
)

// SchemaVersion tags the store format. The original store carried no
// version; absent versions are read as 1.
const SchemaVersion = 1

const (
	versionKey   = "schema_version"
	sessionIDKey = "session.id"
)

// FileStore is a simple key-value store persisted as a single JSON
// document. Values are JSON-compatible scalars and arrays keyed by stable
// per-field names.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewFileStore opens (or creates) a store at path.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		values: make(map[string]json.RawMessage),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", path, err)
	}
	if len(data) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", path, err)
	}
	return fs, nil
}

// Get unmarshals the value stored under key into out. The bool reports
// whether the key was present; absent keys leave out untouched so the
// caller's default survives.
func (fs *FileStore) Get(key string, out any) (bool, error) {
	fs.mu.Lock()
	raw, ok := fs.values[key]
	fs.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("failed to decode key %s: %w", key, err)
	}
	return true, nil
}

// Set stores a value under key and persists the store.
func (fs *FileStore) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", key, err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = raw
	return fs.flushLocked()
}

// Delete removes a key and persists the store. Deleting an absent key is
// a no-op.
func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.flushLocked()
}

// DeletePrefix removes every key with the given prefix and persists the
// store.
func (fs *FileStore) DeletePrefix(prefix string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	changed := false
	for key := range fs.values {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(fs.values, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return fs.flushLocked()
}

func (fs *FileStore) flushLocked() error {
	version, _ := json.Marshal(SchemaVersion)
	fs.values[versionKey] = version

	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if err := os.WriteFile(fs.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", fs.path, err)
	}
	return nil
}
