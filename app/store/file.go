package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	log "github.com/go-pkgz/lgr"
)

// File keeps each key as a json document in a directory, the closest analog
// to the browser's local storage. Writes go through a temp file and rename
// so a crash mid-write never leaves a truncated document behind.
type File struct {
	location string
	mu       sync.Mutex
}

// NewFile makes a file store in the given directory, creating it if needed
func NewFile(location string) (*File, error) {
	if err := os.MkdirAll(location, 0o700); err != nil {
		return nil, fmt.Errorf("can't make store directory %s: %w", location, err)
	}
	return &File{location: location}, nil
}

// Get reads the document for the key. A missing file reports absence, not an error.
func (f *File) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.fname(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes the document for the key atomically
func (f *File) Set(key string, val []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp, err := os.CreateTemp(f.location, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(val); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}
	if err = os.Rename(tmpName, f.fname(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	log.Printf("[DEBUG] stored %s, %d bytes", key, len(val))
	return nil
}

// Delete removes the document for the key, no-op if absent
func (f *File) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.fname(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Close is a no-op, files need no teardown
func (f *File) Close() error { return nil }

func (f *File) String() string { return fmt.Sprintf("file store at %s", f.location) }

func (f *File) fname(key string) string {
	return filepath.Join(f.location, key+".json")
}
