// Package store provides key-value persistence for the portal collections.
// Values are opaque serialized documents keyed by collection name; a missing
// key is a normal outcome, not an error.
package store

import "fmt"

// Store defines operations all storage backends implement
type Store interface {
	// Get returns the stored value for the key. The second result is false
	// if the key was never written, distinguishing absence from an empty value.
	Get(key string) ([]byte, bool, error)
	// Set stores the value under the key, replacing any previous value
	Set(key string, val []byte) error
	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key string) error
	// Close releases backend resources
	Close() error
}

// validateKey rejects keys that can't be used safely across backends,
// in particular as file names in the file store
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key not allowed")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return fmt.Errorf("invalid key %q: character %q not allowed", key, r)
		}
	}
	return nil
}
