// Package storage persists small string values (the session token and the
// serialized profile) outside the process so they survive restarts.
//
// It plays the role browser local storage plays for a web client: a flat
// key/value namespace, no expiry, last writer wins.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
)

// Fixed keys used by the client and the session store.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// Storage is a durable key/value store.
type Storage interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
}

// Open returns the backend named by driver, rooted at dir.
func Open(driver, dir string) (Storage, error) {
	switch driver {
	case DriverFile, "":
		return NewFile(filepath.Join(dir, "state.yaml")), nil
	case DriverSQLite:
		return OpenSQLite(filepath.Join(dir, "state.db"))
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Close releases backend resources when the backend holds any.
func Close(s Storage) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
