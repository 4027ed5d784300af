package storage

import (
	"errors"

	"github.com/julianstephens/daychain/internal/migration"
)

var (
	// ErrNotFound is returned by Get when nothing is stored under a key.
	ErrNotFound = errors.New("key not found")
	// ErrNotInitialized is returned by Load when the backing store does not exist yet.
	ErrNotInitialized = errors.New("storage not initialized")
)

// Provider is a flat key-value store. Values are opaque bytes; the State
// type layers typed records on top.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Records
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}

// SchemaProvider is implemented by SQL backends that track a schema version.
type SchemaProvider interface {
	SchemaRunner() (*migration.Runner, error)
}
