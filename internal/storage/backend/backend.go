// Package backend picks the storage implementation for a --config value.
package backend

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/keyring"
	"github.com/julianstephens/daychain/internal/logger"
	"github.com/julianstephens/daychain/internal/storage"
	"github.com/julianstephens/daychain/internal/storage/diskv"
	"github.com/julianstephens/daychain/internal/storage/postgres"
	"github.com/julianstephens/daychain/internal/storage/sqlite"
)

type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindDiskv    Kind = "diskv"
	KindJSON     Kind = "json"
)

// Detect classifies a storage location.
func Detect(location string) Kind {
	switch {
	case postgres.IsConnString(location):
		return KindPostgres
	case strings.HasPrefix(location, constants.DiskvScheme):
		return KindDiskv
	case strings.EqualFold(filepath.Ext(location), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// lookupKeyring is swapped in tests.
var lookupKeyring = keyring.GetConnectionString

// Resolve picks the storage location. The first non-empty of flag and
// settings wins; otherwise a connection string saved in the OS keyring is
// used, and failing that the default SQLite file.
func Resolve(flag, settings string) string {
	for _, candidate := range []string{flag, settings} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	connStr, err := lookupKeyring()
	if err == nil && connStr != "" {
		return connStr
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return constants.DefaultConfigPath
}

// Open returns an unopened provider for location. Callers still call Init or Load.
func Open(location string) (storage.Provider, error) {
	switch Detect(location) {
	case KindPostgres:
		if _, err := postgres.ValidateConnString(location); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) && fromKeyring(location) {
				// the keyring is an acceptable home for a password
				return postgres.New(location), nil
			}
			return nil, err
		}
		return postgres.New(location), nil
	case KindDiskv:
		dir, err := ExpandPath(strings.TrimPrefix(location, constants.DiskvScheme))
		if err != nil {
			return nil, err
		}
		return diskv.NewStore(dir), nil
	case KindJSON:
		path, err := ExpandPath(location)
		if err != nil {
			return nil, err
		}
		return storage.NewJSONStore(path), nil
	default:
		path, err := ExpandPath(location)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(path), nil
	}
}

func fromKeyring(location string) bool {
	connStr, err := lookupKeyring()
	return err == nil && connStr == location
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return expanded, nil
}

// ConfigDir is the directory that holds logs, backups and config.yaml for a
// storage location. Remote stores use the default local directory.
func ConfigDir(location string) string {
	if Detect(location) == KindPostgres {
		location = constants.DefaultConfigPath
	}
	location = strings.TrimPrefix(location, constants.DiskvScheme)
	path, err := ExpandPath(location)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}
