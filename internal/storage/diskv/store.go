// Package diskv stores each record as a plain file in a directory, which
// keeps the state easy to inspect and to sync with ordinary file tools.
package diskv

import (
	"fmt"
	"os"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/daychain/internal/storage"
)

type Store struct {
	dir string
	d   *diskv.Diskv
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) open() {
	s.d = diskv.New(diskv.Options{
		BasePath:     s.dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 0, // other processes write the same files
		FilePerm:     0600,
		PathPerm:     0700,
	})
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	s.open()
	return nil
}

func (s *Store) Load() error {
	if s.d != nil {
		return nil
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w at %s", storage.ErrNotInitialized, s.dir)
		}
		return fmt.Errorf("failed to access storage directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	s.open()
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	value, err := s.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Put(key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Keys() ([]string, error) {
	var keys []string
	for key := range s.d.Keys(nil) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return s.dir
}
