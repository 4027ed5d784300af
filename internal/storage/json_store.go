package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type jsonFile struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// JSONStore keeps every record in a single human-readable file. Values must
// themselves be JSON documents. The file is re-read whenever another process
// has replaced it since the last load or save.
type JSONStore struct {
	path  string
	mu    sync.Mutex
	store *jsonFile
	// stamp of the file this store last read or wrote
	modTime time.Time
	size    int64
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.store = &jsonFile{
		Version: 1,
		Entries: make(map[string]json.RawMessage),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() error {
	// stat before reading: a write racing the read shows up on the next check
	info, statErr := os.Stat(s.path)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w at %s", ErrNotInitialized, s.path)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &jsonFile{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Entries == nil {
		store.Entries = make(map[string]json.RawMessage)
	}
	s.store = store
	if statErr == nil {
		s.modTime, s.size = info.ModTime(), info.Size()
	}
	return nil
}

// fresh reloads the file when its stamp no longer matches.
func (s *JSONStore) fresh() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return nil
	}
	if info.ModTime().Equal(s.modTime) && info.Size() == s.size {
		return nil
	}
	return s.load()
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// write then rename so a crash never leaves a truncated file
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if info, err := os.Stat(s.path); err == nil {
		s.modTime, s.size = info.ModTime(), info.Size()
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fresh(); err != nil {
		return nil, err
	}
	value, ok := s.store.Entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *JSONStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fresh(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("value for %s is not valid JSON", key)
	}
	raw := make(json.RawMessage, len(value))
	copy(raw, value)
	s.store.Entries[key] = raw
	return s.save()
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fresh(); err != nil {
		return err
	}
	if _, ok := s.store.Entries[key]; !ok {
		return nil
	}
	delete(s.store.Entries, key)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fresh(); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(s.store.Entries))
	for k := range s.store.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// GetConfigPath returns the path to the storage file.
//
// Writers are not locked against each other: two processes saving in the same
// instant may still lose one write.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
