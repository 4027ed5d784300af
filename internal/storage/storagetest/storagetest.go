// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/daychain/internal/storage"
)

// Run exercises p, which must already be initialized and empty.
func Run(t *testing.T, p storage.Provider) {
	t.Helper()

	t.Run("missing key", func(t *testing.T) {
		if _, err := p.Get("absent"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("put get overwrite", func(t *testing.T) {
		if err := p.Put("chain", []byte(`["2024-03-14"]`)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
		if err := p.Put("chain", []byte(`["2024-03-14","2024-03-15"]`)); err != nil {
			t.Fatalf("Put() overwrite error = %v", err)
		}
		got, err := p.Get("chain")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if string(got) != `["2024-03-14","2024-03-15"]` {
			t.Errorf("Get() = %s", got)
		}
	})

	t.Run("keys sorted", func(t *testing.T) {
		for _, k := range []string{"routines", "current_routine"} {
			if err := p.Put(k, []byte(`{}`)); err != nil {
				t.Fatalf("Put(%s) error = %v", k, err)
			}
		}
		keys, err := p.Keys()
		if err != nil {
			t.Fatalf("Keys() error = %v", err)
		}
		want := []string{"chain", "current_routine", "routines"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("Keys() = %v, want %v", keys, want)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := p.Delete("routines"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := p.Get("routines"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get() after delete error = %v", err)
		}
		if err := p.Delete("routines"); err != nil {
			t.Errorf("second Delete() error = %v", err)
		}
	})
}
