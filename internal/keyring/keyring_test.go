package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringLifecycle(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://daychain@localhost:5432/daychain?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestSetConnectionString_Whitespace(t *testing.T) {
	gokeyring.MockInit()
	for _, blank := range []string{"", "  \n"} {
		if err := SetConnectionString(blank); err == nil {
			t.Errorf("SetConnectionString(%q) should return an error", blank)
		}
	}

	if err := SetConnectionString("  postgres://daychain@db/daychain\n"); err != nil {
		t.Fatal(err)
	}
	if got, _ := GetConnectionString(); got != "postgres://daychain@db/daychain" {
		t.Errorf("stored %q", got)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()
	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}

	gokeyring.MockInitWithError(errors.New("no dbus"))
	if IsAvailable() {
		t.Error("failing keyring should not be available")
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrKeyringUnavailable)
	}
	if err := SetConnectionString("postgres://x@y/z"); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("SetConnectionString() error = %v, want %v", err, ErrKeyringUnavailable)
	}
}
