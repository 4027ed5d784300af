// Package instance keeps a single long-running watcher per config directory.
package instance

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/daychain/internal/constants"
)

// ErrAlreadyRunning is returned when another live process holds the lock.
var ErrAlreadyRunning = errors.New("another watcher is already running")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lockfile.
type Lock struct {
	path string
}

// Acquire creates path holding the current pid. A stale lockfile, left by a
// process that is gone or is not ours, is taken over.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	err := create(path)
	if errors.Is(err, fs.ErrExist) {
		if pid, perr := readPID(path); perr == nil && alive(pid) {
			return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
		// a watcher starting at the same moment may win the retry
		err = create(path)
		if errors.Is(err, fs.ErrExist) {
			return nil, ErrAlreadyRunning
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}
	return &Lock{path: path}, nil
}

// create fails with fs.ErrExist when path is already there.
func create(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(strconv.Itoa(getpidFunc()))
	if err := f.Close(); werr == nil {
		werr = err
	}
	if werr != nil {
		_ = os.Remove(path)
	}
	return werr
}

// Release removes the lockfile.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func readPID(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil {
		return 0, fmt.Errorf("invalid process ID in lockfile: %w", err)
	}
	return pid, nil
}

func alive(pid int) bool {
	if pid == getpidFunc() {
		return false
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
