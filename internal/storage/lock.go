package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var ErrLocked = errors.New("output file is in use by another run")

// lockedFile is an output file held under an advisory lock for its whole lifetime.
type lockedFile struct {
	*os.File
	lock *flock.Flock
}

func openLocked(path string, appendMode bool) (*lockedFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if !appendMode {
		flags |= os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &lockedFile{File: f, lock: lock}, nil
}

func (f *lockedFile) Close() error {
	err := f.File.Close()
	if uerr := f.lock.Unlock(); uerr != nil && err == nil {
		err = fmt.Errorf("release lock: %w", uerr)
	}
	return err
}
