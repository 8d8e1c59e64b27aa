// Package storage provides file system operations for the contacts file.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jacksmith/cb/internal/model"
)

// DefaultFile is the contacts file used when no other path is configured.
const DefaultFile = "contacts.json"

// PersistenceError indicates the contacts file could not be read or written.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s contacts %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Storage reads and writes one contacts file.
type Storage struct {
	path   string
	format model.Format
}

// Open returns a Storage for the given file path.
// The file does not need to exist yet.
func Open(path string) *Storage {
	if path == "" {
		path = DefaultFile
	}
	return &Storage{path: path, format: model.FormatForPath(path)}
}

// Path returns the path of the contacts file.
func (s *Storage) Path() string {
	return s.path
}

// Exists reports whether the contacts file is present.
func (s *Storage) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads the contacts file.
// A missing file yields an empty book and no error.
// On read or parse failure an empty book is returned along with a
// *PersistenceError so callers can continue.
func (s *Storage) Load() (*model.Book, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.NewBook(), nil
		}
		return model.NewBook(), &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	b, err := model.Decode(data, s.format)
	if err != nil {
		return model.NewBook(), &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return b, nil
}

// Save overwrites the contacts file with the whole book.
// The data goes to a temporary file in the same directory which is then
// renamed over the target, so a failed write leaves the old file intact.
func (s *Storage) Save(b *model.Book) error {
	data, err := model.Encode(b, s.format)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// writeFileAtomic writes data to path via a temp file and rename.
// The temp file is removed on every error path.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
