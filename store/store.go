// ==============================================================================================
// FILE: store/store.go
// ==============================================================================================
// PACKAGE: store
// PURPOSE: Line-oriented program persistence for SAVE/LOAD, backed by the filesystem. Kept
//          out of interp so the interpreter's RUN loop never imports os directly.
// ==============================================================================================

package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"applesoft/basicerr"
)

// Store persists named program listings as newline-delimited text files
// under a base directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily on
// first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, strings.ToUpper(name)+".BAS")
}

// Save writes lines (already formatted "NNN STATEMENT...") to name.
func (s *Store) Save(name string, lines []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "store: create directory")
	}
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(s.path(name), []byte(content), 0o644); err != nil {
		return errors.Wrap(err, "store: write program")
	}
	return nil
}

// Load reads back a previously-saved listing as individual lines.
func (s *Store) Load(name string) ([]string, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, basicerr.FileNotFound()
		}
		return nil, errors.Wrap(err, "store: read program")
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Delete removes a previously-saved listing.
func (s *Store) Delete(name string) error {
	if err := os.Remove(s.path(name)); err != nil {
		if os.IsNotExist(err) {
			return basicerr.FileNotFound()
		}
		return errors.Wrap(err, "store: delete program")
	}
	return nil
}
