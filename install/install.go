// Package install attaches rendered folder icons to directories. The
// freedesktop backend writes a .directory file next to a PNG icon, the
// Windows backend writes a folder.ico referenced from desktop.ini.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/esimov/folco"
	"go.uber.org/zap"
)

// Errors reported for directories which cannot be customized. They are
// matchable with errors.Is through the folco error chain.
var (
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrNotDirectory      = errors.New("not a directory")
	ErrPermissionDenied  = errors.New("permission denied")
)

// New returns the installer of the running platform.
func New(logger *zap.Logger) folco.Installer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newPlatform(logger)
}

// checkDir makes sure dir exists and is a directory.
func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return classify(err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return nil
}

// classify maps the file system errors to the package errors, keeping the
// original error in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrDirectoryNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// removeFile deletes path. A missing file is not an error.
func removeFile(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
