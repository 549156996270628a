package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrExists is returned by WriteFileExclusive when the target already exists.
var ErrExists = fs.ErrExist

// WriteFileExclusive creates path with the given contents, failing with an
// error matching ErrExists when the path is already present. A partially
// written file is removed before returning a write error.
func WriteFileExclusive(path string, data []byte, mode os.FileMode) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return err
	}

	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return fmt.Errorf("sync %s: %w", path, err)
	}
	return out.Close()
}

// AppendFile appends data to an existing file and flushes it to disk. The
// file is never created.
func AppendFile(path string, data []byte) error {
	out, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return fmt.Errorf("append %s: %w", path, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than "not exist" are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
