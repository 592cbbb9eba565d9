package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileExistsError reports why a path is not a readable regular file.
type FileExistsError struct {
	Path   string
	Reason string
}

func (e *FileExistsError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// CheckFileExists returns a *FileExistsError unless path names a regular file.
func CheckFileExists(path string) error {
	if path == "" {
		return &FileExistsError{Reason: "empty file path"}
	}
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &FileExistsError{Path: path, Reason: "file not found"}
	case err != nil:
		return &FileExistsError{Path: path, Reason: err.Error()}
	case !info.Mode().IsRegular():
		return &FileExistsError{Path: path, Reason: "not a regular file"}
	}
	return nil
}

// CheckDirWritable verifies that a file can be created in dir. The scratch
// file is removed before returning.
func CheckDirWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	scratch, err := os.CreateTemp(dir, ".bookforge-write-*")
	if err != nil {
		return err
	}
	name := scratch.Name()
	scratch.Close()
	return os.Remove(name)
}
