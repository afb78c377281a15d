package util

import (
	"os"
	"path/filepath"
)

// MkdirParentX creates all missing parent directories of the file located at
// p. The user and group get +x on them regardless of perm so that the file is
// always reachable.
func MkdirParentX(p string, perm os.FileMode) error {
	dir := filepath.Dir(p)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}

	return os.MkdirAll(dir, perm|0o110)
}
