// Package fileswap replaces administrator-editable data files on disk while
// always keeping a readable copy of the previous contents at either the
// original path or its .backup sibling.
package fileswap

import (
	"fmt"
	"os"
)

// ValidateFunc inspects the new contents before anything touches the disk.
// A non-nil error rejects the replacement.
type ValidateFunc func(data []byte) error

// ReplaceWithBackup writes data to path, moving any existing file to
// path.backup first. An existing .backup is rotated to .backup.backup for the
// duration of the swap and removed once the new file is in place.
func ReplaceWithBackup(path string, data []byte, validate ValidateFunc) error {
	if validate != nil {
		if err := validate(data); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	backup := path + ".backup"
	doubleBackup := backup + ".backup"

	rotated := false
	if _, err := os.Stat(path); err == nil {
		if _, err := os.Stat(backup); err == nil {
			if err := os.Rename(backup, doubleBackup); err != nil {
				return fmt.Errorf("failed to rotate backup: %w", err)
			}
			rotated = true
		}
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("failed to back up %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if rotated {
		if err := os.Remove(doubleBackup); err != nil {
			return fmt.Errorf("failed to remove stale backup: %w", err)
		}
	}
	return nil
}
