package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDataDirExists creates the datadir and its logs subdirectory if
// they don't exist.
func EnsureDataDirExists(datadir string) error {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return fmt.Errorf("failed to create datadir %s: %v", datadir, err)
	}

	logsDir := filepath.Join(datadir, "logs")
	if err := os.MkdirAll(logsDir, 0700); err != nil {
		return fmt.Errorf("failed to create logs directory %s: %v", logsDir, err)
	}

	return nil
}
