package infrastructure

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// SweepTempDir removes all regular files from the temp directory. It runs at
// process startup and shutdown to clear orphans left by prior crashes.
func SweepTempDir(dir string, logger *zap.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read temp directory", zap.String("dir", dir), zap.Error(err))
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Error("Failed to remove temporary file", zap.String("path", path), zap.Error(err))
			continue
		}
		logger.Debug("Removed temporary file", zap.String("path", path))
	}
}
