package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the on-disk directory used for the embedded KV store.
func DataDir(datadir string) string {
	return filepath.Join(datadir, "chain")
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
