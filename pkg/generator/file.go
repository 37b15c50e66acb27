package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteOptions controls WriteFile.
type WriteOptions struct {
	// Check reports a difference as an error instead of writing.
	Check bool
}

// WriteFile writes data to path unless the file already holds exactly data.
// wrote is false when nothing changed.
func WriteFile(path string, data []byte, opt WriteOptions) (wrote bool, err error) {
	existing, readErr := os.ReadFile(path)
	if readErr == nil {
		if bytes.Equal(existing, data) {
			return false, nil
		}
		if opt.Check {
			return false, fmt.Errorf("check failed: %s differs", path)
		}
	} else if !os.IsNotExist(readErr) {
		return false, fmt.Errorf("read existing: %w", readErr)
	}

	if opt.Check {
		return false, fmt.Errorf("check failed: %s would be written", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("mkdir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return false, fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return false, fmt.Errorf("rename tmp: %w", err)
	}
	return true, nil
}
