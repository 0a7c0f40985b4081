//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir creates the directory gdata writes settings into.
// On Android gdata stores under /data/data/{package}/ but does not create
// the saves subdirectory itself, so it has to exist before gdata.Open.
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("cannot determine Android package name")
	}
	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", saves, err)
	}
	return nil
}

// GetStoragePath returns /data/data/{package}, or "" when the package
// name cannot be read.
func GetStoragePath() string {
	// cmdline 是以 NUL 结尾的包名
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	pkg := string(bytes.TrimSpace(data))
	if pkg == "" {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
