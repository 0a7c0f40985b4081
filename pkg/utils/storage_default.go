//go:build !android

package utils

// EnsureStorageDir is a no-op: gdata creates its directory itself on
// desktop platforms and iOS.
func EnsureStorageDir() error {
	return nil
}

// GetStoragePath returns "" outside Android.
func GetStoragePath() string {
	return ""
}
