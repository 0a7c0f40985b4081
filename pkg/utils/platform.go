//go:build !mobile

package utils

import "os"

// MobileEmulateEnv forces the touch layout on desktop builds when set to "1".
const MobileEmulateEnv = "SMOKEFX_MOBILE_EMULATE"

// IsMobile reports whether the viewer runs with the touch layout.
// Desktop builds return false unless MobileEmulateEnv is set.
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
