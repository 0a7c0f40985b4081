//go:build mobile

package utils

// IsMobile always reports true in -tags mobile builds.
func IsMobile() bool {
	return true
}
