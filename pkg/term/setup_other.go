//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package term

import "os"

// SetupRaw does nothing on this platform.
func SetupRaw(f *os.File) (func() error, error) {
	return func() error { return nil }, nil
}
