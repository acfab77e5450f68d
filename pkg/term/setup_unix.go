//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package term

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// SetupRaw prepares the terminal behind f for the line editor: canonical mode
// and local echo are turned off and reads return one byte at a time, so that
// editing keys such as Ctrl-U reach the editor instead of the terminal driver.
// Signal keys (Ctrl-C, Ctrl-\, Ctrl-Z) and flow control (Ctrl-S, Ctrl-Q) are
// turned off too; those bytes are delivered like any other.
//
// It returns a function that restores the previous terminal attributes. If f
// is not a terminal, such as a pipe in tests, SetupRaw does nothing.
func SetupRaw(f *os.File) (func() error, error) {
	if !IsTerminal(f) {
		return func() error { return nil }, nil
	}
	fd := int(f.Fd())
	saved, err := unix.IoctlGetTermios(fd, getAttrIOCTL)
	if err != nil {
		return nil, fmt.Errorf("can't get terminal attribute: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ECHONL | unix.IEXTEN | unix.ISIG
	raw.Iflag &^= unix.IXON
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, setAttrNowIOCTL, &raw); err != nil {
		return nil, fmt.Errorf("can't set up terminal attribute: %w", err)
	}

	return func() error {
		return unix.IoctlSetTermios(fd, setAttrNowIOCTL, saved)
	}, nil
}
