// Package term provides the character stream a settings session runs on.
//
// A Stream is deliberately small: a non-blocking poll, a single-byte read and
// an io.Writer. This is all a serial console offers, and all the line editor
// in pkg/lineedit needs.
package term

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Control bytes understood by the line editor.
const (
	Bell      = 0x07 // ^G
	Backspace = 0x08 // ^H
	Delete    = 0x7f // ^?
	Kill      = 0x15 // ^U
)

// Newline is the line ending written to the stream. Serial consoles expect
// both a carriage return and a line feed.
const Newline = "\r\n"

// Stream is a bidirectional character stream.
type Stream interface {
	// Available reports whether ReadByte can return without waiting for the
	// peer. Streams that cannot tell report true and block in ReadByte.
	Available() bool
	// ReadByte reads the next byte from the stream.
	ReadByte() (byte, error)
	// Write writes bytes to the stream.
	io.Writer
}

// ErrStopped is returned by ReadByte when the stream is closed while a read is
// outstanding, or after it has been closed.
var ErrStopped = errors.New("stopped")

// NewStream returns a Stream that reads from r and writes to w. Its Available
// method always reports true.
func NewStream(r io.Reader, w io.Writer) Stream {
	return &rwStream{bufio.NewReader(r), w}
}

type rwStream struct {
	r *bufio.Reader
	w io.Writer
}

func (s *rwStream) Available() bool             { return true }
func (s *rwStream) ReadByte() (byte, error)     { return s.r.ReadByte() }
func (s *rwStream) Write(p []byte) (int, error) { return s.w.Write(p) }

// IsTerminal determines whether the given file is a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
