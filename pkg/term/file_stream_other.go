//go:build !unix

package term

import (
	"bufio"
	"os"
)

// FileStream is a Stream on a device file. On this platform it cannot poll, so
// Available always reports true and ReadByte blocks.
type FileStream struct {
	file *os.File
	r    *bufio.Reader
}

// NewFileStream creates a FileStream on the given file.
func NewFileStream(file *os.File) (*FileStream, error) {
	return &FileStream{file, bufio.NewReader(file)}, nil
}

func (s *FileStream) Available() bool             { return true }
func (s *FileStream) ReadByte() (byte, error)     { return s.r.ReadByte() }
func (s *FileStream) Write(p []byte) (int, error) { return s.file.Write(p) }

// Close does nothing; the underlying file is owned by the caller.
func (s *FileStream) Close() error { return nil }
