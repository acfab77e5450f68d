//go:build unix

package term

import (
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// FileStream is a Stream on a device file, such as a serial port or a TTY.
type FileStream struct {
	file  *os.File
	rStop *os.File
	wStop *os.File
	// Held while a read is in progress.
	mutex  sync.Mutex
	closed bool
}

// NewFileStream creates a FileStream on the given file. It does not take
// ownership of the file; closing the FileStream leaves the file open.
func NewFileStream(file *os.File) (*FileStream, error) {
	rStop, wStop, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	return &FileStream{file: file, rStop: rStop, wStop: wStop}, nil
}

// Available reports whether a byte can be read without blocking. It also
// reports true once the stream is closed or the file is in an error state, so
// that the following ReadByte returns promptly with the error.
func (s *FileStream) Available() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return true
	}
	ready, err := waitForRead(0, s.file, s.rStop)
	if err != nil {
		return err != unix.EINTR
	}
	return ready[0] || ready[1]
}

// ReadByte blocks until a byte is read, the file reports an error, or Close is
// called.
func (s *FileStream) ReadByte() (byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return 0, ErrStopped
	}
	for {
		ready, err := waitForRead(-1, s.file, s.rStop)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if ready[1] {
			var b [1]byte
			s.rStop.Read(b[:])
			return 0, ErrStopped
		}
		if !ready[0] {
			continue
		}
		var b [1]byte
		nr, err := s.file.Read(b[:])
		if err != nil {
			return 0, err
		}
		if nr != 1 {
			return 0, io.ErrNoProgress
		}
		return b[0], nil
	}
}

// Write writes to the underlying file.
func (s *FileStream) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Close stops any outstanding ReadByte call, waits for it to return and
// releases the resources allocated by NewFileStream. It does not close the
// underlying file.
func (s *FileStream) Close() error {
	_, err := s.wStop.Write([]byte{'q'})
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.rStop.Close()
	s.wStop.Close()
	return err
}

// waitForRead blocks until any of the given files is ready to be read or
// timeout. A negative timeout means no timeout. It returns a boolean slice
// indicating which files are ready to be read.
func waitForRead(timeout time.Duration, files ...*os.File) ([]bool, error) {
	fds := make([]unix.PollFd, len(files))
	for i, file := range files {
		fds[i] = unix.PollFd{Fd: int32(file.Fd()), Events: unix.POLLIN}
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	_, err := unix.Poll(fds, ms)
	if err != nil {
		return nil, err
	}
	ready := make([]bool, len(files))
	for i, fd := range fds {
		ready[i] = fd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0
	}
	return ready, nil
}
