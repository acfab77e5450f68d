// Package lineedit reads edited lines and bounded numbers from a character
// stream.
//
// Input is processed one byte at a time. Printable characters are echoed,
// backspace and delete erase the last character, Ctrl-U discards the whole
// line and redraws the prompt, and everything else rings the bell.
package lineedit

import (
	"fmt"
	"io"
	"time"

	"github.com/humidscope/setedit/pkg/logutil"
	"github.com/humidscope/setedit/pkg/term"
)

var logger = logutil.GetLogger("lineedit")

// DefaultPollInterval is how long the Reader sleeps between polls when no
// input is available.
const DefaultPollInterval = 10 * time.Millisecond

// PromptSuffix is written after every prompt.
const PromptSuffix = "-> "

// Reader reads operator input from a term.Stream, echoing it back to the same
// stream. It also implements io.Writer so that messages are interleaved with
// the echo in the order they are issued.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	stream       term.Stream
	pollInterval time.Duration
	// Whether the last line was terminated by '\r'. A '\n' immediately
	// following it completes a CRLF pair and is not a line on its own.
	afterCR bool
	// First error encountered when writing to the stream.
	writeErr error
}

// NewReader returns a Reader on the given stream.
func NewReader(s term.Stream) *Reader {
	return &Reader{stream: s, pollInterval: DefaultPollInterval}
}

// SetPollInterval changes the interval between polls for input. It returns the
// receiver.
func (r *Reader) SetPollInterval(d time.Duration) *Reader {
	r.pollInterval = d
	return r
}

// Write writes to the underlying stream. Once a write has failed, Write keeps
// returning the same error and the next read reports it.
func (r *Reader) Write(p []byte) (int, error) {
	if r.writeErr != nil {
		return 0, r.writeErr
	}
	n, err := r.stream.Write(p)
	if err != nil {
		r.writeErr = fmt.Errorf("write to stream: %w", err)
		return n, r.writeErr
	}
	return n, nil
}

func (r *Reader) print(s string) { io.WriteString(r, s) }

func (r *Reader) writeByte(b byte) { r.Write([]byte{b}) }

// ReadLine writes the prompt and reads a line of at most maxLen printable
// characters. The returned line excludes the terminator, and may be empty if
// the operator pressed Enter straight away.
//
// The only errors are those from the stream.
func (r *Reader) ReadLine(prompt string, maxLen int) (string, error) {
	buf := make([]byte, 0, maxLen)
	r.print(prompt + PromptSuffix)
	for {
		if r.writeErr != nil {
			return "", r.writeErr
		}
		c, err := r.nextByte()
		if err != nil {
			return "", fmt.Errorf("read from stream: %w", err)
		}
		afterCR := r.afterCR
		r.afterCR = false

		switch {
		case c == '\n' && afterCR && len(buf) == 0:
			// Second half of a CRLF that terminated the previous line.
		case c >= ' ' && c < term.Delete:
			if len(buf) >= maxLen {
				logger.Debugf("line full at %d characters, rejected %q", maxLen, c)
				r.writeByte(term.Bell)
				break
			}
			r.writeByte(c)
			buf = append(buf, c)
		case c == '\n' || c == '\r':
			r.afterCR = c == '\r'
			r.print(term.Newline)
			return string(buf), r.writeErr
		case c == term.Backspace || c == term.Delete:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				r.writeByte(term.Backspace)
			}
		case c == term.Kill:
			buf = buf[:0]
			r.print(term.Newline + prompt + PromptSuffix)
		default:
			logger.Debugf("rejected byte %#02x", c)
			r.writeByte(term.Bell)
		}
	}
}

// nextByte waits until the stream has input and reads one byte.
func (r *Reader) nextByte() (byte, error) {
	for !r.stream.Available() {
		time.Sleep(r.pollInterval)
	}
	return r.stream.ReadByte()
}
