package lineedit

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/humidscope/setedit/pkg/term"
	"github.com/humidscope/setedit/pkg/tt"
)

// Runs ReadLine with prompt "p" and returns the line and everything written to
// the stream.
func readLine(input string, maxLen int) (string, string) {
	r, out := setup(input)
	line, err := r.ReadLine("p", maxLen)
	if err != nil {
		return "error: " + err.Error(), out.String()
	}
	return line, out.String()
}

var readLineTests = tt.Table{
	tt.Args("abc\r", 10).Rets("abc", "p-> abc\r\n"),
	tt.Args("abc\n", 10).Rets("abc", "p-> abc\r\n"),
	tt.Args("\r", 10).Rets("", "p-> \r\n"),
	tt.Args("a b~\r", 10).Rets("a b~", "p-> a b~\r\n"),

	// Capacity.
	tt.Args("abcdefghijXXXX\r", 10).Rets("abcdefghij", "p-> abcdefghij\a\a\a\a\r\n"),
	tt.Args("abc\bd\r", 2).Rets("ad", "p-> ab\a\bd\r\n"),
	tt.Args("abc\x15cde\r", 2).Rets("cd", "p-> ab\a\r\np-> cd\a\r\n"),

	// Backspace and delete.
	tt.Args("ab\bc\r", 10).Rets("ac", "p-> ab\bc\r\n"),
	tt.Args("ab\x7fc\r", 10).Rets("ac", "p-> ab\bc\r\n"),
	tt.Args("\b\x7fa\r", 10).Rets("a", "p-> a\r\n"),
	tt.Args("a\b\b\r", 10).Rets("", "p-> a\b\r\n"),

	// Kill.
	tt.Args("abc\x15de\r", 10).Rets("de", "p-> abc\r\np-> de\r\n"),
	tt.Args("\x15\r", 10).Rets("", "p-> \r\np-> \r\n"),

	// Rejected bytes.
	tt.Args("a\x01\x1bb\tc\r", 10).Rets("abc", "p-> a\a\ab\ac\r\n"),
	tt.Args("\x80\xffa\r", 10).Rets("a", "p-> \a\aa\r\n"),

	// Stream errors.
	tt.Args("abc", 10).Rets("error: read from stream: EOF", "p-> abc"),
}

func TestReadLine(t *testing.T) {
	tt.Test(t, tt.Fn("readLine", readLine), readLineTests)
}

func TestReadLine_PrintableInputIsEchoedUnchanged(t *testing.T) {
	var printable strings.Builder
	for c := byte(' '); c < 0x7f; c++ {
		printable.WriteByte(c)
	}
	input := printable.String()

	line, out := readLine(input+"\r", len(input)+1)
	if line != input {
		t.Errorf("got line %q, want %q", line, input)
	}
	if want := "p-> " + input + "\r\n"; out != want {
		t.Errorf("got output %q, want %q", out, want)
	}
}

func TestReadLine_CRLF(t *testing.T) {
	r, _ := setup("ab\r\ncd\r\n\n")
	for _, want := range []string{"ab", "cd", ""} {
		line, err := r.ReadLine("p", 10)
		if line != want || err != nil {
			t.Errorf("ReadLine() -> (%q, %v), want (%q, nil)", line, err, want)
		}
	}
}

func TestReadLine_RepeatedTerminators(t *testing.T) {
	// Only a LF directly after a CR is swallowed; CR CR and LF LF are two
	// lines each.
	for _, input := range []string{"\r\r", "\n\n"} {
		r, _ := setup(input)
		for i := 0; i < 2; i++ {
			line, err := r.ReadLine("p", 10)
			if line != "" || err != nil {
				t.Errorf("%q: ReadLine() #%d -> (%q, %v), want (\"\", nil)", input, i, line, err)
			}
		}
	}
}

func TestReadLine_EOFWrapped(t *testing.T) {
	r, _ := setup("")
	_, err := r.ReadLine("p", 10)
	if !errors.Is(err, io.EOF) {
		t.Errorf("got err %v, want one wrapping io.EOF", err)
	}
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestReadLine_WriteError(t *testing.T) {
	r := NewReader(term.NewStream(strings.NewReader("abc\r"), failingWriter{}))
	_, err := r.ReadLine("p", 10)
	if !errors.Is(err, errWrite) {
		t.Errorf("got err %v, want one wrapping %v", err, errWrite)
	}
}

// A stream that reports no input for the first few polls.
type slowStream struct {
	term.Stream
	polls int
}

func (s *slowStream) Available() bool {
	s.polls++
	return s.polls > 3
}

func TestReadLine_PollsUntilAvailable(t *testing.T) {
	var out bytes.Buffer
	s := &slowStream{Stream: term.NewStream(strings.NewReader("x\r"), &out)}
	r := NewReader(s).SetPollInterval(time.Microsecond)

	line, err := r.ReadLine("p", 10)
	if line != "x" || err != nil {
		t.Errorf("ReadLine() -> (%q, %v), want (\"x\", nil)", line, err)
	}
	if s.polls < 4 {
		t.Errorf("got %d polls, want at least 4", s.polls)
	}
}

func setup(input string) (*Reader, *bytes.Buffer) {
	var out bytes.Buffer
	return NewReader(term.NewStream(strings.NewReader(input), &out)), &out
}
