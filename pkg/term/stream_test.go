package term

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestNewStream(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader("ab"), &out)

	if !s.Available() {
		t.Errorf("Available() -> false, want true")
	}
	for _, want := range []byte("ab") {
		b, err := s.ReadByte()
		if b != want || err != nil {
			t.Errorf("ReadByte() -> (%q, %v), want (%q, nil)", b, err, want)
		}
	}
	if _, err := s.ReadByte(); err != io.EOF {
		t.Errorf("ReadByte() at end -> %v, want io.EOF", err)
	}

	s.Write([]byte("echo"))
	if out.String() != "echo" {
		t.Errorf("got output %q, want %q", out.String(), "echo")
	}
}
