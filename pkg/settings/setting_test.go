package settings

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/humidscope/setedit/pkg/lineedit"
	"github.com/humidscope/setedit/pkg/term"
	"github.com/humidscope/setedit/pkg/tt"
)

func TestInt_PortScenario(t *testing.T) {
	var port int
	s := NewInt("Port", &port, 1, 65535, 80)
	s.ApplyDefault()
	if port != 80 {
		t.Fatalf("port after ApplyDefault = %d, want 80", port)
	}

	r, out := setup("9999\r\r")
	changed, err := s.Read(r)
	if !changed || err != nil || port != 9999 {
		t.Errorf("Read() -> (%v, %v), port = %d; want (true, nil), 9999", changed, err, port)
	}
	changed, err = s.Read(r)
	if changed || err != nil || port != 9999 {
		t.Errorf("Read() -> (%v, %v), port = %d; want (false, nil), 9999", changed, err, port)
	}
	if want := "Port-> 9999\r\nPort-> \r\n"; out.String() != want {
		t.Errorf("got output %q, want %q", out.String(), want)
	}
}

func TestInt_OutOfRangeLeavesCell(t *testing.T) {
	port := 80
	s := NewInt("Port", &port, 1, 65535, 80)
	r, _ := setup("0\r70000\r\r")
	changed, err := s.Read(r)
	if changed || err != nil || port != 80 {
		t.Errorf("Read() -> (%v, %v), port = %d; want (false, nil), 80", changed, err, port)
	}
}

func TestFloat_Read(t *testing.T) {
	var gain float64
	s := NewFloat("Gain", &gain, 0, 2.5, 1)
	s.ApplyDefault()

	r, out := setup("3\r0.75\r")
	changed, err := s.Read(r)
	if !changed || err != nil || gain != 0.75 {
		t.Errorf("Read() -> (%v, %v), gain = %v; want (true, nil), 0.75", changed, err, gain)
	}
	if !strings.Contains(out.String(), "Must be between 0 and 2.5\r\n") {
		t.Errorf("output %q lacks bounds message", out.String())
	}
}

func TestString_ReadTruncatesAtMaxLength(t *testing.T) {
	var ssid string
	s := NewString("SSID", &ssid, 0, 10, "")
	r, out := setup("abcdefghijXXXX\r")
	changed, err := s.Read(r)
	if !changed || err != nil || ssid != "abcdefghij" {
		t.Errorf("Read() -> (%v, %v), ssid = %q; want (true, nil), abcdefghij", changed, err, ssid)
	}
	if want := "SSID-> abcdefghij\a\a\a\a\r\n"; out.String() != want {
		t.Errorf("got output %q, want %q", out.String(), want)
	}
}

func TestString_ReadEmptyLeavesValue(t *testing.T) {
	ssid := "home"
	s := NewString("SSID", &ssid, 0, 10, "")
	r, _ := setup("\r")
	changed, err := s.Read(r)
	if changed || err != nil || ssid != "home" {
		t.Errorf("Read() -> (%v, %v), ssid = %q; want (false, nil), home", changed, err, ssid)
	}
}

func TestString_ReadEnforcesMinLength(t *testing.T) {
	var pw string
	s := NewString("Key", &pw, 3, 10, "")
	r, out := setup("ab\rabc\r")
	changed, err := s.Read(r)
	if !changed || err != nil || pw != "abc" {
		t.Errorf("Read() -> (%v, %v), value = %q; want (true, nil), abc", changed, err, pw)
	}
	want := "Key-> ab\r\nMust be at least 3 characters\r\nKey-> abc\r\n"
	if out.String() != want {
		t.Errorf("got output %q, want %q", out.String(), want)
	}

	// An empty answer is still "unchanged", even below the minimum length.
	r, _ = setup("\r")
	if changed, _ := s.Read(r); changed || pw != "abc" {
		t.Errorf("empty answer changed the value to %q", pw)
	}
}

func TestString_ApplyDefaultTruncates(t *testing.T) {
	var v string
	NewString("Name", &v, 0, 4, "abcdefg").ApplyDefault()
	if v != "abcd" {
		t.Errorf("got %q, want %q", v, "abcd")
	}
}

func TestRender(t *testing.T) {
	str, secret, i, f := "hello", "hunter2", 42, 1.5
	tt.Test(t, tt.Fn("render", render), tt.Table{
		tt.Args(NewString("Name", &str, 0, 10, "")).Rets("Name (hello)"),
		tt.Args(NewSecret("Password", &secret, 0, 10)).Rets("Password (*******)"),
		tt.Args(NewInt("Port", &i, 0, 100, 0)).Rets("Port (42)"),
		tt.Args(NewFloat("Gain", &f, 0, 2, 0)).Rets("Gain (1.5)"),
	})
}

func TestSecret_RenderNeverRevealsValue(t *testing.T) {
	for _, value := range []string{"", "x", "hunter2", "*****", "p@ss w0rd~"} {
		v := value
		got := render(NewSecret("P", &v, 0, 20))
		masked := strings.TrimSuffix(strings.TrimPrefix(got, "P ("), ")")
		if masked != strings.Repeat(MaskSymbol, len(value)) {
			t.Errorf("value %q rendered as %q", value, got)
		}
	}
}

func TestSecret(t *testing.T) {
	pw := "old"
	s := NewSecret("Password", &pw, 0, 16)
	if s.Kind() != KindSecret {
		t.Errorf("Kind() -> %v, want %v", s.Kind(), KindSecret)
	}
	s.ApplyDefault()
	if pw != "" {
		t.Errorf("ApplyDefault set %q, want empty", pw)
	}
	r, _ := setup("s3cret\r")
	if changed, err := s.Read(r); !changed || err != nil || pw != "s3cret" {
		t.Errorf("Read() -> (%v, %v), value = %q", changed, err, pw)
	}
	if s.Text() != "s3cret" {
		t.Errorf("Text() -> %q, want unmasked value", s.Text())
	}
}

func TestSetText(t *testing.T) {
	var (
		str string
		i   int
		f   float64
	)
	tt.Test(t, tt.Fn("setText", setText), tt.Table{
		tt.Args(NewString("S", &str, 2, 4, ""), "abc").Rets(nil),
		tt.Args(NewString("S", &str, 2, 4, ""), "a").Rets(tt.ErrorMatching("length 1 not in [2, 4]")),
		tt.Args(NewString("S", &str, 0, 8, ""), "a\tb").Rets(tt.ErrorMatching("unprintable")),
		tt.Args(NewInt("I", &i, 1, 10, 1), "10").Rets(nil),
		tt.Args(NewInt("I", &i, 1, 10, 1), "11").Rets(tt.ErrorMatching("11 not in [1, 10]")),
		tt.Args(NewInt("I", &i, 1, 10, 1), "x").Rets(tt.ErrorMatching("invalid syntax")),
		tt.Args(NewFloat("F", &f, 0, 1, 0), "0.5").Rets(nil),
		tt.Args(NewFloat("F", &f, 0, 1, 0), "1.5").Rets(tt.ErrorMatching("not in")),
		tt.Args(NewFloat("F", &f, 0, 1, 0), "NaN").Rets(tt.ErrorMatching("not in")),
		tt.Args(NewFloat("F", &f, math.Inf(-1), math.Inf(1), 0), "+Inf").Rets(tt.ErrorMatching("not finite")),
	})
	if str != "abc" || i != 10 || f != 0.5 {
		t.Errorf("values after SetText: %q %d %v", str, i, f)
	}
}

func TestSetText_WrapsErrInvalidValue(t *testing.T) {
	var i int
	err := NewInt("I", &i, 1, 10, 1).SetText("0")
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("got %v, want one wrapping ErrInvalidValue", err)
	}
}

func TestConstructorsPanicOnBadBounds(t *testing.T) {
	var (
		s string
		i int
		f float64
	)
	for name, fn := range map[string]func(){
		"string min > max":  func() { NewString("S", &s, 5, 4, "") },
		"string min < 0":    func() { NewString("S", &s, -1, 4, "") },
		"int min > max":     func() { NewInt("I", &i, 5, 4, 4) },
		"int bad default":   func() { NewInt("I", &i, 1, 4, 0) },
		"float bad default": func() { NewFloat("F", &f, 0, 1, 2) },
	} {
		if !panics(fn) {
			t.Errorf("%s: did not panic", name)
		}
	}
}

func render(s Setting) string {
	var b bytes.Buffer
	s.Render(&b)
	return b.String()
}

func setText(s Setting, text string) error { return s.SetText(text) }

func panics(f func()) (p bool) {
	defer func() { p = recover() != nil }()
	f()
	return false
}

func setup(input string) (*lineedit.Reader, *bytes.Buffer) {
	var out bytes.Buffer
	return lineedit.NewReader(term.NewStream(strings.NewReader(input), &out)), &out
}
