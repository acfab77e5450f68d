package settings

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/humidscope/setedit/pkg/lineedit"
	"github.com/humidscope/setedit/pkg/term"
)

// MaskSymbol is rendered by Secret in place of each character of the value.
const MaskSymbol = "*"

// String is a text setting of bounded length.
type String struct {
	name      string
	value     *string
	minLength int
	maxLength int
	def       string
}

var _ Setting = (*String)(nil)

// NewString creates a String setting stored in *value. Answers shorter than
// minLength are refused, and the line editor accepts at most maxLength
// characters. A default longer than maxLength is truncated when applied.
//
// It panics if the length bounds are inconsistent.
func NewString(name string, value *string, minLength, maxLength int, def string) *String {
	if minLength < 0 || maxLength < minLength {
		panic(fmt.Sprintf("settings: bad length bounds [%d, %d] for %q", minLength, maxLength, name))
	}
	return &String{name, value, minLength, maxLength, def}
}

func (s *String) Name() string { return s.name }
func (s *String) Kind() Kind   { return KindString }

// ApplyDefault sets the value to the default, truncated to the maximum length.
func (s *String) ApplyDefault() {
	def := s.def
	if len(def) > s.maxLength {
		def = def[:s.maxLength]
	}
	*s.value = def
}

func (s *String) Render(w io.Writer) {
	fmt.Fprintf(w, "%s (%s)", s.name, *s.value)
}

// Read prompts for a new value. A non-empty answer shorter than the minimum
// length is refused and the prompt repeated.
func (s *String) Read(r *lineedit.Reader) (bool, error) {
	for {
		line, err := r.ReadLine(s.name, s.maxLength)
		if err != nil || line == "" {
			return false, err
		}
		if len(line) < s.minLength {
			io.WriteString(r, "Must be at least "+strconv.Itoa(s.minLength)+" characters"+term.Newline)
			continue
		}
		*s.value = line
		logger.Debugf("%s changed", s.name)
		return true, nil
	}
}

func (s *String) Text() string { return *s.value }

// SetText sets the value. The text must satisfy the length bounds and consist
// of printable ASCII characters only, as if typed by the operator.
func (s *String) SetText(text string) error {
	if len(text) < s.minLength || len(text) > s.maxLength {
		return fmt.Errorf("%w: %s: length %d not in [%d, %d]",
			ErrInvalidValue, s.name, len(text), s.minLength, s.maxLength)
	}
	if i := strings.IndexFunc(text, func(r rune) bool { return r < ' ' || r > '~' }); i >= 0 {
		return fmt.Errorf("%w: %s: unprintable character at %d", ErrInvalidValue, s.name, i)
	}
	*s.value = text
	return nil
}

// Secret is a String whose value is never rendered; each character is shown
// as MaskSymbol instead. Secrets have no default other than the empty string.
type Secret struct {
	String
}

var _ Setting = (*Secret)(nil)

// NewSecret creates a Secret setting stored in *value.
func NewSecret(name string, value *string, minLength, maxLength int) *Secret {
	return &Secret{*NewString(name, value, minLength, maxLength, "")}
}

func (s *Secret) Kind() Kind { return KindSecret }

func (s *Secret) Render(w io.Writer) {
	fmt.Fprintf(w, "%s (%s)", s.name, strings.Repeat(MaskSymbol, len(*s.value)))
}
