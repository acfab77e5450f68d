package settings

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/humidscope/setedit/pkg/lineedit"
)

// Int is an integer setting bounded to [min, max].
type Int struct {
	name     string
	value    *int
	min, max int
	def      int
}

var _ Setting = (*Int)(nil)

// NewInt creates an Int setting stored in *value. It panics if min > max or
// the default is out of range.
func NewInt(name string, value *int, min, max, def int) *Int {
	if min > max || def < min || def > max {
		panic(fmt.Sprintf("settings: bad range [%d, %d] or default %d for %q", min, max, def, name))
	}
	return &Int{name, value, min, max, def}
}

func (s *Int) Name() string  { return s.name }
func (s *Int) Kind() Kind    { return KindInt }
func (s *Int) ApplyDefault() { *s.value = s.def }
func (s *Int) Text() string  { return strconv.Itoa(*s.value) }

func (s *Int) Render(w io.Writer) {
	fmt.Fprintf(w, "%s (%d)", s.name, *s.value)
}

func (s *Int) Read(r *lineedit.Reader) (bool, error) {
	v, ok, err := r.ReadInt(s.name, s.min, s.max)
	if ok {
		*s.value = v
		logger.Debugf("%s changed to %d", s.name, v)
	}
	return ok, err
}

func (s *Int) SetText(text string) error {
	v, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, s.name, err)
	}
	if v < s.min || v > s.max {
		return fmt.Errorf("%w: %s: %d not in [%d, %d]", ErrInvalidValue, s.name, v, s.min, s.max)
	}
	*s.value = v
	return nil
}

// Float is a floating-point setting bounded to [min, max].
type Float struct {
	name     string
	value    *float64
	min, max float64
	def      float64
}

var _ Setting = (*Float)(nil)

// NewFloat creates a Float setting stored in *value. It panics if min > max or
// the default is out of range.
func NewFloat(name string, value *float64, min, max, def float64) *Float {
	if !(min <= max && min <= def && def <= max) {
		panic(fmt.Sprintf("settings: bad range [%v, %v] or default %v for %q", min, max, def, name))
	}
	return &Float{name, value, min, max, def}
}

func (s *Float) Name() string  { return s.name }
func (s *Float) Kind() Kind    { return KindFloat }
func (s *Float) ApplyDefault() { *s.value = s.def }
func (s *Float) Text() string  { return lineedit.FormatFloat(*s.value) }

func (s *Float) Render(w io.Writer) {
	fmt.Fprintf(w, "%s (%s)", s.name, lineedit.FormatFloat(*s.value))
}

func (s *Float) Read(r *lineedit.Reader) (bool, error) {
	v, ok, err := r.ReadFloat(s.name, s.min, s.max)
	if ok {
		*s.value = v
		logger.Debugf("%s changed to %v", s.name, v)
	}
	return ok, err
}

func (s *Float) SetText(text string) error {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, s.name, err)
	}
	if math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s: %v is not finite", ErrInvalidValue, s.name, v)
	}
	if !(s.min <= v && v <= s.max) {
		return fmt.Errorf("%w: %s: %v not in [%v, %v]", ErrInvalidValue, s.name, v, s.min, s.max)
	}
	*s.value = v
	return nil
}
