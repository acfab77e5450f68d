// Package settings implements named, typed configuration values that an
// operator can list and edit over a character stream.
//
// Every Setting refers to storage owned by the caller: a string, an int or a
// float64 variable. Settings never allocate their own cells, and a Manager
// never creates or destroys Settings; it only dispatches to them.
package settings

import (
	"errors"
	"io"

	"github.com/humidscope/setedit/pkg/lineedit"
	"github.com/humidscope/setedit/pkg/logutil"
)

var logger = logutil.GetLogger("settings")

// Kind identifies the type of a Setting.
type Kind string

// Supported kinds.
const (
	KindString Kind = "string"
	KindSecret Kind = "secret"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
)

// Setting is a named configuration value.
type Setting interface {
	// Name returns the label shown to the operator.
	Name() string
	// Kind returns the type of the setting.
	Kind() Kind
	// ApplyDefault overwrites the value with the configured default.
	ApplyDefault()
	// Render writes the name and the value as "name (value)", without a
	// trailing newline.
	Render(w io.Writer)
	// Read prompts the operator for a new value. It reports whether the value
	// was changed; an empty answer leaves it unchanged. The only errors are
	// those of the underlying stream.
	Read(r *lineedit.Reader) (bool, error)
	// Text returns the value in textual form, unmasked.
	Text() string
	// SetText sets the value from its textual form, as returned by Text. Unlike
	// Read, it is strict: malformed or out-of-range text is an error and the
	// value is left unchanged.
	SetText(text string) error
}

// ErrInvalidValue is wrapped by errors from SetText.
var ErrInvalidValue = errors.New("invalid value")
