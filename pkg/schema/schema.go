// Package schema declares a set of settings in a YAML document.
//
// A schema looks like this:
//
//	settings:
//	  - name: SSID
//	    kind: string
//	    max_length: 32
//	    default: humidscope
//	  - name: Password
//	    kind: secret
//	    max_length: 32
//	  - name: Port
//	    kind: int
//	    min: 1
//	    max: 65535
//	    default: 80
//
// The order of the entries is the order in which the settings are listed to
// the operator.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Doc is a parsed schema document.
type Doc struct {
	Settings []Item `yaml:"settings" validate:"min=1,unique=Name,dive"`
}

// Item declares one setting.
type Item struct {
	Name string `yaml:"name" validate:"required,printascii,max=64"`
	Kind string `yaml:"kind" validate:"required,oneof=string secret int float"`

	// Bounds of int and float settings. Missing bounds are unbounded.
	Min *float64 `yaml:"min"`
	Max *float64 `yaml:"max"`

	// Bounds of string and secret settings.
	MinLength int `yaml:"min_length" validate:"min=0"`
	MaxLength int `yaml:"max_length" validate:"min=0,max=4096"`

	// Default value in textual form. Missing defaults are the empty string for
	// strings, and the value closest to zero for numbers.
	Default *string `yaml:"default"`
}

// ErrEmpty is returned when parsing a document with no content.
var ErrEmpty = errors.New("empty schema")

// Load reads and parses a schema file.
func Load(fname string) (*Doc, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return doc, nil
}

// Parse parses and validates a schema document. Unknown fields are errors.
func Parse(data []byte) (*Doc, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Doc
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrEmpty
		}
		return nil, err
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
