// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoValue is returned by Store.Value when there is no value stored under
// the given name.
var ErrNoValue = errors.New("no such value")

// Store is an interface satisfied by the storage service.
type Store interface {
	Value(name string) (Value, error)
	SetValue(name string, v Value) error
	DelValue(name string) error
	Names() ([]string, error)
}

// Value is a stored setting value. Kind names the type of the setting that
// wrote it, and Text is the value in its textual form.
type Value struct {
	Kind string
	Text string
}
