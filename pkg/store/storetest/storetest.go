// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/humidscope/setedit/pkg/store/storedefs"
)

// TestValues tests the value functionality of a Store. The store must be
// empty.
func TestValues(t *testing.T, store storedefs.Store) {
	t.Helper()

	if _, err := store.Value("Port"); !errors.Is(err, storedefs.ErrNoValue) {
		t.Errorf("Value() of missing name -> %v, want %v", err, storedefs.ErrNoValue)
	}

	values := map[string]storedefs.Value{
		"Port":     {Kind: "int", Text: "9999"},
		"Gain":     {Kind: "float", Text: "0.25"},
		"SSID":     {Kind: "string", Text: "home: net"},
		"Password": {Kind: "secret", Text: ""},
	}
	for name, v := range values {
		if err := store.SetValue(name, v); err != nil {
			t.Errorf("SetValue(%q) -> %v", name, err)
		}
	}
	for name, want := range values {
		got, err := store.Value(name)
		if err != nil {
			t.Errorf("Value(%q) -> %v", name, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Value(%q) (-want +got):\n%s", name, diff)
		}
	}

	names, err := store.Names()
	if err != nil {
		t.Errorf("Names() -> %v", err)
	}
	if diff := cmp.Diff([]string{"Gain", "Password", "Port", "SSID"}, names); diff != "" {
		t.Errorf("Names() (-want +got):\n%s", diff)
	}

	// Overwrite.
	store.SetValue("Port", storedefs.Value{Kind: "int", Text: "80"})
	if v, _ := store.Value("Port"); v.Text != "80" {
		t.Errorf("Value(Port) after overwrite -> %q, want %q", v.Text, "80")
	}

	// Delete, including a missing name.
	if err := store.DelValue("Port"); err != nil {
		t.Errorf("DelValue(Port) -> %v", err)
	}
	if err := store.DelValue("Port"); err != nil {
		t.Errorf("DelValue(Port) again -> %v", err)
	}
	if _, err := store.Value("Port"); !errors.Is(err, storedefs.ErrNoValue) {
		t.Errorf("Value(Port) after delete -> %v, want %v", err, storedefs.ErrNoValue)
	}
}
