package store

import (
	"path/filepath"
	"testing"
)

// MustTempStore returns a Store backed by a temporary file. The store is
// closed and the file removed when the test finishes.
func MustTempStore(t testing.TB) DBStore {
	st, err := NewStore(filepath.Join(t.TempDir(), "setedit.db"))
	if err != nil {
		t.Fatalf("Failed to create Store instance: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
