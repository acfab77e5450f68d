package settings

import (
	"errors"
	"fmt"
	"io"

	"github.com/humidscope/setedit/pkg/lineedit"
	"github.com/humidscope/setedit/pkg/store/storedefs"
	"github.com/humidscope/setedit/pkg/term"
)

// ChoosePrompt is the prompt of the edit loop.
const ChoosePrompt = "Choose item to change or 0 to save"

// Manager owns an ordered list of Settings. The order is fixed when the
// Manager is created and defines the 1-based numbers shown to the operator.
type Manager struct {
	settings []Setting
}

// NewManager creates a Manager for the given settings. The Settings and the
// storage they refer to remain owned by the caller.
func NewManager(settings ...Setting) *Manager {
	return &Manager{append([]Setting(nil), settings...)}
}

// Len returns the number of settings.
func (m *Manager) Len() int { return len(m.settings) }

// Setting returns the i-th setting, counting from 0.
func (m *Manager) Setting(i int) Setting { return m.settings[i] }

// ApplyDefaults applies the default of every setting, in order.
func (m *Manager) ApplyDefaults() {
	for _, s := range m.settings {
		s.ApplyDefault()
	}
}

// PrintAll writes a header followed by one numbered line per setting.
func (m *Manager) PrintAll(w io.Writer) {
	io.WriteString(w, "Current settings:"+term.Newline)
	for i, s := range m.settings {
		fmt.Fprintf(w, "    %d. ", i+1)
		s.Render(w)
		io.WriteString(w, term.Newline)
	}
}

// EditConfig runs the interactive edit loop. The operator picks a setting by
// number, edits it, and sees the updated list; choosing 0 ends the loop. Empty
// answers are ignored.
//
// EditConfig returns true when the operator chooses to save. Edits are applied
// to the settings as they are made, so there is nothing to roll back. The only
// errors are those of the underlying stream, in which case edits made so far
// are kept as well.
func (m *Manager) EditConfig(r *lineedit.Reader) (bool, error) {
	for {
		choice, ok, err := r.ReadInt(ChoosePrompt, 0, len(m.settings))
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		if choice == 0 {
			return true, nil
		}
		if _, err := m.settings[choice-1].Read(r); err != nil {
			return false, err
		}
		m.PrintAll(r)
	}
}

// Load overwrites settings with the values found in the store. Settings with
// no stored value are left alone, and so are those whose stored value has a
// different kind or is no longer valid; the latter are logged. Only errors
// from the store itself are returned.
func (m *Manager) Load(st storedefs.Store) error {
	for _, s := range m.settings {
		v, err := st.Value(s.Name())
		if errors.Is(err, storedefs.ErrNoValue) {
			continue
		} else if err != nil {
			return fmt.Errorf("load %s: %w", s.Name(), err)
		}
		if v.Kind != string(s.Kind()) {
			logger.Warnf("ignoring stored %s: kind %s, want %s", s.Name(), v.Kind, s.Kind())
			continue
		}
		if err := s.SetText(v.Text); err != nil {
			logger.Warnf("ignoring stored %s: %v", s.Name(), err)
		}
	}
	return nil
}

// Save writes the values of all settings to the store.
func (m *Manager) Save(st storedefs.Store) error {
	for _, s := range m.settings {
		err := st.SetValue(s.Name(), storedefs.Value{Kind: string(s.Kind()), Text: s.Text()})
		if err != nil {
			return fmt.Errorf("save %s: %w", s.Name(), err)
		}
	}
	return nil
}
