package schema

import (
	"strconv"

	"github.com/humidscope/setedit/pkg/settings"
)

// Values owns the storage cells of the settings built from a schema.
type Values struct {
	Strings map[string]*string
	Ints    map[string]*int
	Floats  map[string]*float64
}

// Build validates doc and constructs a Manager over freshly allocated cells,
// in document order. The cells start out zero; call ApplyDefaults or Load on
// the Manager to populate them.
func Build(doc *Doc) (*Values, *settings.Manager, error) {
	if err := Validate(doc); err != nil {
		return nil, nil, err
	}
	vals := &Values{
		Strings: make(map[string]*string),
		Ints:    make(map[string]*int),
		Floats:  make(map[string]*float64),
	}
	list := make([]settings.Setting, len(doc.Settings))
	for i := range doc.Settings {
		list[i] = vals.build(&doc.Settings[i])
	}
	return vals, settings.NewManager(list...), nil
}

func (vals *Values) build(it *Item) settings.Setting {
	switch settings.Kind(it.Kind) {
	case settings.KindString:
		p := new(string)
		vals.Strings[it.Name] = p
		def := ""
		if it.Default != nil {
			def = *it.Default
		}
		return settings.NewString(it.Name, p, it.MinLength, it.MaxLength, def)
	case settings.KindSecret:
		p := new(string)
		vals.Strings[it.Name] = p
		return settings.NewSecret(it.Name, p, it.MinLength, it.MaxLength)
	case settings.KindInt:
		p := new(int)
		vals.Ints[it.Name] = p
		lo, hi := it.intBounds()
		def := clamp(0, lo, hi)
		if it.Default != nil {
			// Checked by Validate.
			def, _ = strconv.Atoi(*it.Default)
		}
		return settings.NewInt(it.Name, p, lo, hi, def)
	default:
		p := new(float64)
		vals.Floats[it.Name] = p
		lo, hi := it.floatBounds()
		def := clamp(0, lo, hi)
		if it.Default != nil {
			def, _ = strconv.ParseFloat(*it.Default, 64)
		}
		return settings.NewFloat(it.Name, p, lo, hi, def)
	}
}

func clamp[T int | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
