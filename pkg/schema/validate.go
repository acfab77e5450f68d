package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/humidscope/setedit/pkg/settings"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateItem, Item{})
	return v
}

// ValidationError lists the problems found in a schema document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid schema: " + strings.Join(e.Problems, "; ")
}

// Validate checks a schema document. Problems with the content are reported as
// a *ValidationError listing all of them.
func Validate(doc *Doc) error {
	err := validate.Struct(doc)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		problems := make([]string, len(fieldErrs))
		for i, fe := range fieldErrs {
			problems[i] = describe(fe)
		}
		return &ValidationError{problems}
	}
	return err
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Doc.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "unique":
		return field + " must have unique names"
	case "printascii":
		return field + " must be printable ASCII"
	case "excluded":
		return fmt.Sprintf("%s is not allowed for kind %s", field, fe.Param())
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "integer":
		return field + " must be an integer"
	case "number":
		return field + " must be a number"
	case "range":
		return fmt.Sprintf("%s must be within %s", field, fe.Param())
	case "maxlen":
		return fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
	}
	return fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param())
}

// Cross-field rules that depend on the kind of the item.
func validateItem(sl validator.StructLevel) {
	it := sl.Current().Interface().(Item)
	switch settings.Kind(it.Kind) {
	case settings.KindString, settings.KindSecret:
		if it.Min != nil {
			sl.ReportError(it.Min, "min", "Min", "excluded", it.Kind)
		}
		if it.Max != nil {
			sl.ReportError(it.Max, "max", "Max", "excluded", it.Kind)
		}
		if it.MaxLength < 1 {
			sl.ReportError(it.MaxLength, "max_length", "MaxLength", "min", "1")
		}
		if it.MinLength > it.MaxLength {
			sl.ReportError(it.MinLength, "min_length", "MinLength", "ltefield", "max_length")
		}
		if it.Default == nil {
			break
		}
		def := *it.Default
		switch {
		case it.Kind == string(settings.KindSecret):
			sl.ReportError(def, "default", "Default", "excluded", it.Kind)
		case len(def) > it.MaxLength:
			sl.ReportError(def, "default", "Default", "maxlen", strconv.Itoa(it.MaxLength))
		case strings.IndexFunc(def, func(r rune) bool { return r < ' ' || r > '~' }) >= 0:
			sl.ReportError(def, "default", "Default", "printascii", "")
		}
	case settings.KindInt, settings.KindFloat:
		if it.MinLength != 0 {
			sl.ReportError(it.MinLength, "min_length", "MinLength", "excluded", it.Kind)
		}
		if it.MaxLength != 0 {
			sl.ReportError(it.MaxLength, "max_length", "MaxLength", "excluded", it.Kind)
		}
		isInt := it.Kind == string(settings.KindInt)
		for _, b := range []struct {
			v          *float64
			name, path string
		}{{it.Min, "min", "Min"}, {it.Max, "max", "Max"}} {
			switch {
			case b.v == nil:
			case math.IsNaN(*b.v) || math.IsInf(*b.v, 0):
				// Missing bounds are the way to leave a side open.
				sl.ReportError(*b.v, b.name, b.path, "number", "")
			case isInt && !isSafeInteger(*b.v):
				sl.ReportError(*b.v, b.name, b.path, "integer", "")
			}
		}
		lo, hi := it.floatBounds()
		if lo > hi {
			sl.ReportError(it.Min, "min", "Min", "ltefield", "max")
			break
		}
		if it.Default == nil {
			break
		}
		var def float64
		if isInt {
			n, err := strconv.Atoi(*it.Default)
			if err != nil {
				sl.ReportError(*it.Default, "default", "Default", "integer", "")
				break
			}
			def = float64(n)
		} else {
			f, err := strconv.ParseFloat(*it.Default, 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				sl.ReportError(*it.Default, "default", "Default", "number", "")
				break
			}
			def = f
		}
		if def < lo || def > hi {
			sl.ReportError(*it.Default, "default", "Default", "range", it.rangeString())
		}
	}
}

// Integers beyond 2^53 cannot be represented exactly in the float64 fields the
// bounds are decoded into.
func isSafeInteger(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) <= 1<<53
}

func (it *Item) floatBounds() (lo, hi float64) {
	lo, hi = math.Inf(-1), math.Inf(1)
	if it.Min != nil {
		lo = *it.Min
	}
	if it.Max != nil {
		hi = *it.Max
	}
	return lo, hi
}

func (it *Item) intBounds() (lo, hi int) {
	lo, hi = math.MinInt, math.MaxInt
	if it.Min != nil {
		lo = int(*it.Min)
	}
	if it.Max != nil {
		hi = int(*it.Max)
	}
	return lo, hi
}

func (it *Item) rangeString() string {
	lo, hi := "-inf", "+inf"
	if it.Min != nil {
		lo = strconv.FormatFloat(*it.Min, 'f', -1, 64)
	}
	if it.Max != nil {
		hi = strconv.FormatFloat(*it.Max, 'f', -1, 64)
	}
	return "[" + lo + ", " + hi + "]"
}
