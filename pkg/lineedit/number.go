package lineedit

import (
	"math"
	"strconv"

	"github.com/humidscope/setedit/pkg/term"
)

// MaxNumberLength is the longest line accepted when reading a number.
const MaxNumberLength = 8

// ReadInt prompts for an integer in [min, max]. An empty line leaves the
// decision to the caller: ReadInt returns ok == false and the caller should
// keep its current value. Out-of-range input prints the valid range and
// prompts again.
//
// Text that is not a number is read as its longest numeric prefix, or 0 if
// there is none; see ParseInt.
func (r *Reader) ReadInt(prompt string, min, max int) (v int, ok bool, err error) {
	for {
		line, err := r.ReadLine(prompt, MaxNumberLength)
		if err != nil || line == "" {
			return 0, false, err
		}
		v := ParseInt(line)
		if v < min || v > max {
			logger.Debugf("%q: %d out of range [%d, %d]", prompt, v, min, max)
			r.printBounds(strconv.Itoa(min), strconv.Itoa(max))
			continue
		}
		return v, true, nil
	}
}

// ReadFloat is like ReadInt, but for floating-point numbers. The text is
// parsed with ParseFloat. Either bound may be infinite to leave that side
// open; the value read is always finite.
func (r *Reader) ReadFloat(prompt string, min, max float64) (v float64, ok bool, err error) {
	for {
		line, err := r.ReadLine(prompt, MaxNumberLength)
		if err != nil || line == "" {
			return 0, false, err
		}
		v := ParseFloat(line)
		if math.IsInf(v, 0) || v < min || v > max {
			logger.Debugf("%q: %v out of range [%v, %v]", prompt, v, min, max)
			r.printBounds(formatBound(min), formatBound(max))
			continue
		}
		return v, true, nil
	}
}

func (r *Reader) printBounds(min, max string) {
	r.print("Must be between " + min + " and " + max + term.Newline)
}

func formatBound(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "+inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return FormatFloat(f)
}

// FormatFloat formats a float in the shortest form that parses back to the
// same value.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseInt parses the longest prefix of s that looks like a decimal integer:
// optional leading spaces, an optional sign and digits. It returns 0 if there
// is no such prefix, and saturates instead of overflowing.
func ParseInt(s string) int {
	i := skipSpaces(s, 0)
	j := scanSign(s, i)
	k := scanDigits(s, j)
	if k == j {
		return 0
	}
	// On overflow Atoi returns the saturated value along with the error.
	v, _ := strconv.Atoi(s[i:k])
	return v
}

// ParseFloat parses the longest prefix of s that looks like a decimal
// floating-point number: optional leading spaces, an optional sign, digits
// with an optional fractional part, and an optional exponent. It returns 0 if
// there is no such prefix. Spellings such as "inf" and "nan" are not
// recognized.
func ParseFloat(s string) float64 {
	i := skipSpaces(s, 0)
	j := scanSign(s, i)
	k := scanDigits(s, j)
	nDigits := k - j
	if k < len(s) && s[k] == '.' {
		l := scanDigits(s, k+1)
		nDigits += l - (k + 1)
		k = l
	}
	if nDigits == 0 {
		return 0
	}
	if k < len(s) && (s[k] == 'e' || s[k] == 'E') {
		e := scanSign(s, k+1)
		if f := scanDigits(s, e); f > e {
			k = f
		}
	}
	v, _ := strconv.ParseFloat(s[i:k], 64)
	return v
}

func skipSpaces(s string, i int) int {
	for i < len(s) && s[i] == ' ' {
		i++
	}
	return i
}

func scanSign(s string, i int) int {
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	return i
}

func scanDigits(s string, i int) int {
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return i
}
