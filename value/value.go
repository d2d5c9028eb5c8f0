// ==============================================================================================
// FILE: value/value.go
// ==============================================================================================
// PACKAGE: value
// PURPOSE: The runtime value sum type shared by eval and interp, plus the PRINT numeric
//          formatting rule that Applesoft applies to every printed or STR$-converted number.
// ==============================================================================================

package value

import (
	"strconv"
	"strings"
)

// Value is either a float64 number or a string. Applesoft has no other
// scalar types; arrays and user functions are built from Values by interp.
type Value struct {
	IsString bool
	Num      float64
	Str      string
}

// Number wraps a float64 as a numeric Value.
func Number(n float64) Value { return Value{Num: n} }

// String wraps a string as a string Value.
func String(s string) Value { return Value{IsString: true, Str: s} }

// Zero is the default numeric value new numeric variables hold.
var Zero = Number(0)

// EmptyString is the default value new string variables hold.
var EmptyString = String("")

// Format renders a Value the way PRINT does: FormatNumber for numbers,
// the raw text for strings.
func (v Value) Format() string {
	if v.IsString {
		return v.Str
	}
	return FormatNumber(v.Num)
}

// FormatNumber implements Applesoft's PRINT rule for numbers: a leading
// space in place of a sign for nonnegative values, integers printed
// without a decimal point when they fit exactly, and otherwise up to
// nine significant digits, always followed by a single trailing space.
func FormatNumber(x float64) string {
	var sb strings.Builder
	if x >= 0 {
		sb.WriteByte(' ')
	}

	switch {
	case x == 0:
		sb.WriteByte('0')
	case isIntegral(x) && x > -1e10 && x < 1e10:
		sb.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		sb.WriteString(strconv.FormatFloat(x, 'G', 9, 64))
	}

	sb.WriteByte(' ')
	return sb.String()
}

func isIntegral(x float64) bool {
	return x == float64(int64(x))
}

// ParseNumber converts free-form text (DATA items, INPUT fields) to a
// number, Applesoft-style: leading/trailing whitespace is ignored and a
// non-numeric prefix yields 0 rather than an error.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' ||
			((c == '+' || c == '-') && end == 0) {
			end++
			continue
		}
		break
	}
	n, _ := strconv.ParseFloat(s[:end], 64)
	return n
}

// StrDollar implements the STR$ built-in: the same numeric rendering as
// FormatNumber but without the leading sign-placeholder space (VAL trims
// leading whitespace on its own, but STR$'s contract omits it outright).
func StrDollar(x float64) string {
	return strings.TrimPrefix(FormatNumber(x), " ")
}
