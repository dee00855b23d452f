package fetch

import (
	"math"
	"strconv"
)

// Scalar is a sealed interface representing a condition literal.
// Only String, Number, and Bool implement it. Multi-valued operators use
// an ordered []Scalar instead of a dedicated list type.
type Scalar interface {
	scalarValue() // Sealed - only these types implement it
}

// String is a string literal.
type String string

func (String) scalarValue() {}

// Number is a numeric literal. Stored as float64; the coercion guard in
// CoerceText ensures a Number's canonical decimal form reproduces the
// source text exactly, so no precision is silently lost on round-trip.
type Number float64

func (Number) scalarValue() {}

// Bool is a boolean literal. Produced only from a bare value= attribute
// equal to "true" or "false", never from <value> element text.
type Bool bool

func (Bool) scalarValue() {}

// CoerceText converts <value> element text to a Scalar. The text becomes
// a Number if and only if it is a finite numeric literal whose canonical
// decimal re-serialization equals the input exactly; otherwise it stays
// a String. The exact-equality guard keeps zero-padded codes ("007"),
// trailing-zero decimals ("1.0"), and exponent forms ("1e3") as strings
// rather than silently reinterpreting them.
func CoerceText(text string) Scalar {
	if n, ok := coerceNumber(text); ok {
		return n
	}
	return String(text)
}

// CoerceAttribute converts a value= attribute to a Scalar. Identical to
// CoerceText except that the literal strings "true" and "false" coerce
// to Bool.
func CoerceAttribute(text string) Scalar {
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return CoerceText(text)
}

// FormatScalar renders a Scalar as FetchXML literal text. Numbers are
// formatted without exponent notation and with insignificant trailing
// zeros stripped, matching the coercion guard so that serializing a
// parsed value reproduces the original text.
func FormatScalar(v Scalar) string {
	switch val := v.(type) {
	case String:
		return string(val)
	case Number:
		return FormatNumber(float64(val))
	case Bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// FormatNumber renders a float in canonical decimal form: shortest 'f'
// representation, never scientific notation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// coerceNumber applies the exact round-trip guard.
func coerceNumber(text string) (Number, bool) {
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	// ParseFloat also accepts "NaN" and "Inf"; only finite literals are
	// numbers here.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if FormatNumber(f) != text {
		return 0, false
	}
	return Number(f), true
}
