// Package value supplies the concrete value type the querl engine threads
// through action chains, together with the fallible value-to-native and
// infallible native-to-value conversions the adapter layer needs, and a
// format-keyed byte codec for hosts that transport values.
//
// The engine core in pkg/action is generic over the value type; this
// package is one host-side implementation of that contract, not a
// requirement.
package value

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Value is a closed set of scalar variants: None, Text, Integer, Real,
// Bool and Bytes.
type Value interface {
	// TypeIdentifier names the variant: none, text, int, real, bool, bytes.
	TypeIdentifier() string
	// String renders the value for display.
	String() string
}

// None is the absent value.
type None struct{}

func (None) TypeIdentifier() string { return "none" }
func (None) String() string         { return "none" }

// Text is a string value.
type Text struct{ Value string }

func (v Text) TypeIdentifier() string { return "text" }
func (v Text) String() string         { return v.Value }

// Integer is an integral value.
type Integer struct{ Value int }

func (v Integer) TypeIdentifier() string { return "int" }
func (v Integer) String() string         { return strconv.Itoa(v.Value) }

// Real is a floating point value.
type Real struct{ Value float64 }

func (v Real) TypeIdentifier() string { return "real" }
func (v Real) String() string         { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (v Bool) TypeIdentifier() string { return "bool" }
func (v Bool) String() string         { return strconv.FormatBool(v.Value) }

// Bytes is a raw byte sequence.
type Bytes struct{ Value []byte }

func (v Bytes) TypeIdentifier() string { return "bytes" }
func (v Bytes) String() string         { return fmt.Sprintf("bytes[%d]", len(v.Value)) }

// Infallible native-to-value conversions for the adapter layer.

func OfInt(v int) Value       { return Integer{Value: v} }
func OfFloat(v float64) Value { return Real{Value: v} }
func OfBool(v bool) Value     { return Bool{Value: v} }
func OfString(v string) Value { return Text{Value: v} }
func OfBytes(v []byte) Value  { return Bytes{Value: v} }

// ToInt fallibly converts a value to an integer. Only Integer converts.
func ToInt(v Value) (int, error) {
	if i, ok := v.(Integer); ok {
		return i.Value, nil
	}
	return 0, fmt.Errorf("can't convert %s to integer", v.TypeIdentifier())
}

// ToFloat fallibly converts a value to a real number. Integer widens.
func ToFloat(v Value) (float64, error) {
	switch x := v.(type) {
	case Integer:
		return float64(x.Value), nil
	case Real:
		return x.Value, nil
	}
	return 0, fmt.Errorf("can't convert %s to real number", v.TypeIdentifier())
}

// ToBool fallibly converts a value to a bool. None is false, text must
// spell true or false, numbers compare against zero.
func ToBool(v Value) (bool, error) {
	switch x := v.(type) {
	case None:
		return false, nil
	case Bool:
		return x.Value, nil
	case Integer:
		return x.Value != 0, nil
	case Real:
		return x.Value != 0, nil
	case Text:
		switch strings.ToLower(x.Value) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, fmt.Errorf("can't convert text '%s' to bool", x.Value)
	}
	return false, fmt.Errorf("can't convert %s to bool", v.TypeIdentifier())
}

// ToString fallibly converts a value to a string. Scalars format
// themselves; bytes must be valid UTF-8; None does not convert.
func ToString(v Value) (string, error) {
	switch x := v.(type) {
	case Text:
		return x.Value, nil
	case Integer, Real, Bool:
		return v.String(), nil
	case Bytes:
		if !utf8.Valid(x.Value) {
			return "", fmt.Errorf("conversion of bytes to string failed; invalid UTF-8")
		}
		return string(x.Value), nil
	}
	return "", fmt.Errorf("can't convert %s to string", v.TypeIdentifier())
}
