package query

import (
	"strconv"
	"strings"
)

// FromText is a fallible conversion from decoded parameter text to a native
// type. Conversions for further native types are added by supplying another
// function of this shape; the cursor does not need to know about them.
type FromText[T any] func(text string) (T, error)

// IntFromText coerces parameter text to an integer.
func IntFromText(text string) (int, error) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, NewGeneralError("can't parse '%s' as integer", text)
	}
	return v, nil
}

// StringFromText coerces parameter text to a string. It never fails.
func StringFromText(text string) (string, error) {
	return text, nil
}

// FloatFromText coerces parameter text to a real number.
func FloatFromText(text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, NewGeneralError("can't parse '%s' as real number", text)
	}
	return v, nil
}

// BoolFromText coerces parameter text to a bool, accepting "true" and
// "false" in any case.
func BoolFromText(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, NewGeneralError("can't parse '%s' as bool", text)
}

// Cursor walks an ordered parameter list, handing out one coerced parameter
// at a time.
type Cursor struct {
	params []Parameter
}

// NewCursor returns a cursor positioned at the first parameter.
func NewCursor(params []Parameter) *Cursor {
	return &Cursor{params: params}
}

// Remaining reports how many parameters have not been taken yet.
func (c *Cursor) Remaining() int {
	return len(c.params)
}

// Take coerces the next parameter to T and advances the cursor. It fails
// with ArgumentNotSpecified when the list is exhausted and with a positioned
// ParameterError when coercion of the parameter text fails.
func Take[T any](c *Cursor, conv FromText[T]) (T, error) {
	var zero T
	if len(c.params) == 0 {
		return zero, NewArgumentNotSpecified()
	}
	switch p := c.params[0].(type) {
	case TextParameter:
		v, err := conv(p.Value)
		if err != nil {
			return zero, NewParameterError(p.Pos, "%s", err.Error())
		}
		c.params = c.params[1:]
		return v, nil
	default:
		return zero, NewGeneralError("link parameters are not implemented")
	}
}
