package query

import "fmt"

// ErrorKind classifies every failure the engine can produce. Callers match
// on the kind; the engine never wraps or aggregates errors.
type ErrorKind int

const (
	// ErrGeneral is an uncategorized low-level failure.
	ErrGeneral ErrorKind = iota
	// ErrArgumentNotSpecified means an action required a parameter that the
	// query did not supply.
	ErrArgumentNotSpecified
	// ErrActionNotRegistered means the namespace or the action name could
	// not be resolved in the registry.
	ErrActionNotRegistered
	// ErrParse is a grammar failure; it always carries a Position.
	ErrParse
	// ErrParameter means parameter text failed coercion to the native type
	// an action asked for; it carries the parameter's Position.
	ErrParameter
	// ErrConversion means a value could not be converted to or from a native
	// function's type at dispatch time.
	ErrConversion
	// ErrSerialization is a byte encode/decode failure; it carries the
	// format name.
	ErrSerialization
)

// Error is the single error type of the engine. Pos is meaningful for
// ErrParse and ErrParameter, Format for ErrSerialization.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     Position
	Format  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrArgumentNotSpecified:
		return "Argument not specified"
	case ErrParse, ErrParameter:
		return fmt.Sprintf("Error: %s %s", e.Message, e.Pos)
	default:
		return fmt.Sprintf("Error: %s", e.Message)
	}
}

// Is allows errors.Is matching against a bare kind marker, e.g.
// errors.Is(err, &Error{Kind: ErrParse}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// NewGeneralError returns an uncategorized engine failure.
func NewGeneralError(format string, a ...interface{}) *Error {
	return &Error{Kind: ErrGeneral, Message: fmt.Sprintf(format, a...)}
}

// NewArgumentNotSpecified reports a missing required parameter.
func NewArgumentNotSpecified() *Error {
	return &Error{Kind: ErrArgumentNotSpecified}
}

// NewActionNotRegistered reports a failed registry lookup.
func NewActionNotRegistered(format string, a ...interface{}) *Error {
	return &Error{Kind: ErrActionNotRegistered, Message: fmt.Sprintf(format, a...)}
}

// NewParseError reports a positioned grammar failure.
func NewParseError(pos Position, format string, a ...interface{}) *Error {
	return &Error{Kind: ErrParse, Message: fmt.Sprintf(format, a...), Pos: pos}
}

// NewParameterError reports a positioned parameter coercion failure.
func NewParameterError(pos Position, format string, a ...interface{}) *Error {
	return &Error{Kind: ErrParameter, Message: fmt.Sprintf(format, a...), Pos: pos}
}

// NewConversionError reports a value/native conversion failure at dispatch
// time. There is no reliable source position once inside a native call.
func NewConversionError(format string, a ...interface{}) *Error {
	return &Error{Kind: ErrConversion, Message: fmt.Sprintf(format, a...)}
}

// NewSerializationError reports a byte encode/decode failure for a format.
func NewSerializationError(format string, msg string, a ...interface{}) *Error {
	return &Error{Kind: ErrSerialization, Message: fmt.Sprintf(msg, a...), Format: format}
}
