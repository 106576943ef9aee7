// Package query defines the syntax model of the querl language: parameter,
// action request, segment header, segment and query values as produced by
// pkg/parse, together with canonical encoding back to query text and the
// parameter coercion layer used during dispatch.
//
// All model values are built once (by the parser or the Query builder) and
// read-only afterwards.
package query

import (
	"fmt"
	"strings"
	"unicode"
)

// Parameter is one action parameter. It is a closed set of two variants:
// TextParameter, the only kind the parser produces, and LinkParameter,
// reserved for cross-references and not yet supported by the encoder.
type Parameter interface {
	// Text returns the decoded parameter text.
	Text() string
	// Position returns where the parameter started in the query text.
	Position() Position
	// Encode renders the parameter as canonical, escaped query text.
	Encode() (string, error)
}

// TextParameter is a plain text parameter.
type TextParameter struct {
	Value string
	Pos   Position
}

// NewParameter builds a text parameter with an unknown position.
func NewParameter(text string) TextParameter {
	return TextParameter{Value: text}
}

func (p TextParameter) Text() string       { return p.Value }
func (p TextParameter) Position() Position { return p.Pos }

func (p TextParameter) Encode() (string, error) {
	return escapeParameterText(p.Value), nil
}

// LinkParameter is a reserved parameter variant referring to another
// resource. Its semantics are not defined yet; Encode rejects it.
type LinkParameter struct {
	Value string
	Pos   Position
}

func (p LinkParameter) Text() string       { return p.Value }
func (p LinkParameter) Position() Position { return p.Pos }

func (p LinkParameter) Encode() (string, error) {
	return "", NewGeneralError("link parameter is not supported yet")
}

// escapeParameterText escapes decoded parameter text so that parsing it
// back yields the identical string: '~' becomes "~~", '-' becomes "~_" and
// anything outside letters, digits and '_' is percent-encoded per UTF-8 byte.
func escapeParameterText(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '~':
			b.WriteString("~~")
		case r == '-':
			b.WriteString("~_")
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			for _, octet := range []byte(string(r)) {
				fmt.Fprintf(&b, "%%%02X", octet)
			}
		}
	}
	return b.String()
}

// ActionRequest is one named, parameterized action invocation, e.g. the
// "add-10" in "square/add-10".
type ActionRequest struct {
	Name       string
	Pos        Position
	Parameters []Parameter
}

// Encode renders the request as canonical query text.
func (a *ActionRequest) Encode() (string, error) {
	if len(a.Parameters) == 0 {
		return a.Name, nil
	}
	parts := make([]string, 0, len(a.Parameters)+1)
	parts = append(parts, a.Name)
	for _, p := range a.Parameters {
		enc, err := p.Encode()
		if err != nil {
			return "", err
		}
		parts = append(parts, enc)
	}
	return strings.Join(parts, "-"), nil
}

// SegmentHeader introduces a query segment in the segmented grammar. Level
// is the count of leading '-' separators and is at least 1 for any parsed
// header. Name may be empty; parameters require a name.
type SegmentHeader struct {
	Name       string
	Level      int
	Pos        Position
	Parameters []Parameter
}

// NewSegmentHeader builds a minimal level-1 header.
func NewSegmentHeader(name string) *SegmentHeader {
	return &SegmentHeader{Name: name, Level: 1}
}

// Encode renders the header as canonical query text.
func (h *SegmentHeader) Encode() (string, error) {
	if h.Level < 1 {
		return "", NewGeneralError("segment header level must be at least 1, got %d", h.Level)
	}
	if len(h.Parameters) > 0 && h.Name == "" {
		return "", NewGeneralError("segment header with parameters requires a name")
	}
	var b strings.Builder
	for i := 0; i < h.Level; i++ {
		b.WriteByte('-')
	}
	b.WriteString(h.Name)
	for _, p := range h.Parameters {
		enc, err := p.Encode()
		if err != nil {
			return "", err
		}
		b.WriteByte('-')
		b.WriteString(enc)
	}
	return b.String(), nil
}

// QuerySegment is one '/'-delimited unit of the segmented grammar: an
// optional header followed by a (possibly empty) action path. A headerless
// segment always has a non-empty path.
type QuerySegment struct {
	Header *SegmentHeader
	Path   []ActionRequest
}

// Encode renders the segment as canonical query text.
func (s *QuerySegment) Encode() (string, error) {
	parts := make([]string, 0, len(s.Path))
	for i := range s.Path {
		enc, err := s.Path[i].Encode()
		if err != nil {
			return "", err
		}
		parts = append(parts, enc)
	}
	path := strings.Join(parts, "/")
	if s.Header == nil {
		return path, nil
	}
	header, err := s.Header.Encode()
	if err != nil {
		return "", err
	}
	if path == "" {
		return header, nil
	}
	return header + "/" + path, nil
}

// Query is an ordered list of segments, the richer form of query text.
type Query struct {
	Segments []QuerySegment
}

// NewQuery returns an empty query for use with AddSegment.
func NewQuery() *Query {
	return &Query{}
}

// AddSegment appends a segment introduced by a level-1 header with the
// given name and returns it for further construction. The pointer is only
// valid until the next AddSegment call.
func (q *Query) AddSegment(name string) *QuerySegment {
	q.Segments = append(q.Segments, QuerySegment{Header: NewSegmentHeader(name)})
	return &q.Segments[len(q.Segments)-1]
}

// Encode renders the whole query as canonical query text.
func (q *Query) Encode() (string, error) {
	parts := make([]string, 0, len(q.Segments))
	for i := range q.Segments {
		enc, err := q.Segments[i].Encode()
		if err != nil {
			return "", err
		}
		parts = append(parts, enc)
	}
	return strings.Join(parts, "/"), nil
}
