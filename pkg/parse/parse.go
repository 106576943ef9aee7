// Package parse compiles query text into the pkg/query syntax model.
//
// Two grammars share one scanner: the flat action path ("square/add-10")
// consumed by the evaluator, and the segmented form where '-'-prefixed
// headers introduce nested segments. Parsing is recursive descent with
// ordered-choice backtracking between grammar alternatives, but commits
// irrevocably the moment an escape ('~...') or percent escape ('%HH')
// begins: a malformed escape is a positioned hard failure, never a retry
// of another alternative.
package parse

import (
	"bytes"
	"unicode"
	"unicode/utf8"

	"github.com/querl/querl/pkg/query"
)

// scanner is a cursor over query text tracking byte offset and rune
// line/column for positioned diagnostics. Each production strictly advances
// the cursor, so parsing terminates within the input length.
type scanner struct {
	input string
	off   int
	line  int
	col   int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, col: 1}
}

func (s *scanner) position() query.Position {
	return query.Position{Offset: s.off, Line: s.line, Column: s.col}
}

func (s *scanner) eof() bool {
	return s.off >= len(s.input)
}

// peek returns the rune under the cursor, or 0 at end of input.
func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.off:])
	return r
}

// next consumes and returns the rune under the cursor.
func (s *scanner) next() rune {
	r, w := utf8.DecodeRuneInString(s.input[s.off:])
	s.off += w
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) rest() string {
	return s.input[s.off:]
}

// save and restore implement backtracking between grammar alternatives.
func (s *scanner) save() scanner {
	return *s
}

func (s *scanner) restore(state scanner) {
	*s = state
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// param-run shares the identifier rune set; only the first rune differs.
func isParamRune(r rune) bool {
	return isIdentRune(r)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexValue(r rune) byte {
	switch {
	case isASCIIDigit(r):
		return byte(r - '0')
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10
	default:
		return byte(r-'A') + 10
	}
}

// parseIdentifier matches (letter|'_')(letter|digit|'_')*. It reports false
// without consuming anything when the input does not start an identifier.
func (s *scanner) parseIdentifier() (string, bool) {
	if !isIdentStart(s.peek()) {
		return "", false
	}
	start := s.off
	for !s.eof() && isIdentRune(s.peek()) {
		s.next()
	}
	return s.input[start:s.off], true
}

// parseEntity consumes the body of a '~' escape. The leading '~' is already
// consumed and the parse is committed: anything but '~', '_' or a digit run
// is a hard failure.
func (s *scanner) parseEntity(buf *bytes.Buffer) error {
	pos := s.position()
	switch {
	case s.peek() == '~':
		s.next()
		buf.WriteByte('~')
	case s.peek() == '_':
		s.next()
		buf.WriteByte('-')
	case isASCIIDigit(s.peek()):
		// A digit run recovers a leading minus that a plain '-' cannot
		// carry, since '-' separates parameters.
		buf.WriteByte('-')
		for !s.eof() && isASCIIDigit(s.peek()) {
			buf.WriteByte(byte(s.next()))
		}
	default:
		return query.NewParseError(pos, "invalid '~' escape in parameter")
	}
	return nil
}

// parsePercentEscape consumes the two hex digits of a '%HH' escape. The '%'
// is already consumed and the parse is committed.
func (s *scanner) parsePercentEscape(buf *bytes.Buffer) error {
	pos := s.position()
	var hi, lo rune
	if hi = s.peek(); !isHexDigit(hi) {
		return query.NewParseError(pos, "'%%' must be followed by two hex digits")
	}
	s.next()
	if lo = s.peek(); !isHexDigit(lo) {
		return query.NewParseError(pos, "'%%' must be followed by two hex digits")
	}
	s.next()
	buf.WriteByte(hexValue(hi)<<4 | hexValue(lo))
	return nil
}

// parseParameter matches zero or more runs, entities and percent escapes
// and returns the decoded parameter text. It cannot mismatch, only hit a
// committed hard failure inside an escape or produce invalid UTF-8.
func (s *scanner) parseParameter() (query.TextParameter, error) {
	start := s.position()
	var buf bytes.Buffer
	for !s.eof() {
		r := s.peek()
		switch {
		case isParamRune(r):
			buf.WriteRune(s.next())
		case r == '~':
			s.next()
			if err := s.parseEntity(&buf); err != nil {
				return query.TextParameter{}, err
			}
		case r == '%':
			s.next()
			if err := s.parsePercentEscape(&buf); err != nil {
				return query.TextParameter{}, err
			}
		default:
			if !utf8.Valid(buf.Bytes()) {
				return query.TextParameter{}, query.NewParseError(start, "parameter is not valid UTF-8 after percent-decoding")
			}
			return query.TextParameter{Value: buf.String(), Pos: start}, nil
		}
	}
	if !utf8.Valid(buf.Bytes()) {
		return query.TextParameter{}, query.NewParseError(start, "parameter is not valid UTF-8 after percent-decoding")
	}
	return query.TextParameter{Value: buf.String(), Pos: start}, nil
}

// parseAction matches identifier ('-' parameter)*. It reports ok=false
// without consuming anything when no identifier starts here; errors are
// committed escape failures inside parameters.
func (s *scanner) parseAction() (query.ActionRequest, bool, error) {
	start := s.position()
	name, ok := s.parseIdentifier()
	if !ok {
		return query.ActionRequest{}, false, nil
	}
	action := query.ActionRequest{Name: name, Pos: start}
	for s.peek() == '-' {
		s.next()
		p, err := s.parseParameter()
		if err != nil {
			return query.ActionRequest{}, false, err
		}
		action.Parameters = append(action.Parameters, p)
	}
	return action, true, nil
}

// parsePath matches a '/'-separated action list, possibly empty. A '/' not
// followed by an action is left unconsumed for the caller.
func (s *scanner) parsePath() ([]query.ActionRequest, error) {
	first, ok, err := s.parseAction()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	path := []query.ActionRequest{first}
	for s.peek() == '/' {
		state := s.save()
		s.next()
		action, ok, err := s.parseAction()
		if err != nil {
			return nil, err
		}
		if !ok {
			s.restore(state)
			break
		}
		path = append(path, action)
	}
	return path, nil
}

// remainderError reports unconsumed input left after a top-level parse.
func (s *scanner) remainderError() error {
	return query.NewParseError(s.position(), "can't parse query completely: '%s'", s.rest())
}

// ParseQuery parses the flat action-path form, the grammar the evaluator
// consumes. The whole input must parse; empty input is an empty path.
func ParseQuery(text string) ([]query.ActionRequest, error) {
	s := newScanner(text)
	path, err := s.parsePath()
	if err != nil {
		return nil, err
	}
	if !s.eof() {
		return nil, s.remainderError()
	}
	return path, nil
}

// parseHeaderSegment matches one '-'-introduced segment: the '-' run gives
// the header level, an optional action-shaped name with parameters follows,
// then optionally '/' and the segment's action path. A '/' that introduces
// another header belongs to the next segment.
func (s *scanner) parseHeaderSegment() (query.QuerySegment, error) {
	start := s.position()
	level := 0
	for s.peek() == '-' {
		s.next()
		level++
	}
	header := &query.SegmentHeader{Level: level, Pos: start}
	if name, ok := s.parseIdentifier(); ok {
		header.Name = name
		for s.peek() == '-' {
			s.next()
			p, err := s.parseParameter()
			if err != nil {
				return query.QuerySegment{}, err
			}
			header.Parameters = append(header.Parameters, p)
		}
	}
	segment := query.QuerySegment{Header: header}
	if s.peek() == '/' {
		state := s.save()
		s.next()
		if s.peek() == '-' {
			s.restore(state)
			return segment, nil
		}
		path, err := s.parsePath()
		if err != nil {
			return query.QuerySegment{}, err
		}
		if len(path) == 0 {
			s.restore(state)
			return segment, nil
		}
		segment.Path = path
	}
	return segment, nil
}

// ParseSegmentedQuery parses the segmented form: an optional leading
// headerless segment followed by header-introduced segments. The engine
// defines no execution semantics for this form; it is produced for hosts.
func ParseSegmentedQuery(text string) (*query.Query, error) {
	s := newScanner(text)
	q := query.NewQuery()
	if s.eof() {
		return q, nil
	}
	if s.peek() != '-' {
		path, err := s.parsePath()
		if err != nil {
			return nil, err
		}
		if len(path) > 0 {
			q.Segments = append(q.Segments, query.QuerySegment{Path: path})
		}
	}
	for !s.eof() {
		if len(q.Segments) > 0 {
			if s.peek() != '/' {
				break
			}
			state := s.save()
			s.next()
			if s.peek() != '-' {
				s.restore(state)
				break
			}
		} else if s.peek() != '-' {
			break
		}
		segment, err := s.parseHeaderSegment()
		if err != nil {
			return nil, err
		}
		q.Segments = append(q.Segments, segment)
	}
	if !s.eof() {
		return nil, s.remainderError()
	}
	return q, nil
}
