package query

import "fmt"

// Position is a source location inside query text, attached to every parsed
// node so later stages (parameter coercion, dispatch) can point back at the
// offending text. Line 0 means the position is unknown, e.g. for nodes built
// programmatically rather than parsed.
type Position struct {
	Offset int // byte offset into the query text
	Line   int // 1-based line, 0 = unknown
	Column int // 1-based column in runes
}

// UnknownPosition returns the zero position used for hand-built nodes.
func UnknownPosition() Position {
	return Position{}
}

// Known reports whether the position was produced by the parser.
func (p Position) Known() bool {
	return p.Line != 0
}

func (p Position) String() string {
	switch {
	case p.Line == 0:
		return "(unknown position)"
	case p.Line > 1:
		return fmt.Sprintf("line %d, position %d", p.Line, p.Column)
	default:
		return fmt.Sprintf("position %d", p.Column)
	}
}
