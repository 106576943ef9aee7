package query_test

import (
	"errors"
	"testing"

	"github.com/querl/querl/pkg/query"
)

func TestCursorTakeInt(t *testing.T) {
	cursor := query.NewCursor([]query.Parameter{
		query.NewParameter("123"),
		query.NewParameter("234"),
	})
	x, err := query.Take(cursor, query.IntFromText)
	if err != nil {
		t.Fatal(err)
	}
	if x != 123 {
		t.Errorf("first Take = %d, want 123", x)
	}
	y, err := query.Take(cursor, query.IntFromText)
	if err != nil {
		t.Fatal(err)
	}
	if y != 234 {
		t.Errorf("second Take = %d, want 234", y)
	}
	if cursor.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", cursor.Remaining())
	}
}

func TestCursorMixedTypes(t *testing.T) {
	cursor := query.NewCursor([]query.Parameter{
		query.NewParameter("123"),
		query.NewParameter("234"),
	})
	s, err := query.Take(cursor, query.StringFromText)
	if err != nil {
		t.Fatal(err)
	}
	if s != "123" {
		t.Errorf("string Take = %q, want %q", s, "123")
	}
	n, err := query.Take(cursor, query.IntFromText)
	if err != nil {
		t.Fatal(err)
	}
	if n != 234 {
		t.Errorf("int Take = %d, want 234", n)
	}
}

func TestCursorExhausted(t *testing.T) {
	cursor := query.NewCursor(nil)
	_, err := query.Take(cursor, query.IntFromText)
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrArgumentNotSpecified {
		t.Fatalf("error = %v, want ArgumentNotSpecified", err)
	}
	if qerr.Error() != "Argument not specified" {
		t.Errorf("message = %q", qerr.Error())
	}
}

func TestCursorCoercionFailureCarriesPosition(t *testing.T) {
	pos := query.Position{Offset: 7, Line: 1, Column: 8}
	cursor := query.NewCursor([]query.Parameter{
		query.TextParameter{Value: "xyz", Pos: pos},
	})
	_, err := query.Take(cursor, query.IntFromText)
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrParameter {
		t.Fatalf("error = %v, want ErrParameter", err)
	}
	if qerr.Pos != pos {
		t.Errorf("error position = %+v, want %+v", qerr.Pos, pos)
	}
	// the failed parameter is not consumed
	if cursor.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", cursor.Remaining())
	}
}

func TestCursorRejectsLinkParameter(t *testing.T) {
	cursor := query.NewCursor([]query.Parameter{query.LinkParameter{Value: "ref"}})
	_, err := query.Take(cursor, query.StringFromText)
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrGeneral {
		t.Fatalf("error = %v, want ErrGeneral", err)
	}
}

func TestFromTextConversions(t *testing.T) {
	if v, err := query.FloatFromText("2.5"); err != nil || v != 2.5 {
		t.Errorf("FloatFromText = %v, %v", v, err)
	}
	if _, err := query.FloatFromText("nope"); err == nil {
		t.Error("FloatFromText accepted garbage")
	}
	if v, err := query.BoolFromText("TRUE"); err != nil || v != true {
		t.Errorf("BoolFromText = %v, %v", v, err)
	}
	if v, err := query.BoolFromText("false"); err != nil || v != false {
		t.Errorf("BoolFromText = %v, %v", v, err)
	}
	if _, err := query.BoolFromText("yes"); err == nil {
		t.Error("BoolFromText accepted 'yes'")
	}
}
