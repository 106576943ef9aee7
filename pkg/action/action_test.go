package action_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/querl/querl/pkg/action"
	"github.com/querl/querl/pkg/query"
	"github.com/querl/querl/pkg/value"
)

func TestFunc1Call(t *testing.T) {
	square := action.Func1(func(x int) int { return x * x }, value.ToInt, value.OfInt)
	result, err := square.Call(value.OfInt(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(4) {
		t.Errorf("square(2) = %v, want 4", result)
	}
}

func TestFunc1InputConversionFailure(t *testing.T) {
	square := action.Func1(func(x int) int { return x * x }, value.ToInt, value.OfInt)
	_, err := square.Call(value.OfString("two"), nil)
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrConversion {
		t.Fatalf("error = %v, want ErrConversion", err)
	}
	if !strings.Contains(qerr.Message, "input argument conversion failed") {
		t.Errorf("message = %q, want input direction named", qerr.Message)
	}
}

func TestFunc2Call(t *testing.T) {
	mul := action.Func2(func(x, y int) int { return x * y }, value.ToInt, query.IntFromText, value.OfInt)
	result, err := mul.Call(value.OfInt(2), []query.Parameter{query.NewParameter("3")})
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(6) {
		t.Errorf("mul(2, 3) = %v, want 6", result)
	}
}

func TestFunc2MissingParameter(t *testing.T) {
	add := action.Func2(func(x, y int) int { return x + y }, value.ToInt, query.IntFromText, value.OfInt)
	_, err := add.Call(value.OfInt(2), nil)
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrArgumentNotSpecified {
		t.Fatalf("error = %v, want ArgumentNotSpecified", err)
	}
}

func TestFunc2BadParameterSurfacesCoercionError(t *testing.T) {
	pos := query.Position{Offset: 4, Line: 1, Column: 5}
	add := action.Func2(func(x, y int) int { return x + y }, value.ToInt, query.IntFromText, value.OfInt)
	_, err := add.Call(value.OfInt(2), []query.Parameter{query.TextParameter{Value: "ten", Pos: pos}})
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrParameter {
		t.Fatalf("error = %v, want ErrParameter passed through unchanged", err)
	}
	if qerr.Pos != pos {
		t.Errorf("error position = %+v, want %+v", qerr.Pos, pos)
	}
}

func TestRegistryCall(t *testing.T) {
	registry := action.NewRegistry[value.Value]()
	registry.Register("root", "test", action.Func1(func(x int) int { return x * x }, value.ToInt, value.OfInt))

	result, err := registry.Call("root", "test", value.OfInt(2), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(4) {
		t.Errorf("call = %v, want 4", result)
	}
}

func TestRegistryOverwrite(t *testing.T) {
	registry := action.NewRegistry[value.Value]()
	registry.Register("root", "f", action.Func1(func(x int) int { return x + 1 }, value.ToInt, value.OfInt))
	registry.Register("root", "f", action.Func1(func(x int) int { return x + 2 }, value.ToInt, value.OfInt))

	result, err := registry.Call("root", "f", value.OfInt(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(2) {
		t.Errorf("call = %v, want the last registration to win", result)
	}
}

func TestRegistryDistinguishesMisses(t *testing.T) {
	registry := action.NewRegistry[value.Value]()
	registry.Register("root", "known", action.Func1(func(x int) int { return x }, value.ToInt, value.OfInt))

	_, nsErr := registry.Call("nowhere", "known", value.OfInt(1), nil)
	_, nameErr := registry.Call("root", "unknown", value.OfInt(1), nil)

	for _, err := range []error{nsErr, nameErr} {
		var qerr *query.Error
		if !errors.As(err, &qerr) || qerr.Kind != query.ErrActionNotRegistered {
			t.Fatalf("error = %v, want ActionNotRegistered", err)
		}
	}
	if nsErr.Error() == nameErr.Error() {
		t.Errorf("namespace miss and name miss produced the same message: %q", nsErr)
	}
	if !strings.Contains(nsErr.Error(), "no such namespace") {
		t.Errorf("namespace miss message = %q", nsErr)
	}
}

func newTestRegistry() *action.Registry[value.Value] {
	registry := action.NewRegistry[value.Value]()
	registry.Register("root", "square", action.Func1(func(x int) int { return x * x }, value.ToInt, value.OfInt))
	registry.Register("root", "add", action.Func2(func(x, y int) int { return x + y }, value.ToInt, query.IntFromText, value.OfInt))
	return registry
}

func TestEval(t *testing.T) {
	registry := newTestRegistry()
	result, err := registry.Eval(value.OfInt(2), "square/add-10")
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(14) {
		t.Errorf("eval = %v, want 14", result)
	}
}

func TestEvalEmptyQueryIsIdentity(t *testing.T) {
	registry := newTestRegistry()
	result, err := registry.Eval(value.OfInt(7), "")
	if err != nil {
		t.Fatal(err)
	}
	if result != value.OfInt(7) {
		t.Errorf("eval = %v, want the input back", result)
	}
}

func TestEvalFailsFast(t *testing.T) {
	registry := newTestRegistry()
	result, err := registry.Eval(value.OfInt(2), "square/missing-1/add-10")
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrActionNotRegistered {
		t.Fatalf("error = %v, want ActionNotRegistered", err)
	}
	// the intermediate value never surfaces
	if result != nil {
		t.Errorf("result = %v, want nil on error", result)
	}
}

func TestEvalParseErrorAborts(t *testing.T) {
	registry := newTestRegistry()
	_, err := registry.Eval(value.OfInt(2), "square/add-%1x")
	var qerr *query.Error
	if !errors.As(err, &qerr) || qerr.Kind != query.ErrParse {
		t.Fatalf("error = %v, want ErrParse", err)
	}
}

// Environment is satisfied by Registry; hosts depend on the interface.
var _ action.Environment[value.Value] = (*action.Registry[value.Value])(nil)
