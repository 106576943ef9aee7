package cli

import (
	"strings"

	"github.com/querl/querl/internal/config"
	"github.com/querl/querl/pkg/action"
	"github.com/querl/querl/pkg/query"
	"github.com/querl/querl/pkg/value"
)

// newRegistry builds the action set the CLI evaluates against: a small
// arithmetic and text toolbox over pkg/value. Hosts embedding the engine
// register their own actions instead.
func newRegistry() *action.Registry[value.Value] {
	r := action.NewRegistry[value.Value]()
	ns := config.RootNamespace

	register := func(name string, a action.Action[value.Value]) {
		r.Register(ns, name, a)
	}

	// arithmetic
	register("square", action.Func1(func(x int) int { return x * x }, value.ToInt, value.OfInt))
	register("neg", action.Func1(func(x int) int { return -x }, value.ToInt, value.OfInt))
	register("add", action.Func2(func(x, y int) int { return x + y }, value.ToInt, query.IntFromText, value.OfInt))
	register("sub", action.Func2(func(x, y int) int { return x - y }, value.ToInt, query.IntFromText, value.OfInt))
	register("mul", action.Func2(func(x, y int) int { return x * y }, value.ToInt, query.IntFromText, value.OfInt))
	register("scale", action.Func2(func(x, f float64) float64 { return x * f }, value.ToFloat, query.FloatFromText, value.OfFloat))

	// text
	register("upper", action.Func1(strings.ToUpper, value.ToString, value.OfString))
	register("lower", action.Func1(strings.ToLower, value.ToString, value.OfString))
	register("trim", action.Func1(strings.TrimSpace, value.ToString, value.OfString))
	register("append", action.Func2(func(s, t string) string { return s + t }, value.ToString, query.StringFromText, value.OfString))
	register("split", action.Func2(func(s, sep string) string {
		return strings.Join(strings.Split(s, sep), "\n")
	}, value.ToString, query.StringFromText, value.OfString))
	register("len", action.Func1(func(s string) int { return len(s) }, value.ToString, value.OfInt))

	// predicates
	register("not", action.Func1(func(b bool) bool { return !b }, value.ToBool, value.OfBool))

	return r
}
