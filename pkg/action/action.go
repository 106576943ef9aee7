// Package action implements the dispatch side of the engine: adapters that
// let plain native functions be invoked uniformly against a generic value
// type, a two-level registry of named actions, and the evaluator that folds
// a value through a parsed action path.
//
// Native action bodies stay ignorant of the engine's value type and of the
// dispatch machinery; every conversion concern lives in the adapter. All
// adapters are built with generics — there is no reflection and no erasure.
package action

import (
	"github.com/querl/querl/pkg/query"
)

// FromValue fallibly converts the engine's value type V to a native input
// type. Hosts supply one per adapted input type.
type FromValue[V, In any] func(V) (In, error)

// IntoValue infallibly converts a native output type back to V.
type IntoValue[Out, V any] func(Out) V

// Action is the uniform contract every registrable action exposes,
// regardless of the native function's shape. Extending to a new arity means
// a new adapter kind, never a change to this interface.
type Action[V any] interface {
	Call(input V, params []query.Parameter) (V, error)
}

type func1[V, In, Out any] struct {
	fn   func(In) Out
	from FromValue[V, In]
	into IntoValue[Out, V]
}

// Func1 adapts an arity-1 native function or closure. The current value is
// converted to the native input type and the native output converts back;
// no parameters are consumed.
func Func1[V, In, Out any](fn func(In) Out, from FromValue[V, In], into IntoValue[Out, V]) Action[V] {
	return func1[V, In, Out]{fn: fn, from: from, into: into}
}

func (f func1[V, In, Out]) Call(input V, _ []query.Parameter) (V, error) {
	var zero V
	in, err := f.from(input)
	if err != nil {
		return zero, query.NewConversionError("input argument conversion failed; %s", err)
	}
	return f.into(f.fn(in)), nil
}

type func2[V, In1, In2, Out any] struct {
	fn   func(In1, In2) Out
	from FromValue[V, In1]
	arg  query.FromText[In2]
	into IntoValue[Out, V]
}

// Func2 adapts an arity-2 native function or closure. The first native
// argument comes from the current value, the second is pulled from the
// parameter list through the coercion cursor, consuming exactly one
// parameter.
func Func2[V, In1, In2, Out any](fn func(In1, In2) Out, from FromValue[V, In1], arg query.FromText[In2], into IntoValue[Out, V]) Action[V] {
	return func2[V, In1, In2, Out]{fn: fn, from: from, arg: arg, into: into}
}

func (f func2[V, In1, In2, Out]) Call(input V, params []query.Parameter) (V, error) {
	var zero V
	a1, err := f.from(input)
	if err != nil {
		return zero, query.NewConversionError("input argument conversion failed; %s", err)
	}
	cursor := query.NewCursor(params)
	a2, err := query.Take(cursor, f.arg)
	if err != nil {
		// The cursor's own error carries the parameter position; pass it
		// through unchanged.
		return zero, err
	}
	return f.into(f.fn(a1, a2)), nil
}
