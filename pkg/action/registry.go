package action

import (
	"github.com/querl/querl/internal/config"
	"github.com/querl/querl/pkg/parse"
	"github.com/querl/querl/pkg/query"
)

// Environment evaluates query text against a starting value. Registry is
// the engine's implementation; hosts may wrap or replace it.
type Environment[V any] interface {
	Eval(input V, queryText string) (V, error)
}

// Registry maps namespace and action name to a registered Action. It is
// built explicitly during a setup phase and read during evaluation; it does
// no internal locking, so registration must happen before concurrent
// lookups begin.
type Registry[V any] struct {
	namespaces map[string]map[string]Action[V]
}

// NewRegistry returns an empty registry.
func NewRegistry[V any]() *Registry[V] {
	return &Registry[V]{namespaces: make(map[string]map[string]Action[V])}
}

// Register inserts or overwrites the action under (namespace, name). The
// namespace is created on first registration into it; the last write wins.
// There is no unregister.
func (r *Registry[V]) Register(namespace, name string, a Action[V]) {
	ns, ok := r.namespaces[namespace]
	if !ok {
		ns = make(map[string]Action[V])
		r.namespaces[namespace] = ns
	}
	ns[name] = a
}

// Call resolves the action under (namespace, name) and invokes it. An
// unknown namespace and an unknown name under a known namespace both fail
// with ActionNotRegistered, with messages telling the two apart.
func (r *Registry[V]) Call(namespace, name string, input V, params []query.Parameter) (V, error) {
	var zero V
	ns, ok := r.namespaces[namespace]
	if !ok {
		return zero, query.NewActionNotRegistered("action %s not registered in namespace %s; no such namespace", name, namespace)
	}
	a, ok := ns[name]
	if !ok {
		return zero, query.NewActionNotRegistered("action %s not registered in namespace %s", name, namespace)
	}
	return a.Call(input, params)
}

// Eval parses queryText with the flat action-path grammar and left-folds
// the value through the resolved actions in the root namespace. The first
// error from parsing or any dispatch step aborts the rest of the chain and
// is returned verbatim.
func (r *Registry[V]) Eval(input V, queryText string) (V, error) {
	var zero V
	path, err := parse.ParseQuery(queryText)
	if err != nil {
		return zero, err
	}
	value := input
	for i := range path {
		value, err = r.Call(config.RootNamespace, path[i].Name, value, path[i].Parameters)
		if err != nil {
			return zero, err
		}
	}
	return value, nil
}
