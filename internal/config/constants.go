package config

// RootNamespace is the registry namespace the evaluator resolves against.
// Queries name actions only; the namespace is fixed for the whole engine.
const RootNamespace = "root"

// Default serialization settings used when a host does not ask for a
// specific format.
const (
	DefaultFormat    = "json"
	DefaultMediaType = "application/json"
	DefaultExtension = "json"
)
