package runtime

import (
	"fmt"
	"sort"

	"code/interpreter-go/pkg/ast"
)

// Environment is the single flat variable store for one interpretation run.
// Each name is bound at most once for the lifetime of the environment, and
// its declared type never changes after declaration. IF and WHILE bodies
// share the enclosing store, so there is no parent chain.
type Environment struct {
	values map[string]binding
}

type binding struct {
	value        Value
	declaredType ast.PrimitiveType
}

// NewEnvironment creates an empty execution context.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]binding)}
}

// Declare inserts a new binding. Redeclaring a name is an error regardless
// of where in the program the second declaration appears.
func (e *Environment) Declare(name string, value Value, declaredType ast.PrimitiveType) error {
	if _, ok := e.values[name]; ok {
		return fmt.Errorf("variable '%s' is already declared", name)
	}
	e.values[name] = binding{value: value, declaredType: declaredType}
	return nil
}

// Assign replaces the stored value of an existing binding. The caller is
// responsible for converting the value to the binding's declared type first.
func (e *Environment) Assign(name string, value Value) error {
	b, ok := e.values[name]
	if !ok {
		return fmt.Errorf("undefined variable '%s'", name)
	}
	b.value = value
	e.values[name] = b
	return nil
}

// Get retrieves a binding's value and fixed declared type.
func (e *Environment) Get(name string) (Value, ast.PrimitiveType, error) {
	b, ok := e.values[name]
	if !ok {
		return nil, 0, fmt.Errorf("undefined variable '%s'", name)
	}
	return b.value, b.declaredType, nil
}

// IsDeclared reports whether the name has been declared.
func (e *Environment) IsDeclared(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Snapshot returns a copy of the current values, keyed by name.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, b := range e.values {
		out[k] = b.value
	}
	return out
}

// Keys returns the declared names in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
