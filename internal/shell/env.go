package shell

import "sort"

// Environment maps variable names to values. It is a display-only
// namespace, fully independent of the alias table: values are never
// substituted into command lines.
type Environment struct {
	vars map[string]string
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]string)}
}

// Set stores a variable, silently overwriting any existing value.
func (e *Environment) Set(name, value string) {
	e.vars[name] = value
}

// Get returns the value for name.
func (e *Environment) Get(name string) (string, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Names returns all variable names, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
