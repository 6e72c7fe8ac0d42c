package shell

import (
	"context"
	"fmt"
	"sort"
)

// HandlerFunc implements one command. args excludes the command name.
// Blocking handlers must watch ctx and return ctx.Err() when cancelled.
type HandlerFunc func(ctx context.Context, args []string) error

// CommandSpec describes one registered command: its name, positional
// grammar, the short help line, the longer man text, and the handler.
// Specs are immutable once registered.
type CommandSpec struct {
	Name    string
	Usage   string // positional grammar, e.g. "cat <file>"
	Summary string // one line, shown by help
	Manual  string // longer prose, shown by man
	MinArgs int
	MaxArgs int // -1 means unbounded
	Run     HandlerFunc
}

// Registry is the static name → CommandSpec mapping. It is built once at
// startup and never mutated afterwards, so lookups need no locking.
type Registry struct {
	specs map[string]CommandSpec
	names []string
}

func newRegistry() *Registry {
	return &Registry{specs: make(map[string]CommandSpec)}
}

// register adds a spec. Registering the same name twice is a programming
// error caught at startup.
func (r *Registry) register(spec CommandSpec) error {
	if spec.Name == "" || spec.Run == nil {
		return fmt.Errorf("invalid command spec %q", spec.Name)
	}
	if _, exists := r.specs[spec.Name]; exists {
		return fmt.Errorf("command %q already registered", spec.Name)
	}
	r.specs[spec.Name] = spec
	r.names = append(r.names, spec.Name)
	return nil
}

func (r *Registry) registerAll(specs []CommandSpec) error {
	for _, spec := range specs {
		if err := r.register(spec); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the spec registered under name.
func (r *Registry) Lookup(name string) (CommandSpec, bool) {
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns all registered command names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	sort.Strings(out)
	return out
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.specs)
}

// checkArity validates the argument count against the spec.
func checkArity(spec CommandSpec, args []string) error {
	if len(args) < spec.MinArgs {
		return usageErr(spec.Usage)
	}
	if spec.MaxArgs >= 0 && len(args) > spec.MaxArgs {
		return usageErr(spec.Usage)
	}
	return nil
}
