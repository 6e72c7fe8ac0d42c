package shell

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/agext/levenshtein"
)

// maxAliasDepth bounds alias expansion so malformed chains cannot loop
// the dispatcher.
const maxAliasDepth = 64

// Execute runs one raw input line: tokenize, expand aliases, look up the
// command, check arity, invoke the handler. Errors are reported to the
// session output and logged; they never terminate the loop.
func (sh *Shell) Execute(ctx context.Context, raw string) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return
	}

	tokens, err := sh.expandAlias(tokens)
	if err != nil {
		sh.report(tokens[0], err)
		return
	}

	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	spec, ok := sh.registry.Lookup(name)
	if !ok {
		sh.reportUnknown(name)
		return
	}
	if err := checkArity(spec, args); err != nil {
		sh.report(name, err)
		return
	}

	sh.logger.Info("command", "name", name, "args", strings.Join(args, " "))
	if err := sh.invoke(ctx, spec, args); err != nil {
		sh.report(name, err)
	}
}

// invoke runs the handler behind a recover boundary so a handler panic is
// reported as an error instead of tearing down the session.
func (sh *Shell) invoke(ctx context.Context, spec CommandSpec, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			sh.logger.Error("command panicked", "name", spec.Name, "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("%s: internal error: %v", spec.Name, r)
		}
	}()
	return spec.Run(ctx, args)
}

// expandAlias rewrites the leading token through the alias table until it
// no longer names an alias. A name seen twice in one expansion is a
// cycle and stops with an error.
func (sh *Shell) expandAlias(tokens []string) ([]string, error) {
	seen := make(map[string]bool)
	for depth := 0; depth < maxAliasDepth; depth++ {
		head := strings.ToLower(tokens[0])
		value, ok := sh.aliases.Get(head)
		if !ok {
			return tokens, nil
		}
		if seen[head] {
			return tokens, fmt.Errorf("alias loop detected for '%s'", head)
		}
		seen[head] = true
		expanded := strings.Fields(value)
		if len(expanded) == 0 {
			return tokens, fmt.Errorf("alias '%s' expands to nothing", head)
		}
		tokens = append(expanded, tokens[1:]...)
	}
	return tokens, fmt.Errorf("alias expansion too deep for '%s'", tokens[0])
}

// report prints a classified error to the session output and logs it.
func (sh *Shell) report(name string, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		sh.println("interrupted")
		sh.logger.Warn("command interrupted", "name", name)
	case IsUsage(err):
		sh.println(err.Error())
	default:
		sh.printf("%s: %v\n", name, err)
		sh.logger.Error("command failed", "name", name, "error", err)
	}
}

// reportUnknown prints the not-found message, with a closest-match
// suggestion when one is near enough.
func (sh *Shell) reportUnknown(name string) {
	sh.printf("command '%s' not found\n", name)
	if hint := sh.suggestCommand(name); hint != "" {
		sh.printf("Did you mean %q?\n", hint)
	}
	sh.logger.Warn("unknown command", "name", name)
}

// suggestCommand returns the registered name closest to the input, or ""
// when nothing is within edit distance 2.
func (sh *Shell) suggestCommand(name string) string {
	best, bestDist := "", 3
	for _, candidate := range sh.registry.Names() {
		if d := levenshtein.Distance(name, candidate, nil); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
