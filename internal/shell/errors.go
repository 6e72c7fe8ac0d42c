// Package shell implements the interactive shell: command registry,
// dispatcher, alias/environment/history state, the REPL loop, and every
// command handler. All file access goes through internal/vfs and all
// text algorithms live in internal/textutil; this package is the glue
// and the control flow.
package shell

import (
	"errors"
	"fmt"
)

// UsageError reports a wrong argument shape for a command. The dispatcher
// prints the usage string and keeps going.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// NotFoundError reports a missing command, file, directory or alias.
type NotFoundError struct {
	Kind string // "command", "directory", "alias", ...
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// ExpressionError reports malformed input to a calculator-style command.
type ExpressionError struct {
	Err error
}

func (e *ExpressionError) Error() string {
	return "bad expression: " + e.Err.Error()
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

func usageErr(usage string) error {
	return &UsageError{Usage: usage}
}

func notFound(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
