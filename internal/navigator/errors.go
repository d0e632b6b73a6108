package navigator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrComponentNotFound indicates no component directory matched.
	ErrComponentNotFound = errors.New("component not found")

	// ErrFunctionNotFound indicates the file has no function with the requested name.
	ErrFunctionNotFound = errors.New("function not found")

	// ErrInvalidArgument indicates a required argument was empty.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ComponentNotFoundError carries the package's top-level directories so the
// caller can suggest alternatives.
type ComponentNotFoundError struct {
	Component   string
	Package     string
	Suggestions []string
}

func (e *ComponentNotFoundError) Error() string {
	msg := fmt.Sprintf("component %q not found in %s", e.Component, e.Package)
	if len(e.Suggestions) > 0 {
		msg += "; available: " + strings.Join(e.Suggestions, ", ")
	}
	return msg
}

func (e *ComponentNotFoundError) Unwrap() error {
	return ErrComponentNotFound
}

// FunctionNotFoundError lists every named function found in the file.
type FunctionNotFoundError struct {
	Name        string
	VirtualPath string
	Available   []string
}

func (e *FunctionNotFoundError) Error() string {
	return fmt.Sprintf("function %q not found in %s (%d available)", e.Name, e.VirtualPath, len(e.Available))
}

func (e *FunctionNotFoundError) Unwrap() error {
	return ErrFunctionNotFound
}
