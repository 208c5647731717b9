package layout

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedInput is matched (errors.Is) by every error NewGraph returns.
	ErrMalformedInput = errors.New("malformed input")
	// ErrUnknownParameter is returned by the named parameter accessors.
	ErrUnknownParameter = errors.New("unknown parameter")
)

// UnresolvedDependencyError reports a dependency name that does not match any
// node of the input.
type UnresolvedDependencyError struct {
	Node       string
	Dependency string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("%v: node '%s' depends on unknown node '%s'", ErrMalformedInput, e.Node, e.Dependency)
}

func (e *UnresolvedDependencyError) Is(target error) bool {
	return target == ErrMalformedInput
}

// DuplicateNodeError reports a node name that occurs more than once.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("%v: duplicate node '%s'", ErrMalformedInput, e.Name)
}

func (e *DuplicateNodeError) Is(target error) bool {
	return target == ErrMalformedInput
}
