package contenttree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned by mutations issued before the first successful Load.
	ErrNotLoaded = errors.New("content tree not loaded")
	// ErrUnknownSection is returned when a lesson operation names a section the tree does not hold.
	ErrUnknownSection = errors.New("unknown section")
	// ErrCrossSection is returned when a reorder would move a lesson into another section.
	ErrCrossSection = errors.New("lessons cannot move between sections")
	// ErrInvalidOrder is returned when a proposed order is not a permutation of the container's ids.
	ErrInvalidOrder = errors.New("order does not match the current items")

	errNoChange = errors.New("no change")
)

// ValidationError reports bad input caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// RefetchError reports that a mutation failed and the reload that should have
// replaced the optimistic tree failed too. The optimistic tree is still in place.
type RefetchError struct {
	Mutation error
	Refetch  error
}

func (e *RefetchError) Error() string {
	return fmt.Sprintf("%v; reload failed: %v", e.Mutation, e.Refetch)
}

func (e *RefetchError) Unwrap() []error {
	return []error{e.Mutation, e.Refetch}
}
