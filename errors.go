package shard

import "fmt"

// DegenerateError reports an input triangle with a repeated vertex or zero
// area. The resolver refuses such input because degenerate triangles have no
// plane and would poison every predicate downstream.
type DegenerateError struct {
	Face int
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("shard: input face %d is degenerate", e.Face)
}

// InternalError reports a broken invariant inside the resolver, such as a
// retriangulation failure. It always indicates a bug rather than bad input.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("shard: internal error in %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

func internalf(op string, format string, args ...any) error {
	return &InternalError{Op: op, Err: fmt.Errorf(format, args...)}
}
