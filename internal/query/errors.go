package query

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned when a path segment matches none of the
	// accepted forms.
	ErrSyntax = errors.New("query expression contains errors")

	// ErrInvalidStep is returned when a step has neither kind nor
	// discriminator. The parser never produces one.
	ErrInvalidStep = errors.New("query step has no kind and no discriminator")
)

// StepError locates an invalid step within an expression.
type StepError struct {
	Pos int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Pos, ErrInvalidStep)
}

func (e *StepError) Unwrap() error { return ErrInvalidStep }
