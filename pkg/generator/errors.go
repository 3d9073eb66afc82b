package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFieldKind is matched by every *UnknownFieldKindError.
	ErrUnknownFieldKind = errors.New("unknown field kind")

	// ErrNotImplemented is raised when a Field has no Producer.
	ErrNotImplemented = errors.New("field value producer not implemented")

	// ErrNegativeCount is returned when asked for fewer than zero records.
	ErrNegativeCount = errors.New("record count must not be negative")

	// ErrSerialCount is returned when a serial field is given a CountRange.
	ErrSerialCount = errors.New("serial fields can only have a single value")

	// ErrMissingGenerator is returned when a reference or entity field has no
	// generator to delegate to.
	ErrMissingGenerator = errors.New("field requires a generator")

	// ErrInvalidExpression is returned when an expr field does not compile.
	ErrInvalidExpression = errors.New("invalid field expression")

	// ErrInvalidDistribution is returned by WithDistribution for bins or
	// weights the distribution cannot use.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrNotUniquable is returned when Unique is set on a kind whose values
	// cannot be kept distinct.
	ErrNotUniquable = errors.New("field kind cannot be unique")

	// ErrNotEnoughUnique is returned by EnsureGeneratable when a unique field
	// has fewer values left than a generation needs.
	ErrNotEnoughUnique = errors.New("not enough unique values")
)

// UnknownFieldKindError reports a field kind that WithField does not know.
type UnknownFieldKindError struct {
	Kind string
}

func (e *UnknownFieldKindError) Error() string {
	return fmt.Sprintf("unknown field kind %q", e.Kind)
}

// Is makes errors.Is(err, ErrUnknownFieldKind) hold.
func (e *UnknownFieldKindError) Is(target error) bool {
	return target == ErrUnknownFieldKind
}
