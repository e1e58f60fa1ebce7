package adaptivf

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyInput is returned by Build when no vectors are supplied.
	ErrEmptyInput = errors.New("empty input")

	// ErrNotBuilt is returned by Insert before the first successful Build.
	ErrNotBuilt = errors.New("index not built")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrIDCountMismatch is returned by Build when ids are supplied but their
	// count differs from the number of vectors.
	ErrIDCountMismatch = errors.New("id count does not match vector count")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrDuplicateID indicates an insert of an id that is already stored.
type ErrDuplicateID struct {
	ID uint64
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate id: %d", e.ID)
}

// ErrNonFiniteValue indicates a vector component that is NaN or infinite.
type ErrNonFiniteValue struct {
	Index int
	Value float32
}

func (e *ErrNonFiniteValue) Error() string {
	return fmt.Sprintf("non-finite value %v at component %d", e.Value, e.Index)
}

// ErrInvalidConfig indicates a configuration value out of range.
type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e *ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// ConsistencyError lists the violations found by CheckConsistency.
type ConsistencyError struct {
	Violations []string
}

func (e *ConsistencyError) Error() string {
	const maxShown = 5
	shown := e.Violations
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	msg := fmt.Sprintf("index inconsistent (%d violations): %s", len(e.Violations), strings.Join(shown, "; "))
	if len(e.Violations) > maxShown {
		msg += "; ..."
	}
	return msg
}
