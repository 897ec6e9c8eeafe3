package store

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when inserting an id that is already stored.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrNotFound is returned when removing or looking up an absent id.
	ErrNotFound = errors.New("id not found")

	// ErrDimensionMismatch matches every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidConfiguration is returned by New for unusable options.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// DimensionMismatchError reports a vector whose length differs from the
// store's established dimension. Expected is 0 when no dimension has been
// established yet and the vector was empty.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Is makes errors.Is(err, ErrDimensionMismatch) hold.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }
