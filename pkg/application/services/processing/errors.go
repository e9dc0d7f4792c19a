package processing

import (
	"fmt"
	"strings"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/errors"
)

var (
	// ErrValidationFailed marks an aborted run; the BOM was left untouched
	ErrValidationFailed = errors.New("part list validation failed")
	// ErrInvalidQuantity is the row error for quantities that are not non-negative integers
	ErrInvalidQuantity = errors.New("part quantity must be a non-negative integer")
	// ErrMalformedPosition is the row error for positions with empty or non-numeric segments
	ErrMalformedPosition = errors.New("part position segments must be integers")
	// ErrDuplicatePosition is the row error for positions shared by several parts
	ErrDuplicatePosition = errors.New("part position must be unique")
	// ErrHierarchyDefect is returned when a validated position references a missing parent
	ErrHierarchyDefect = errors.New("part position references a missing parent")
	// ErrHierarchyTooDeep is returned for trees nested deeper than MaxGenerations
	ErrHierarchyTooDeep = errors.New("part hierarchy is nested too deep")
	// ErrQuantityOverflow is returned when sets or to-order exceed the quantity range
	ErrQuantityOverflow = errors.New("order quantity overflows")
)

// Category groups row-level validation failures
type Category string

const (
	CategoryQuantity          Category = "invalid_quantity"
	CategoryPosition          Category = "invalid_position"
	CategoryDuplicatePosition Category = "duplicate_position"
)

// RowError is one row-level validation failure
type RowError struct {
	Index    int
	Category Category
	Position string
	Value    string
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (position %q): %s: %v", e.Index+1, e.Position, e.Category, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ValidationError carries the consolidated validation report of an aborted run
type ValidationError struct {
	Report *ValidationReport
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Report.Messages(), " ")
}

// Unwrap exposes ErrValidationFailed and every row error
func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrValidationFailed}, e.Report.Errors.WrappedErrors()...)
}

// HierarchyDefectError names the position whose parent could not be found
type HierarchyDefectError struct {
	Position       string
	ParentPosition string
}

func (e *HierarchyDefectError) Error() string {
	return fmt.Sprintf("position %q references missing parent %q", e.Position, e.ParentPosition)
}

func (e *HierarchyDefectError) Unwrap() error {
	return ErrHierarchyDefect
}

func multiply(a, b entities.Quantity) (entities.Quantity, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/b != a || product < 0 {
		return 0, errors.Errorf("%d x %d: %w", a, b, ErrQuantityOverflow)
	}
	return product, nil
}
