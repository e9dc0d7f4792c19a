package processing

import (
	"fmt"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
	"github.com/vsinha/prettybom/pkg/errors"
)

// ValidationReport collects every invalid part of a collection, grouped by category
type ValidationReport struct {
	InvalidQuantityParts   []*entities.Part
	InvalidPositionParts   []*entities.Part
	DuplicatePositionParts []*entities.Part
	// Delimiter is the collection-wide position delimiter, empty when every part is top-level
	Delimiter string
	Errors    *errors.MultiError
}

// Succeeded reports whether no part failed validation
func (r *ValidationReport) Succeeded() bool {
	return len(r.InvalidQuantityParts) == 0 &&
		len(r.InvalidPositionParts) == 0 &&
		len(r.DuplicatePositionParts) == 0
}

// InvalidCounts returns the number of invalid parts per category
func (r *ValidationReport) InvalidCounts() map[Category]int {
	return map[Category]int{
		CategoryQuantity:          len(r.InvalidQuantityParts),
		CategoryPosition:          len(r.InvalidPositionParts),
		CategoryDuplicatePosition: len(r.DuplicatePositionParts),
	}
}

// Messages returns one human-readable line per failing category
func (r *ValidationReport) Messages() []string {
	var messages []string
	if n := len(r.InvalidQuantityParts); n > 0 {
		messages = append(messages, fmt.Sprintf("Part quantity must be of integer type. Found %d invalid parts.", n))
	}
	if n := len(r.InvalidPositionParts); n > 0 {
		messages = append(messages, fmt.Sprintf(
			"Part position must be of integer type and use unique delimiter. Found %d invalid parts.", n))
	}
	if n := len(r.DuplicatePositionParts); n > 0 {
		messages = append(messages, fmt.Sprintf("Part position must be unique. Found %d invalid parts.", n))
	}
	return messages
}

// Err returns a *ValidationError when validation failed, nil otherwise
func (r *ValidationReport) Err() error {
	if r.Succeeded() {
		return nil
	}
	return &ValidationError{Report: r}
}

// Validate checks every part without stopping at the first failure: quantities must be
// non-negative integers, positions must use one delimiter consistent across the collection,
// and no two parts may share a position.
func Validate(parts []*entities.Part, columns entities.ColumnMapping) *ValidationReport {
	report := &ValidationReport{}

	for i, part := range parts {
		value := columns.QuantityOf(part)
		if _, err := parseQuantity(value); err != nil {
			report.InvalidQuantityParts = append(report.InvalidQuantityParts, part)
			report.Errors = report.Errors.Append(&RowError{
				Index: i, Category: CategoryQuantity, Position: columns.PositionOf(part), Value: value, Err: err,
			})
		}
	}

	tracker := &services.DelimiterTracker{}
	for i, part := range parts {
		position := columns.PositionOf(part)
		delimiter, err := tracker.Observe(position)
		if err == nil && !services.IsWellFormedPosition(position, delimiter) {
			err = ErrMalformedPosition
		}
		if err != nil {
			report.InvalidPositionParts = append(report.InvalidPositionParts, part)
			report.Errors = report.Errors.Append(&RowError{
				Index: i, Category: CategoryPosition, Position: position, Value: position, Err: err,
			})
		}
	}
	report.Delimiter = tracker.Delimiter()

	occurrences := make(map[string]int, len(parts))
	for _, part := range parts {
		occurrences[columns.PositionOf(part)]++
	}
	for i, part := range parts {
		position := columns.PositionOf(part)
		if occurrences[position] > 1 {
			report.DuplicatePositionParts = append(report.DuplicatePositionParts, part)
			report.Errors = report.Errors.Append(&RowError{
				Index: i, Category: CategoryDuplicatePosition, Position: position, Value: position, Err: ErrDuplicatePosition,
			})
		}
	}

	return report
}
