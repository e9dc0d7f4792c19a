package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrDelimiterNotUnique is returned when a position uses more than one separator,
// or a separator different from the one already established for the collection
var ErrDelimiterNotUnique = errors.New("only one position delimiter is allowed")

// DelimiterError describes a position whose delimiter could not be accepted
type DelimiterError struct {
	Position    string
	Candidates  []string
	Established string
}

func (e *DelimiterError) Error() string {
	if len(e.Candidates) > 1 {
		return fmt.Sprintf("found not unique delimiter %q in position %q", strings.Join(e.Candidates, ""), e.Position)
	}
	return fmt.Sprintf("found delimiter %q in position %q, current set delimiter: %q",
		strings.Join(e.Candidates, ""), e.Position, e.Established)
}

func (e *DelimiterError) Unwrap() error {
	return ErrDelimiterNotUnique
}

// PositionDelimiter returns the single non-digit character used in a position string.
// An empty result means the position has one segment and therefore no parent.
func PositionDelimiter(position string) (string, error) {
	seen := make(map[rune]struct{})
	for _, r := range position {
		if !unicode.IsDigit(r) {
			seen[r] = struct{}{}
		}
	}

	switch len(seen) {
	case 0:
		return "", nil
	case 1:
		for r := range seen {
			return string(r), nil
		}
	}

	candidates := make([]string, 0, len(seen))
	for r := range seen {
		candidates = append(candidates, string(r))
	}
	sort.Strings(candidates)
	return "", &DelimiterError{Position: position, Candidates: candidates}
}

// DelimiterTracker reconciles per-position delimiters across a whole collection.
// The first delimiter observed becomes the collection-wide one.
type DelimiterTracker struct {
	delimiter string
}

// Observe checks one position against the collection-wide delimiter
func (t *DelimiterTracker) Observe(position string) (string, error) {
	delimiter, err := PositionDelimiter(position)
	if err != nil {
		return "", err
	}
	if delimiter == "" {
		return "", nil
	}
	if t.delimiter != "" && t.delimiter != delimiter {
		return "", &DelimiterError{Position: position, Candidates: []string{delimiter}, Established: t.delimiter}
	}
	t.delimiter = delimiter
	return delimiter, nil
}

// Delimiter returns the collection-wide delimiter, empty if none was observed
func (t *DelimiterTracker) Delimiter() string {
	return t.delimiter
}

// SplitPosition splits a position into its segments
func SplitPosition(position, delimiter string) []string {
	if delimiter == "" {
		return []string{position}
	}
	return strings.Split(position, delimiter)
}

// ParentPosition returns the position with the last segment removed, empty for top-level positions
func ParentPosition(position, delimiter string) string {
	segments := SplitPosition(position, delimiter)
	if len(segments) < 2 {
		return ""
	}
	return strings.Join(segments[:len(segments)-1], delimiter)
}

// AncestorPositions returns every ancestor position, root first
func AncestorPositions(position, delimiter string) []string {
	segments := SplitPosition(position, delimiter)
	ancestors := make([]string, 0, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		ancestors = append(ancestors, strings.Join(segments[:i], delimiter))
	}
	return ancestors
}

// IsWellFormedPosition reports whether every segment is a non-empty run of digits
func IsWellFormedPosition(position, delimiter string) bool {
	for _, segment := range SplitPosition(position, delimiter) {
		if segment == "" {
			return false
		}
		for _, r := range segment {
			if !unicode.IsDigit(r) {
				return false
			}
		}
	}
	return true
}
