package entities

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidMainAssemblySets is returned for main assembly sets that are not a positive integer
	ErrInvalidMainAssemblySets = errors.New("main assembly sets must be a positive integer")
	// ErrPartNotFound is returned when deleting a part that is not in the BOM
	ErrPartNotFound = errors.New("part does not exist in the bill of materials")
	// ErrNothingToUndo is returned by UndoProcessing when the BOM was never processed
	ErrNothingToUndo = errors.New("bill of materials has no processing to undo")
)

// ImportSource describes where imported parts came from
type ImportSource struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Settings are the assembly-level parameters a BOM is processed with
type Settings struct {
	Columns                ColumnMapping
	MainAssemblyName       string
	MainAssemblySets       Quantity
	ProductionPartKeywords []string
	JunkPartKeywords       []string
	JunkPartEmptyFields    []string
	NormalizedColumns      []string
	// JunkForPurchasedNests marks parts nested in non-production assemblies as junk
	JunkForPurchasedNests bool
}

// DefaultSettings returns settings for one main assembly set with the nesting policy enabled
func DefaultSettings() Settings {
	return Settings{
		MainAssemblySets:      1,
		JunkForPurchasedNests: true,
	}
}

// BOM represents a Bill of Materials: one part collection plus its processing settings
type BOM struct {
	ID              string
	Settings        Settings
	ImportedColumns []string
	ImportSources   []ImportSource

	parts    []*Part
	previous []*Part
	undoable bool
	// main assembly sets the current and previous part lists were processed with, 0 if never
	processedSets Quantity
	previousSets  Quantity
}

// NewBOM creates an empty BOM for the named main assembly
func NewBOM(mainAssemblyName string) *BOM {
	settings := DefaultSettings()
	settings.MainAssemblyName = mainAssemblyName
	return &BOM{Settings: settings}
}

// CreatePart adds a part built from raw column values
func (b *BOM) CreatePart(attributes map[string]string) *Part {
	part := NewPart(attributes)
	b.parts = append(b.parts, part)
	return part
}

// DeletePart removes the given part instance
func (b *BOM) DeletePart(part *Part) error {
	for i, p := range b.parts {
		if p == part {
			b.parts = append(b.parts[:i:i], b.parts[i+1:]...)
			return nil
		}
	}
	return ErrPartNotFound
}

// DeleteAllParts clears the part list
func (b *BOM) DeleteAllParts() {
	b.parts = nil
}

// PartCount returns the number of parts
func (b *BOM) PartCount() int {
	return len(b.parts)
}

// Parts returns the current part list. The slice is a copy, the parts are shared.
func (b *BOM) Parts() []*Part {
	parts := make([]*Part, len(b.parts))
	copy(parts, b.parts)
	return parts
}

// SetMainAssemblySets parses and stores the main assembly multiplier.
// Surrounding whitespace is ignored; anything but a positive integer is rejected.
func (b *BOM) SetMainAssemblySets(value string) error {
	sets, err := ParseMainAssemblySets(value)
	if err != nil {
		return err
	}
	b.Settings.MainAssemblySets = sets
	return nil
}

// ParseMainAssemblySets coerces user input to a positive quantity
func ParseMainAssemblySets(value string) (Quantity, error) {
	sets, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || sets <= 0 {
		return 0, fmt.Errorf("'%s' is invalid value for main assembly sets: %w", value, ErrInvalidMainAssemblySets)
	}
	return Quantity(sets), nil
}

// CommitProcessing replaces the part list with processed parts and keeps the
// previous list so UndoProcessing can restore it. The current main assembly sets
// are recorded as the ones the processed quantities were computed with.
func (b *BOM) CommitProcessing(processed []*Part) {
	b.previous = b.parts
	b.previousSets = b.processedSets
	b.parts = processed
	b.processedSets = b.Settings.MainAssemblySets
	b.undoable = true
}

// UndoProcessing restores the part list from before the last committed processing
func (b *BOM) UndoProcessing() error {
	if !b.undoable {
		return ErrNothingToUndo
	}
	b.parts = b.previous
	b.processedSets = b.previousSets
	b.previous = nil
	b.previousSets = 0
	b.undoable = false
	return nil
}

// ProcessedSets returns the main assembly sets the to-order quantities of the current
// part list were computed with, or false if the parts carry no processed quantities
func (b *BOM) ProcessedSets() (Quantity, bool) {
	return b.processedSets, b.processedSets > 0
}

// IsProcessed reports whether the current part list is a committed processing result
func (b *BOM) IsProcessed() bool {
	return b.undoable
}

// FirstImportedFile returns the name of the first file parts were imported from
func (b *BOM) FirstImportedFile() (string, bool) {
	for _, source := range b.ImportSources {
		if source.Type == "file" {
			return source.Name, true
		}
	}
	return "", false
}
