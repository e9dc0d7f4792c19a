package entities

import (
	"errors"
	"testing"
)

func TestBOM_CreateAndDeletePart(t *testing.T) {
	bom := NewBOM("M-2022-00 Layout")

	part := bom.CreatePart(map[string]string{"Pos.": "100", "Qty.": "1", "Part number": "M-2022-100"})
	if bom.PartCount() != 1 {
		t.Fatalf("Expected 1 part, got %d", bom.PartCount())
	}
	if part.Value("Part number") != "M-2022-100" {
		t.Errorf("Expected part number M-2022-100, got %s", part.Value("Part number"))
	}

	if err := bom.DeletePart(part); err != nil {
		t.Fatalf("Expected delete to succeed: %v", err)
	}
	if bom.PartCount() != 0 {
		t.Errorf("Expected empty BOM after delete, got %d parts", bom.PartCount())
	}

	if err := bom.DeletePart(NewPart(nil)); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("Expected ErrPartNotFound, got %v", err)
	}
}

func TestBOM_DeleteAllParts(t *testing.T) {
	bom := NewBOM("")
	for i := 0; i < 4; i++ {
		bom.CreatePart(map[string]string{})
	}
	bom.DeleteAllParts()
	if bom.PartCount() != 0 {
		t.Errorf("Expected 0 parts, got %d", bom.PartCount())
	}
}

func TestBOM_SetMainAssemblySets(t *testing.T) {
	bom := NewBOM("")

	for _, sample := range []string{"1", " 1 ", "1\n"} {
		if err := bom.SetMainAssemblySets(sample); err != nil {
			t.Errorf("Expected %q to be accepted: %v", sample, err)
		}
		if bom.Settings.MainAssemblySets != 1 {
			t.Errorf("Expected sets 1 for %q, got %d", sample, bom.Settings.MainAssemblySets)
		}
	}

	for _, sample := range []string{"1.", "lorem", "", "0", "-3"} {
		err := bom.SetMainAssemblySets(sample)
		if !errors.Is(err, ErrInvalidMainAssemblySets) {
			t.Errorf("Expected ErrInvalidMainAssemblySets for %q, got %v", sample, err)
		}
	}
}

func TestBOM_CommitAndUndo(t *testing.T) {
	bom := NewBOM("")
	original := bom.CreatePart(map[string]string{"Pos.": "1"})

	if err := bom.UndoProcessing(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("Expected ErrNothingToUndo, got %v", err)
	}

	processed := NewPart(map[string]string{"Pos.": "1"})
	bom.CommitProcessing([]*Part{processed})
	if !bom.IsProcessed() || bom.Parts()[0] != processed {
		t.Fatal("Expected processed part list to be committed")
	}

	if err := bom.UndoProcessing(); err != nil {
		t.Fatalf("Expected undo to succeed: %v", err)
	}
	if bom.Parts()[0] != original {
		t.Error("Expected undo to restore the original part instance")
	}
	if bom.IsProcessed() {
		t.Error("Expected BOM to be unprocessed after undo")
	}
}

func TestBOM_ProcessedSets(t *testing.T) {
	bom := NewBOM("")
	if _, ok := bom.ProcessedSets(); ok {
		t.Fatal("Expected no processed sets before processing")
	}

	bom.Settings.MainAssemblySets = 2
	bom.CommitProcessing(nil)
	bom.Settings.MainAssemblySets = 5
	bom.CommitProcessing(nil)
	bom.Settings.MainAssemblySets = 7

	if sets, ok := bom.ProcessedSets(); !ok || sets != 5 {
		t.Errorf("Expected processed sets 5, got %d", sets)
	}

	if err := bom.UndoProcessing(); err != nil {
		t.Fatalf("Expected undo to succeed: %v", err)
	}
	if sets, ok := bom.ProcessedSets(); !ok || sets != 2 {
		t.Errorf("Expected undo to restore processed sets 2, got %d", sets)
	}
}

func TestPart_Value(t *testing.T) {
	sets := Quantity(2)
	toOrder := Quantity(4)
	part := NewPart(map[string]string{"Pos.": "1-7", "type": "imported wins"})
	part.Sets = &sets
	part.ToOrder = &toOrder
	part.Hierarchy = &Hierarchy{ParentIndex: 0, Ancestors: []string{"1"}, ChildPositions: []string{}}
	part.Classification = &Classification{IsFastener: true}

	testCases := []struct {
		column   string
		expected string
	}{
		{"Pos.", "1-7"},
		{"type", "imported wins"},
		{ColumnSets, "2"},
		{ColumnToOrder, "4"},
		{ColumnParent, "1"},
		{ColumnChild, ""},
		{ColumnIsFastener, "true"},
		{ColumnIsJunk, "false"},
		{"missing", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.column, func(t *testing.T) {
			if got := part.Value(tc.column); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}

	if NewPart(nil).Value(ColumnSets) != "" {
		t.Error("Expected unset sets to render empty")
	}
}

func TestColumnMapping_Require(t *testing.T) {
	mapping := ColumnMapping{Position: "Pos.", Quantity: "Qty."}

	if err := mapping.Require(RolePosition, RoleQuantity); err != nil {
		t.Fatalf("Expected bound roles to pass: %v", err)
	}

	err := mapping.Require(RolePosition, RoleNumber)
	if !errors.Is(err, ErrColumnNotSet) {
		t.Fatalf("Expected ErrColumnNotSet, got %v", err)
	}
	if err.Error() != `the name of the "Part number" column must be set: column name is not set` {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
