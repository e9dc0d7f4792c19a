package memory

import (
	"errors"
	"sync"
	"testing"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/repositories"
)

func TestBOMManager_CreateAndCount(t *testing.T) {
	manager := NewBOMManager()

	for i := 0; i < 5; i++ {
		if _, err := manager.CreateBOM("Layout"); err != nil {
			t.Fatalf("Failed to create BOM: %v", err)
		}
	}

	if manager.CountBOMs() != 5 {
		t.Errorf("Expected 5 BOMs, got %d", manager.CountBOMs())
	}

	boms, err := manager.ListBOMs()
	if err != nil {
		t.Fatalf("Failed to list BOMs: %v", err)
	}
	seen := make(map[string]bool)
	for _, bom := range boms {
		if bom.ID == "" {
			t.Error("Expected every BOM to have an id")
		}
		if seen[bom.ID] {
			t.Errorf("Duplicate BOM id %s", bom.ID)
		}
		seen[bom.ID] = true
	}
}

func TestBOMManager_GetBOM(t *testing.T) {
	manager := NewBOMManager()
	created, _ := manager.CreateBOM("M-2022-00 Layout")

	bom, err := manager.GetBOM(created.ID)
	if err != nil {
		t.Fatalf("Failed to get BOM: %v", err)
	}
	if bom != created {
		t.Error("Expected the stored BOM instance")
	}
	if bom.Settings.MainAssemblyName != "M-2022-00 Layout" {
		t.Errorf("Expected main assembly name M-2022-00 Layout, got %s", bom.Settings.MainAssemblyName)
	}

	if _, err := manager.GetBOM("missing"); !errors.Is(err, repositories.ErrBOMNotFound) {
		t.Errorf("Expected ErrBOMNotFound, got %v", err)
	}
}

func TestBOMManager_DeleteBOM(t *testing.T) {
	manager := NewBOMManager()
	keep, _ := manager.CreateBOM("A")
	drop, _ := manager.CreateBOM("B")

	if err := manager.DeleteBOM(drop.ID); err != nil {
		t.Fatalf("Failed to delete BOM: %v", err)
	}
	if manager.CountBOMs() != 1 {
		t.Errorf("Expected 1 BOM, got %d", manager.CountBOMs())
	}
	if _, err := manager.GetBOM(keep.ID); err != nil {
		t.Errorf("Expected remaining BOM to be found: %v", err)
	}

	if err := manager.DeleteBOM(drop.ID); !errors.Is(err, repositories.ErrBOMNotFound) {
		t.Errorf("Expected ErrBOMNotFound deleting twice, got %v", err)
	}
}

func TestBOMManager_ResetBOM(t *testing.T) {
	manager := NewBOMManager()
	bom, _ := manager.CreateBOM("Layout")
	bom.Settings.ProductionPartKeywords = []string{"M-2022"}
	bom.CreatePart(map[string]string{"Pos.": "1"})

	clean, err := manager.ResetBOM(bom.ID)
	if err != nil {
		t.Fatalf("Failed to reset BOM: %v", err)
	}

	if clean.ID != bom.ID {
		t.Errorf("Expected id %s to be kept, got %s", bom.ID, clean.ID)
	}
	if clean.PartCount() != 0 {
		t.Errorf("Expected no parts, got %d", clean.PartCount())
	}
	if len(clean.Settings.ProductionPartKeywords) != 0 {
		t.Errorf("Expected default settings, got %v", clean.Settings.ProductionPartKeywords)
	}
	if clean.Settings.MainAssemblySets != entities.DefaultSettings().MainAssemblySets {
		t.Errorf("Expected default main assembly sets, got %d", clean.Settings.MainAssemblySets)
	}

	stored, _ := manager.GetBOM(bom.ID)
	if stored != clean {
		t.Error("Expected the clean BOM to replace the stored one")
	}

	if _, err := manager.ResetBOM("missing"); !errors.Is(err, repositories.ErrBOMNotFound) {
		t.Errorf("Expected ErrBOMNotFound, got %v", err)
	}
}

func TestBOMManager_WithBOMSerializes(t *testing.T) {
	manager := NewBOMManager()
	bom, _ := manager.CreateBOM("Layout")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = manager.WithBOM(bom.ID, func(b *entities.BOM) error {
				b.CreatePart(map[string]string{"Pos.": "1"})
				return nil
			})
		}()
	}
	wg.Wait()

	if bom.PartCount() != 50 {
		t.Errorf("Expected 50 parts, got %d", bom.PartCount())
	}

	sentinel := errors.New("stop")
	if err := manager.WithBOM(bom.ID, func(*entities.BOM) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("Expected callback error, got %v", err)
	}
}
