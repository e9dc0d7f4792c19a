package repositories

import (
	"errors"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

// ErrBOMNotFound is returned for an unknown BOM id
var ErrBOMNotFound = errors.New("bill of materials not found")

// BOMRepository manages the bills of materials of one process
type BOMRepository interface {
	// CreateBOM stores a new empty BOM and assigns its id
	CreateBOM(mainAssemblyName string) (*entities.BOM, error)
	GetBOM(id string) (*entities.BOM, error)
	ListBOMs() ([]*entities.BOM, error)
	DeleteBOM(id string) error
	// ResetBOM replaces the BOM with a clean one keeping the same id
	ResetBOM(id string) (*entities.BOM, error)
	CountBOMs() int

	// WithBOM runs fn while holding the BOM's lock. Calls for the same BOM are serialized;
	// different BOMs do not block each other.
	WithBOM(id string, fn func(bom *entities.BOM) error) error
}
