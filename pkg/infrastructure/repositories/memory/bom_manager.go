package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/repositories"
)

type bomEntry struct {
	mutex sync.Mutex
	bom   *entities.BOM
	seq   int
}

// BOMManager keeps bills of materials in memory, one lock per BOM
type BOMManager struct {
	mutex   sync.RWMutex
	entries map[string]*bomEntry
	seq     int
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMManager)(nil)

// NewBOMManager creates an empty BOM manager
func NewBOMManager() *BOMManager {
	return &BOMManager{entries: make(map[string]*bomEntry)}
}

// CreateBOM stores a new empty BOM under a fresh uuid
func (m *BOMManager) CreateBOM(mainAssemblyName string) (*entities.BOM, error) {
	bom := entities.NewBOM(mainAssemblyName)
	bom.ID = uuid.NewString()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.seq++
	m.entries[bom.ID] = &bomEntry{bom: bom, seq: m.seq}
	return bom, nil
}

func (m *BOMManager) entry(id string) (*bomEntry, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	e, exists := m.entries[id]
	if !exists {
		return nil, fmt.Errorf("bom %s: %w", id, repositories.ErrBOMNotFound)
	}
	return e, nil
}

// GetBOM returns the BOM with the given id
func (m *BOMManager) GetBOM(id string) (*entities.BOM, error) {
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.bom, nil
}

// ListBOMs returns every BOM in creation order
func (m *BOMManager) ListBOMs() ([]*entities.BOM, error) {
	m.mutex.RLock()
	entries := make([]*bomEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	m.mutex.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	boms := make([]*entities.BOM, 0, len(entries))
	for _, e := range entries {
		e.mutex.Lock()
		boms = append(boms, e.bom)
		e.mutex.Unlock()
	}
	return boms, nil
}

// DeleteBOM removes a BOM
func (m *BOMManager) DeleteBOM(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.entries[id]; !exists {
		return fmt.Errorf("bom %s: %w", id, repositories.ErrBOMNotFound)
	}
	delete(m.entries, id)
	return nil
}

// ResetBOM replaces the BOM with a clean default one under the same id
func (m *BOMManager) ResetBOM(id string) (*entities.BOM, error) {
	e, err := m.entry(id)
	if err != nil {
		return nil, err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()

	clean := entities.NewBOM("")
	clean.ID = id
	e.bom = clean
	return clean, nil
}

// CountBOMs returns the number of stored BOMs
func (m *BOMManager) CountBOMs() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.entries)
}

// WithBOM runs fn while holding the lock of one BOM
func (m *BOMManager) WithBOM(id string, fn func(bom *entities.BOM) error) error {
	e, err := m.entry(id)
	if err != nil {
		return err
	}

	e.mutex.Lock()
	defer e.mutex.Unlock()
	return fn(e.bom)
}
