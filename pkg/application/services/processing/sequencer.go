package processing

import (
	"sort"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/errors"
)

var typePriority = map[entities.PartType]int{
	entities.PartTypeProduction: 0,
	entities.PartTypePurchased:  1,
	entities.PartTypeFastener:   2,
	entities.PartTypeJunk:       3,
}

func priorityOf(t entities.PartType) int {
	if priority, ok := typePriority[t]; ok {
		return priority
	}
	return len(typePriority)
}

// sequence reorders the working collection into tree order: top-level parts by number,
// each followed by its subtree with children sorted by type priority and then number.
// Hierarchy indices are remapped to the new order.
func (p *Processor) sequence() error {
	cols := p.columns()
	n := len(p.working)

	byTypeThenNumber := func(indices []int) {
		sort.SliceStable(indices, func(a, b int) bool {
			pa, pb := p.working[indices[a]], p.working[indices[b]]
			if ra, rb := priorityOf(pa.Type), priorityOf(pb.Type); ra != rb {
				return ra < rb
			}
			return cols.NumberOf(pa) < cols.NumberOf(pb)
		})
	}

	roots := make([]int, 0, n)
	for i, part := range p.working {
		if part.Hierarchy.IsTopLevel() {
			roots = append(roots, i)
		}
	}
	sort.SliceStable(roots, func(a, b int) bool {
		return cols.NumberOf(p.working[roots[a]]) < cols.NumberOf(p.working[roots[b]])
	})

	order := make([]int, 0, n)
	var visit func(idx, generation int) error
	visit = func(idx, generation int) error {
		if generation > MaxGenerations {
			return errors.Errorf("position %q is generation %d, at most %d are supported: %w",
				cols.PositionOf(p.working[idx]), generation, MaxGenerations, ErrHierarchyTooDeep)
		}
		order = append(order, idx)

		children := append([]int(nil), p.working[idx].Hierarchy.Children...)
		byTypeThenNumber(children)
		for _, child := range children {
			if err := visit(child, generation+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := visit(root, 1); err != nil {
			return err
		}
	}

	if len(order) != n {
		return errors.Errorf("tree order placed %d of %d parts: %w", len(order), n, ErrHierarchyDefect)
	}

	newIndex := make([]int, n)
	for newIdx, oldIdx := range order {
		newIndex[oldIdx] = newIdx
	}

	sequenced := make([]*entities.Part, n)
	for newIdx, oldIdx := range order {
		part := p.working[oldIdx]
		h := part.Hierarchy
		if !h.IsTopLevel() {
			h.ParentIndex = newIndex[h.ParentIndex]
		}
		for i, child := range h.Children {
			h.Children[i] = newIndex[child]
		}
		sequenced[newIdx] = part
	}
	p.working = sequenced
	return nil
}
