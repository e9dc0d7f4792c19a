package processing

import (
	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
	"github.com/vsinha/prettybom/pkg/errors"
)

// resolveHierarchy derives parent, ancestors and children of every part. Lookups go
// against the initial snapshot; results are only assigned once the whole collection resolved.
func (p *Processor) resolveHierarchy() error {
	cols := p.columns()

	indexByPosition := make(map[string]int, len(p.initial))
	for i, part := range p.initial {
		indexByPosition[cols.PositionOf(part)] = i
	}

	hierarchies := make([]*entities.Hierarchy, len(p.initial))
	var defects *errors.MultiError

	for i, part := range p.initial {
		position := cols.PositionOf(part)
		parentPosition := services.ParentPosition(position, p.delimiter)

		h := &entities.Hierarchy{
			ParentIndex:    entities.NoParent,
			ParentPosition: parentPosition,
			Ancestors:      services.AncestorPositions(position, p.delimiter),
			Children:       []int{},
			ChildPositions: []string{},
		}
		if parentPosition != "" {
			parentIndex, ok := indexByPosition[parentPosition]
			if !ok {
				defects = defects.Append(&HierarchyDefectError{Position: position, ParentPosition: parentPosition})
			} else {
				h.ParentIndex = parentIndex
			}
		}
		hierarchies[i] = h
	}

	if err := defects.ErrorOrNil(); err != nil {
		return errors.WithStackTrace(err)
	}

	for i, h := range hierarchies {
		if h.IsTopLevel() {
			continue
		}
		parent := hierarchies[h.ParentIndex]
		parent.Children = append(parent.Children, i)
		parent.ChildPositions = append(parent.ChildPositions, cols.PositionOf(p.initial[i]))
	}

	for i, part := range p.working {
		h := hierarchies[i]
		part.Hierarchy = h
		if h.IsTopLevel() {
			part.ParentAssembly = p.settings.MainAssemblyName
		} else {
			part.ParentAssembly = cols.NumberOf(p.initial[h.ParentIndex])
		}
	}
	return nil
}
