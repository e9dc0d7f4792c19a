package processing

import (
	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/errors"
)

// propagateQuantities recomputes sets and to_order for every part from scratch.
// sets is the main assembly multiplier times every ancestor quantity.
func (p *Processor) propagateQuantities() error {
	cols := p.columns()

	quantities := make([]entities.Quantity, len(p.working))
	for i, part := range p.working {
		quantity, err := parseQuantity(cols.QuantityOf(part))
		if err != nil {
			return errors.WithStackTraceAndPrefix(err, "position %q", cols.PositionOf(part))
		}
		quantities[i] = quantity
	}

	sets := make([]entities.Quantity, len(p.working))
	toOrder := make([]entities.Quantity, len(p.working))
	for i, part := range p.working {
		multiplier := p.settings.MainAssemblySets
		for idx := part.Hierarchy.ParentIndex; idx != entities.NoParent; idx = p.working[idx].Hierarchy.ParentIndex {
			var err error
			if multiplier, err = multiply(multiplier, quantities[idx]); err != nil {
				return errors.WithStackTraceAndPrefix(err, "sets of position %q", cols.PositionOf(part))
			}
		}

		total, err := multiply(quantities[i], multiplier)
		if err != nil {
			return errors.WithStackTraceAndPrefix(err, "to order of position %q", cols.PositionOf(part))
		}
		sets[i] = multiplier
		toOrder[i] = total
	}

	for i, part := range p.working {
		part.Sets = &sets[i]
		part.ToOrder = &toOrder[i]
	}
	return nil
}
