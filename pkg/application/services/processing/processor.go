package processing

import (
	"strconv"

	"github.com/huandu/go-clone"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
)

// Processor is created per processing run. It owns a read-only snapshot of the
// initial parts and the working collection every stage mutates.
type Processor struct {
	settings  entities.Settings
	fasteners *services.FastenerLibrary

	initial   []*entities.Part
	working   []*entities.Part
	delimiter string
}

func newProcessor(parts []*entities.Part, settings entities.Settings, fasteners *services.FastenerLibrary) *Processor {
	return &Processor{
		settings:  settings,
		fasteners: fasteners,
		initial:   clone.Clone(parts).([]*entities.Part),
		working:   clone.Clone(parts).([]*entities.Part),
	}
}

// Working returns the working collection in its current order
func (p *Processor) Working() []*entities.Part {
	return p.working
}

// Delimiter returns the collection-wide position delimiter found during validation
func (p *Processor) Delimiter() string {
	return p.delimiter
}

func (p *Processor) columns() entities.ColumnMapping {
	return p.settings.Columns
}

// parseQuantity accepts only plain non-negative decimal integers
func parseQuantity(value string) (entities.Quantity, error) {
	if value == "" {
		return 0, ErrInvalidQuantity
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, ErrInvalidQuantity
		}
	}
	quantity, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return entities.Quantity(quantity), nil
}
