package processing

import (
	"strings"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
)

// classify runs in two passes. The first evaluates the facts that only read the part
// itself; the second needs the parent's production flag and derives type and file type.
func (p *Processor) classify() error {
	cols := p.columns()
	productionKeywords := services.CleanKeywords(p.settings.ProductionPartKeywords)
	junkKeywords := services.CleanKeywords(p.settings.JunkPartKeywords)
	emptyFields := services.CleanKeywords(p.settings.JunkPartEmptyFields)

	for _, part := range p.working {
		c := &entities.Classification{}
		number := cols.NumberOf(part)

		c.IsProduction = len(productionKeywords) > 0 && services.ContainsAny(number, productionKeywords)
		c.IsFastener = p.fasteners.MatchesAny(attributeValues(part))
		c.IsPurchased = !c.IsProduction && !c.IsFastener
		c.IsJunkByKeywords = len(junkKeywords) > 0 &&
			(services.ContainsAny(cols.NameOf(part), junkKeywords) || services.ContainsAny(number, junkKeywords))
		c.IsJunkByEmptyFields = len(emptyFields) > 0 && allEmpty(part, emptyFields)

		part.Classification = c
	}

	for _, part := range p.working {
		c := part.Classification
		h := part.Hierarchy
		if p.settings.JunkForPurchasedNests && !h.IsTopLevel() {
			c.IsJunkByPurchasedPartNesting = !p.working[h.ParentIndex].Classification.IsProduction
		}
		c.IsJunk = c.IsJunkByKeywords || c.IsJunkByEmptyFields || c.IsJunkByPurchasedPartNesting

		part.Type = partType(c)
		if len(h.Children) > 0 && part.Type == entities.PartTypeProduction {
			part.FileType = entities.FileTypeAssembly
		} else {
			part.FileType = entities.FileTypePart
		}
	}
	return nil
}

// attributeValues returns the raw imported values; relationship fields are not attributes
func attributeValues(part *entities.Part) []string {
	values := make([]string, 0, len(part.Attributes))
	for _, value := range part.Attributes {
		values = append(values, value)
	}
	return values
}

func allEmpty(part *entities.Part, fields []string) bool {
	for _, field := range fields {
		value, _ := part.Attribute(field)
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func partType(c *entities.Classification) entities.PartType {
	switch {
	case c.IsJunk:
		return entities.PartTypeJunk
	case c.IsProduction:
		return entities.PartTypeProduction
	case c.IsFastener:
		return entities.PartTypeFastener
	case c.IsPurchased:
		return entities.PartTypePurchased
	default:
		return entities.PartTypeUnset
	}
}
