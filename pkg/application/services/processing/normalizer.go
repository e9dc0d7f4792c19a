package processing

import "github.com/vsinha/prettybom/pkg/domain/services"

// normalizeNames canonicalizes the configured columns of every part that carries them
func (p *Processor) normalizeNames() error {
	columns := services.CleanKeywords(p.settings.NormalizedColumns)
	for _, part := range p.working {
		for _, column := range columns {
			if value, ok := part.Attribute(column); ok {
				part.SetAttribute(column, services.NormalizeName(value))
			}
		}
	}
	return nil
}
