package dto

import (
	"time"

	"github.com/vsinha/prettybom/pkg/domain/entities"
)

// ProcessingResult summarizes a committed processing run
type ProcessingResult struct {
	BOMID       string                    `json:"bom_id"`
	RunID       string                    `json:"run_id"`
	Parts       int                       `json:"parts"`
	Delimiter   string                    `json:"delimiter"`
	Duration    time.Duration             `json:"duration"`
	PartsByType map[entities.PartType]int `json:"parts_by_type"`
}

// ImportSummary describes parts added to a BOM by one import
type ImportSummary struct {
	BOMID      string   `json:"id"`
	Columns    []string `json:"columns"`
	Parts      int      `json:"parts"`
	SlicedRows int      `json:"sliced_rows"`
}

// CountByType counts parts per type
func CountByType(parts []*entities.Part) map[entities.PartType]int {
	counts := make(map[entities.PartType]int)
	for _, part := range parts {
		counts[part.Type]++
	}
	return counts
}
