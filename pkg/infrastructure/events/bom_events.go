package events

import "time"

const (
	BOMCreatedEvent          = "bom.created"
	BOMImportedEvent         = "bom.imported"
	BOMSettingsUpdatedEvent  = "bom.settings.updated"
	ProcessingStartedEvent   = "bom.processing.started"
	ValidationFailedEvent    = "bom.validation.failed"
	ProcessingCompletedEvent = "bom.processing.completed"
	ProcessingFailedEvent    = "bom.processing.failed"
	ProcessingUndoneEvent    = "bom.processing.undone"
	BOMResetEvent            = "bom.reset"
	BOMDeletedEvent          = "bom.deleted"
)

type BOMCreated struct {
	MainAssemblyName string `json:"main_assembly_name"`
}

type BOMImported struct {
	Source     string   `json:"source"`
	Columns    []string `json:"columns"`
	Parts      int      `json:"parts"`
	SlicedRows int      `json:"sliced_rows"`
}

type ProcessingStarted struct {
	Parts int `json:"parts"`
}

type ValidationFailed struct {
	RunID         string         `json:"run_id"`
	InvalidCounts map[string]int `json:"invalid_counts"`
	Messages      []string       `json:"messages"`
}

type ProcessingCompleted struct {
	RunID       string         `json:"run_id"`
	Parts       int            `json:"parts"`
	PartsByType map[string]int `json:"parts_by_type"`
	Delimiter   string         `json:"delimiter"`
	Duration    time.Duration  `json:"duration"`
}

type ProcessingFailed struct {
	RunID string `json:"run_id"`
	Error string `json:"error"`
}

type ProcessingUndone struct {
	Parts int `json:"parts"`
}
