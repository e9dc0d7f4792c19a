package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/application/dto"
	"github.com/vsinha/prettybom/pkg/application/services/processing"
	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/repositories"
	domainservices "github.com/vsinha/prettybom/pkg/domain/services"
	pkgerrors "github.com/vsinha/prettybom/pkg/errors"
	"github.com/vsinha/prettybom/pkg/infrastructure/config"
	"github.com/vsinha/prettybom/pkg/infrastructure/events"
	"github.com/vsinha/prettybom/pkg/infrastructure/metrics"
	"github.com/vsinha/prettybom/pkg/infrastructure/repositories/csv"
)

// BOMService is the application facade over BOM storage, processing, lifecycle events and metrics
type BOMService struct {
	repo       repositories.BOMRepository
	eventStore events.EventStore
	metrics    *metrics.Recorder
	logger     *zap.Logger
	fasteners  *domainservices.FastenerLibrary
}

// NewBOMService wires the service and subscribes the recorder to completed and undone runs.
// A nil logger discards output, a nil recorder is replaced by one on a private registry and
// a nil fastener library falls back to the built-in one.
func NewBOMService(
	repo repositories.BOMRepository,
	eventStore events.EventStore,
	recorder *metrics.Recorder,
	logger *zap.Logger,
	fasteners *domainservices.FastenerLibrary,
) *BOMService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	if fasteners == nil {
		fasteners = domainservices.DefaultFastenerLibrary()
	}
	s := &BOMService{
		repo:       repo,
		eventStore: eventStore,
		metrics:    recorder,
		logger:     logger,
		fasteners:  fasteners,
	}
	subscribeMetrics(eventStore, recorder, logger)
	return s
}

// Metrics returns the recorder the service reports to
func (s *BOMService) Metrics() *metrics.Recorder {
	return s.metrics
}

func (s *BOMService) publish(bomID, eventType string, data any) {
	if err := s.eventStore.AppendEvent(bomID, events.NewEvent(eventType, bomID, data)); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event", eventType), zap.String("bom", bomID), zap.Error(err))
	}
}

// CreateBOM creates an empty BOM for the named main assembly
func (s *BOMService) CreateBOM(ctx context.Context, mainAssemblyName string) (*entities.BOM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bom, err := s.repo.CreateBOM(mainAssemblyName)
	if err != nil {
		return nil, err
	}

	s.publish(bom.ID, events.BOMCreatedEvent, events.BOMCreated{MainAssemblyName: mainAssemblyName})
	s.metrics.SetBOMsActive(s.repo.CountBOMs())
	s.logger.Info("bom created", zap.String("bom", bom.ID))
	return bom, nil
}

// Import adds imported rows to a BOM as parts
func (s *BOMService) Import(ctx context.Context, bomID string, imported *csv.ImportResult) (*dto.ImportSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var summary *dto.ImportSummary
	err := s.repo.WithBOM(bomID, func(bom *entities.BOM) error {
		imported.ImportTo(bom)
		summary = &dto.ImportSummary{
			BOMID:      bom.ID,
			Columns:    bom.ImportedColumns,
			Parts:      bom.PartCount(),
			SlicedRows: imported.SlicedRows,
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordImport("failed", 0)
		return nil, err
	}

	s.metrics.RecordImport("ok", imported.SlicedRows)
	s.publish(bomID, events.BOMImportedEvent, events.BOMImported{
		Source:     imported.Source.Name,
		Columns:    imported.Columns,
		Parts:      len(imported.Rows),
		SlicedRows: imported.SlicedRows,
	})
	s.logger.Info("part list imported",
		zap.String("bom", bomID),
		zap.String("source", imported.Source.Name),
		zap.Int("parts", len(imported.Rows)),
		zap.Int("sliced_rows", imported.SlicedRows))
	return summary, nil
}

// ApplyProfile replaces the processing settings of a BOM
func (s *BOMService) ApplyProfile(ctx context.Context, bomID string, profile *config.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	err := s.repo.WithBOM(bomID, func(bom *entities.BOM) error {
		return profile.Apply(bom)
	})
	if err != nil {
		return err
	}

	s.publish(bomID, events.BOMSettingsUpdatedEvent, profile)
	return nil
}

// Process runs the processing pipeline over a BOM and commits the result
func (s *BOMService) Process(ctx context.Context, bomID string) (*dto.ProcessingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var output *dto.ProcessingResult
	err := s.repo.WithBOM(bomID, func(bom *entities.BOM) error {
		s.publish(bomID, events.ProcessingStartedEvent, events.ProcessingStarted{Parts: bom.PartCount()})

		director := processing.NewDirector(s.logger.With(zap.String("bom", bomID)))
		result, err := director.Process(bom, s.fasteners)
		if err != nil {
			s.recordFailure(bomID, result, err)
			return err
		}

		output = &dto.ProcessingResult{
			BOMID:       bomID,
			RunID:       result.RunID,
			Parts:       len(result.Parts),
			Delimiter:   result.Delimiter,
			Duration:    result.Duration,
			PartsByType: dto.CountByType(result.Parts),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	partsByType := make(map[string]int, len(output.PartsByType))
	for partType, count := range output.PartsByType {
		partsByType[string(partType)] = count
	}
	s.publish(bomID, events.ProcessingCompletedEvent, events.ProcessingCompleted{
		RunID:       output.RunID,
		Parts:       output.Parts,
		PartsByType: partsByType,
		Delimiter:   output.Delimiter,
		Duration:    output.Duration,
	})
	return output, nil
}

func (s *BOMService) recordFailure(bomID string, result *processing.Result, err error) {
	var validationErr *processing.ValidationError
	switch {
	case errors.As(err, &validationErr):
		report := validationErr.Report
		counts := make(map[string]int)
		for category, count := range report.InvalidCounts() {
			counts[string(category)] = count
			s.metrics.RecordInvalidParts(string(category), count)
		}
		s.metrics.RecordRun(metrics.OutcomeValidationFailed, result.Duration)
		s.publish(bomID, events.ValidationFailedEvent, events.ValidationFailed{
			RunID:         result.RunID,
			InvalidCounts: counts,
			Messages:      report.Messages(),
		})
	case IsConfigurationError(err):
		s.metrics.RecordRun(metrics.OutcomeConfigError, result.Duration)
		s.publish(bomID, events.ProcessingFailedEvent, events.ProcessingFailed{RunID: result.RunID, Error: err.Error()})
	default:
		s.metrics.RecordRun(metrics.OutcomeDefect, result.Duration)
		s.publish(bomID, events.ProcessingFailedEvent, events.ProcessingFailed{RunID: result.RunID, Error: err.Error()})
		s.logger.Error("processing defect",
			zap.String("bom", bomID),
			zap.Error(err),
			zap.String("stack", pkgerrors.ErrorWithStackTrace(err)))
	}
}

// IsConfigurationError reports whether err means the BOM settings are incomplete or invalid
func IsConfigurationError(err error) bool {
	return errors.Is(err, entities.ErrColumnNotSet) || errors.Is(err, entities.ErrInvalidMainAssemblySets)
}

// Undo restores the part list from before the last processing run
func (s *BOMService) Undo(ctx context.Context, bomID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var parts int
	err := s.repo.WithBOM(bomID, func(bom *entities.BOM) error {
		if err := bom.UndoProcessing(); err != nil {
			return err
		}
		parts = bom.PartCount()
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(bomID, events.ProcessingUndoneEvent, events.ProcessingUndone{Parts: parts})
	return nil
}

// View runs fn with the BOM locked. fn must not keep references to the parts.
func (s *BOMService) View(ctx context.Context, bomID string, fn func(bom *entities.BOM) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.repo.WithBOM(bomID, fn)
}

// ListBOMs returns every BOM in creation order
func (s *BOMService) ListBOMs(ctx context.Context) ([]*entities.BOM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.ListBOMs()
}

// History returns the lifecycle events of a BOM
func (s *BOMService) History(ctx context.Context, bomID string) ([]events.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBOM(bomID); err != nil {
		return nil, err
	}
	return s.eventStore.ReadEvents(bomID, 1)
}

// ResetBOM replaces a BOM with a clean one under the same id
func (s *BOMService) ResetBOM(ctx context.Context, bomID string) (*entities.BOM, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bom, err := s.repo.ResetBOM(bomID)
	if err != nil {
		return nil, err
	}
	s.publish(bomID, events.BOMResetEvent, nil)
	return bom, nil
}

// DeleteBOM removes a BOM and its event stream
func (s *BOMService) DeleteBOM(ctx context.Context, bomID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.repo.DeleteBOM(bomID); err != nil {
		return err
	}
	if err := s.eventStore.DeleteStream(bomID); err != nil {
		s.logger.Warn("failed to delete event stream", zap.String("bom", bomID), zap.Error(err))
	}
	s.metrics.SetBOMsActive(s.repo.CountBOMs())
	s.logger.Info("bom deleted", zap.String("bom", bomID))
	return nil
}
