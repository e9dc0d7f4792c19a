package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/infrastructure/events"
	"github.com/vsinha/prettybom/pkg/infrastructure/metrics"
)

// subscribeMetrics records completed and undone runs as they are published
func subscribeMetrics(store events.EventStore, recorder *metrics.Recorder, logger *zap.Logger) {
	handler := events.HandlerFunc(func(event events.Event) error {
		switch data := event.Data().(type) {
		case events.ProcessingCompleted:
			recorder.RecordRun(metrics.OutcomeCompleted, data.Duration)
			for partType, count := range data.PartsByType {
				recorder.RecordParts(partType, count)
			}
		case events.ProcessingUndone:
			recorder.RecordUndo()
		default:
			return fmt.Errorf("unexpected %s event payload %T", event.Type(), data)
		}
		return nil
	})

	err := store.Subscribe([]string{events.ProcessingCompletedEvent, events.ProcessingUndoneEvent}, handler)
	if err != nil {
		logger.Warn("failed to subscribe metrics to processing events", zap.Error(err))
	}
}
