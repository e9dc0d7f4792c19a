package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordRun(t *testing.T) {
	recorder := NewRecorder()

	recorder.RecordRun(OutcomeCompleted, 20*time.Millisecond)
	recorder.RecordRun(OutcomeCompleted, 30*time.Millisecond)
	recorder.RecordRun(OutcomeValidationFailed, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.RunsTotal.WithLabelValues(OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.RunsTotal.WithLabelValues(OutcomeValidationFailed)))
	assert.Equal(t, 2, testutil.CollectAndCount(recorder.RunDuration))
}

func TestRecorder_PartsAndImports(t *testing.T) {
	recorder := NewRecorder()

	recorder.RecordParts("fastener", 3)
	recorder.RecordInvalidParts("invalid_quantity", 2)
	recorder.RecordInvalidParts("invalid_position", 0)
	recorder.RecordImport("ok", 4)
	recorder.SetBOMsActive(2)
	recorder.RecordUndo()

	assert.Equal(t, 3.0, testutil.ToFloat64(recorder.PartsProcessed.WithLabelValues("fastener")))
	assert.Equal(t, 1, testutil.CollectAndCount(recorder.InvalidParts))
	assert.Equal(t, 4.0, testutil.ToFloat64(recorder.SlicedRows))
	assert.Equal(t, 2.0, testutil.ToFloat64(recorder.BOMsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.UndoTotal))
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	first := NewRecorder()
	second := NewRecorder()
	first.RecordUndo()

	expected := `
# HELP prettybom_undo_total Total number of undone processing runs
# TYPE prettybom_undo_total counter
prettybom_undo_total 1
`
	require.NoError(t, testutil.GatherAndCompare(first.Registry(), strings.NewReader(expected), "prettybom_undo_total"))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.UndoTotal))
}
