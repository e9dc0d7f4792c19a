package processing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/prettybom/pkg/domain/entities"
	"github.com/vsinha/prettybom/pkg/domain/services"
	"github.com/vsinha/prettybom/pkg/errors"
)

// State is a processing run state
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateValidating
	StateAborted
	StateProcessing
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInitializing:
		return "initializing"
	case StateValidating:
		return "validating"
	case StateAborted:
		return "aborted"
	case StateProcessing:
		return "processing"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes one processing run
type Result struct {
	RunID     string
	State     State
	Report    *ValidationReport
	Parts     []*entities.Part
	Delimiter string
	Duration  time.Duration
}

// Director runs the processing stages in a fixed sequence over a working copy of the parts.
// A Director is not safe for concurrent use; create one per run or serialize calls.
type Director struct {
	logger *zap.Logger
	state  State
}

// NewDirector creates an idle director. A nil logger discards output.
func NewDirector(logger *zap.Logger) *Director {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Director{logger: logger, state: StateIdle}
}

// State returns the state the last run ended in
func (d *Director) State() State {
	return d.state
}

func (d *Director) transition(runID string, to State) {
	d.logger.Debug("processing state transition",
		zap.String("run_id", runID),
		zap.Stringer("from", d.state),
		zap.Stringer("to", to))
	d.state = to
}

// Process runs every stage over the BOM's parts with the BOM's settings and commits the
// result on success. On any error the BOM is left untouched.
func (d *Director) Process(bom *entities.BOM, fasteners *services.FastenerLibrary) (*Result, error) {
	result, err := d.Run(bom.Parts(), Options{Settings: bom.Settings, Fasteners: fasteners})
	if err != nil {
		return result, err
	}

	bom.CommitProcessing(result.Parts)
	d.logger.Info("processing committed",
		zap.String("bom", bom.ID),
		zap.String("run_id", result.RunID),
		zap.Int("parts", len(result.Parts)),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// Run processes a copy of parts and returns the processed collection in tree order.
// The given parts are never mutated.
func (d *Director) Run(parts []*entities.Part, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	d.state = StateIdle

	if err := opts.Validate(); err != nil {
		return result, err
	}

	d.transition(result.RunID, StateInitializing)
	p := newProcessor(parts, opts.Settings, opts.fasteners())

	d.transition(result.RunID, StateValidating)
	report := Validate(p.initial, opts.Settings.Columns)
	result.Report = report
	if err := report.Err(); err != nil {
		d.abort(result, start)
		d.logger.Warn("part list validation failed",
			zap.String("run_id", result.RunID),
			zap.Int("invalid_quantity", len(report.InvalidQuantityParts)),
			zap.Int("invalid_position", len(report.InvalidPositionParts)),
			zap.Int("duplicate_position", len(report.DuplicatePositionParts)))
		return result, err
	}
	p.delimiter = report.Delimiter
	result.Delimiter = report.Delimiter

	d.transition(result.RunID, StateProcessing)
	stages := []struct {
		name string
		run  func() error
	}{
		{"hierarchy", p.resolveHierarchy},
		{"classification", p.classify},
		{"quantities", p.propagateQuantities},
		{"normalization", p.normalizeNames},
		{"tree order", p.sequence},
	}
	for _, stage := range stages {
		if err := stage.run(); err != nil {
			d.abort(result, start)
			d.logger.Error("processing stage failed",
				zap.String("run_id", result.RunID),
				zap.String("stage", stage.name),
				zap.Error(err),
				zap.String("stack", errors.ErrorWithStackTrace(err)))
			return result, fmt.Errorf("%s stage: %w", stage.name, err)
		}
	}

	d.transition(result.RunID, StateFinalized)
	result.State = StateFinalized
	result.Parts = p.Working()
	result.Duration = time.Since(start)
	return result, nil
}

func (d *Director) abort(result *Result, start time.Time) {
	d.transition(result.RunID, StateAborted)
	result.State = StateAborted
	result.Duration = time.Since(start)
}
