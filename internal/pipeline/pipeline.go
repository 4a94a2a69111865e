package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bdougie/streampulse/internal/analyzer"
	"github.com/bdougie/streampulse/internal/models"
	"github.com/bdougie/streampulse/internal/reports"
	"github.com/bdougie/streampulse/internal/storage"
)

// Source produces the ordered frame sequence for one run.
type Source interface {
	Run(ctx context.Context) ([]string, error)
}

// Runner drives one run end to end: capture the frames, analyze them one at
// a time in capture order, dump each record, then aggregate the reports.
type Runner struct {
	source   Source
	analyzer *analyzer.Analyzer
	store    storage.Store
	logger   *slog.Logger
	duration time.Duration
}

func NewRunner(source Source, a *analyzer.Analyzer, store storage.Store, logger *slog.Logger, duration time.Duration) *Runner {
	return &Runner{
		source:   source,
		analyzer: a,
		store:    store,
		logger:   logger,
		duration: duration,
	}
}

// Run executes the pipeline. The only terminal outcome without reports is an
// empty capture set; per-frame analysis failures degrade to fallback records
// and never abort the run.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := r.logger.With("run_id", runID)

	logger.Info("starting capture session")
	frames, err := r.source.Run(ctx)
	if err != nil {
		return fmt.Errorf("capture session failed: %v", err)
	}

	if len(frames) == 0 {
		logger.Warn("no frames captured, no reports will be generated")
		return nil
	}
	logger.Info("capture session complete", "frames", len(frames))

	records := make([]models.FrameRecord, 0, len(frames))
	for i, frame := range frames {
		logger.Info("analyzing frame", "frame", i+1, "total", len(frames))
		rec := r.analyzer.Analyze(ctx, frame)

		if err := r.store.AddRecord(ctx, rec); err != nil {
			logger.Warn("failed to persist frame record", "frame", frame, "error", err)
		}
		records = append(records, rec)
	}

	if err := r.store.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame records: %v", err)
	}

	for _, table := range reports.Build(records, r.duration) {
		if err := r.store.WriteTable(table); err != nil {
			return fmt.Errorf("failed to write report '%s': %v", table.Name, err)
		}
		logger.Info("report written", "report", table.Name, "rows", len(table.Rows))
	}

	logger.Info("run complete", "frames_analyzed", len(records))
	return nil
}
