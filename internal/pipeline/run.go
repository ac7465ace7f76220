package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resume-extractor/internal/common"
	"github.com/joseph-ayodele/resume-extractor/internal/export"
	"github.com/joseph-ayodele/resume-extractor/internal/metrics"
	"github.com/joseph-ayodele/resume-extractor/internal/repository"
)

// Failure stages reported to metrics.
const (
	StageSource   = "source"
	StageValidate = "validate"
	StageSink     = "sink"
)

// Runner drives one CLI run: process, report, write, then record history
// and metrics. Runs and Metrics are optional.
type Runner struct {
	Logger    *slog.Logger
	Processor *Processor
	Sink      export.Sink
	Runs      repository.RunRepository
	Metrics   *metrics.Recorder
}

func NewRunner(logger *slog.Logger, proc *Processor, sink export.Sink, runs repository.RunRepository, rec *metrics.Recorder) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger, Processor: proc, Sink: sink, Runs: runs, Metrics: rec}
}

// Run extracts input, hands the result to report (if non-nil) and writes
// the record to output. The result is returned even when the write fails.
func (r *Runner) Run(ctx context.Context, input, output string, report func(Result)) (Result, error) {
	start := time.Now()
	runID := uuid.New()
	ctx = common.WithRunID(ctx, runID.String())

	if r.Runs != nil {
		if _, err := r.Runs.Start(ctx, runID, input, output); err != nil {
			r.Logger.Warn("runner.history.start_failed", "run_id", runID, "err", err)
		}
	}

	res, err := r.Processor.ProcessFile(ctx, input)
	res.RunID = runID
	if err != nil {
		stage := StageValidate
		if common.IsSourceUnavailable(err) {
			stage = StageSource
		}
		r.finish(ctx, res, start, stage, err)
		return res, err
	}

	if report != nil {
		report(res)
	}

	if err := r.Sink.Write(ctx, res.Record, output); err != nil {
		r.finish(ctx, res, start, StageSink, err)
		return res, err
	}

	r.finish(ctx, res, start, "", nil)
	r.Logger.Info("runner.run.ok", "run_id", runID, "output", output, "elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

func (r *Runner) finish(ctx context.Context, res Result, start time.Time, stage string, runErr error) {
	if r.Runs != nil {
		var err error
		if runErr != nil {
			err = r.Runs.FinishFailure(ctx, res.RunID, runErr.Error())
		} else {
			var recJSON []byte
			recJSON, err = res.Record.MarshalJSON()
			if err == nil {
				err = r.Runs.FinishSuccess(ctx, res.RunID, string(res.NameSource), recJSON)
			}
		}
		if err != nil {
			r.Logger.Warn("runner.history.finish_failed", "run_id", res.RunID, "err", err)
		}
	}

	if r.Metrics != nil {
		stats := metrics.RunStats{
			Success:  runErr == nil,
			Stage:    stage,
			Duration: time.Since(start),
			Pages:    res.Pages,
		}
		// A record exists once extraction succeeded, even if the write failed.
		if stage == "" || stage == StageSink {
			stats.Fields = make(map[string]bool)
			for _, f := range res.Record.Fields() {
				stats.Fields[f.Key] = !f.Value.IsEmpty()
			}
		}
		r.Metrics.Observe(stats)
	}
}
