// Package runner orchestrates one pipeline execution: banner → build → run →
// report. It owns no ETL logic; that belongs to the pipeline driver.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/medalrun/medalrun/internal/config"
	"github.com/medalrun/medalrun/internal/pipeline"
	"github.com/medalrun/medalrun/internal/report"
)

// BuildFunc constructs the pipeline from config. Injected so tests can run
// the Runner against doubles instead of real drivers.
type BuildFunc func(cfg *config.Config) (pipeline.Pipeline, error)

// Runner executes the pipeline once and renders the outcome.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *report.Renderer
}

// New creates a Runner with the given config, logger, and renderer.
func New(cfg *config.Config, logger *slog.Logger, renderer *report.Renderer) *Runner {
	return &Runner{cfg: cfg, logger: logger, renderer: renderer}
}

// Execute runs the full sequence and returns the result so the caller can
// pick an exit code. The report is always rendered: construction errors,
// run faults, and panics all surface as a failure result, never as a
// missing report.
func (r *Runner) Execute(ctx context.Context, build BuildFunc) pipeline.Result {
	r.renderer.Banner()

	res := r.run(ctx, build)

	r.renderer.Result(res, report.Artifacts{
		Database:   r.cfg.Database,
		LogFile:    r.cfg.LogFile,
		ReportFile: r.cfg.ReportFile,
	})
	r.renderer.Divider()

	return res
}

func (r *Runner) run(ctx context.Context, build BuildFunc) (res pipeline.Result) {
	log := r.logger.With("driver", r.cfg.Pipeline.Driver)

	defer func() {
		if p := recover(); p != nil {
			log.Error("pipeline panicked", "panic", p)
			res = pipeline.Fail(pipeline.StageRun, fmt.Sprintf("pipeline panicked: %v", p))
		}
	}()

	log.Info("building pipeline")
	p, err := build(r.cfg)
	if err != nil {
		log.Error("build failed", "error", err)
		return pipeline.Fail(pipeline.StageBuild, err.Error())
	}

	log.Info("running pipeline")
	start := time.Now()
	res = p.Run(ctx)
	duration := time.Since(start)

	if res.OK() {
		log.Info("pipeline completed",
			"duration", duration,
			"bronze", res.Stats.Bronze,
			"silver", res.Stats.Silver,
			"gold", res.Stats.GoldTotal())
	} else {
		log.Error("pipeline failed",
			"duration", duration,
			"stage", res.Failure.Stage,
			"error", res.Failure.Message)
	}

	return res
}
