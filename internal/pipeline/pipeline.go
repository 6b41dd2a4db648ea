// Package pipeline defines the contract between the orchestration harness and
// the ETL job that does the actual bronze/silver/gold work. The job itself is
// external; this package knows how to invoke it and how to read its result.
package pipeline

import (
	"context"
	"fmt"

	"github.com/medalrun/medalrun/internal/config"
)

// Pipeline is one run of the ETL job. Run never returns an error: anything
// that goes wrong is encoded in the Result so the report path stays total.
type Pipeline interface {
	Run(ctx context.Context) Result
}

// Func adapts a plain function to the Pipeline interface.
type Func func(ctx context.Context) Result

func (f Func) Run(ctx context.Context) Result { return f(ctx) }

// New builds the pipeline selected by cfg.Pipeline.Driver.
func New(cfg *config.Config) (Pipeline, error) {
	switch cfg.Pipeline.Driver {
	case config.DriverExec:
		return NewExec(cfg)
	case config.DriverReplay:
		return NewReplay(cfg.Pipeline.ResultFile)
	default:
		return nil, fmt.Errorf("unknown pipeline driver %q", cfg.Pipeline.Driver)
	}
}
