package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/medalrun/medalrun/internal/config"
	"github.com/medalrun/medalrun/internal/pipeline"
	"github.com/medalrun/medalrun/internal/report"
	"github.com/medalrun/medalrun/internal/runner"
	"github.com/medalrun/medalrun/internal/trigger"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scheduler daemon",
	Long:  "Runs the pipeline on the configured trigger: a fixed interval, a cron schedule, or file drops in a watched directory. Stops on SIGINT/SIGTERM.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := setupLogger()

		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		renderer := report.NewRenderer(cmd.OutOrStdout(), colorEnabled())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = trigger.Start(ctx, cfg.Trigger, logger, func(kind string) {
			r := runner.New(cfg, logger, renderer)
			res := r.Execute(ctx, buildWithTrigger(kind))
			if nerr := notifyResult(cfg, logger, res, false); nerr != nil {
				logger.Error("notification failed", "error", nerr)
			}
		})
		if errors.Is(err, context.Canceled) {
			logger.Info("daemon stopped")
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}

// buildWithTrigger builds the configured pipeline and stamps the trigger kind
// on the exec driver so jobs can tell scheduled runs from manual ones.
func buildWithTrigger(kind string) runner.BuildFunc {
	return func(c *config.Config) (pipeline.Pipeline, error) {
		p, err := pipeline.New(c)
		if err != nil {
			return nil, err
		}
		if e, ok := p.(*pipeline.Exec); ok {
			e.TriggerType = kind
		}
		return p, nil
	}
}
