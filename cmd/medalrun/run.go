package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/medalrun/medalrun/internal/config"
	"github.com/medalrun/medalrun/internal/notify"
	"github.com/medalrun/medalrun/internal/pipeline"
	"github.com/medalrun/medalrun/internal/report"
	"github.com/medalrun/medalrun/internal/runner"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline once",
	Long:  "Runs the configured pipeline once and prints the execution report. Use --result-file to replay a recorded result document instead of running the job, and --dry-run to validate notification targets without sending.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		resultFile, _ := cmd.Flags().GetString("result-file")
		logger := setupLogger()

		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}
		if resultFile != "" {
			cfg.Pipeline.Driver = config.DriverReplay
			cfg.Pipeline.ResultFile = resultFile
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		renderer := report.NewRenderer(cmd.OutOrStdout(), colorEnabled())
		r := runner.New(cfg, logger, renderer)

		res := r.Execute(context.Background(), func(c *config.Config) (pipeline.Pipeline, error) {
			return pipeline.New(c)
		})

		if err := notifyResult(cfg, logger, res, dryRun); err != nil {
			logger.Error("notification failed", "error", err)
		}

		if !res.OK() {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "validate notification targets without sending")
	runCmd.Flags().String("result-file", "", "replay a recorded result document instead of running the job")
	rootCmd.AddCommand(runCmd)
}

// notifyResult delivers completion notifications per config. Success runs
// only notify when notify_on is "always".
func notifyResult(cfg *config.Config, logger *slog.Logger, res pipeline.Result, dryRun bool) error {
	if len(cfg.Notify) == 0 {
		return nil
	}
	if res.OK() && cfg.NotifyOn != config.NotifyOnAlways {
		return nil
	}

	data := notify.BuildTemplateData(cfg.Globals, cfg.Hostname, res)
	targets, err := notify.ResolveTargets(mapNotifyRefs(cfg.Notify), mapServiceDefs(cfg.Services), cfg.Template, data)
	if err != nil {
		return err
	}

	for _, t := range targets {
		if dryRun {
			if err := notify.Validate(t); err != nil {
				return err
			}
			logger.Info("would notify (dry-run)", "service", t.ServiceName, "message", t.Message)
			continue
		}
		if err := notify.Send(t); err != nil {
			return err
		}
		logger.Info("notification sent", "service", t.ServiceName)
	}
	return nil
}

func mapNotifyRefs(targets []config.NotifyTarget) []notify.NotifyRef {
	refs := make([]notify.NotifyRef, len(targets))
	for i, t := range targets {
		refs[i] = notify.NotifyRef{
			ServiceName: t.Service,
			Template:    t.Template,
			Params:      t.Params,
		}
	}
	return refs
}

func mapServiceDefs(services map[string]config.Service) map[string]notify.ServiceDef {
	defs := make(map[string]notify.ServiceDef, len(services))
	for name, svc := range services {
		defs[name] = notify.ServiceDef{
			URL:    svc.URL,
			Params: svc.Params,
		}
	}
	return defs
}
