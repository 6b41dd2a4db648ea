package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/medalrun/medalrun/internal/config"
)

// Exec runs the ETL job as an external executable and reads the result
// document it prints on stdout. The job receives its settings through
// PIPELINE_* environment variables, so it can be written in any language.
type Exec struct {
	Command string
	Args    map[string]any
	Timeout time.Duration

	// TriggerType is surfaced to the job as PIPELINE_TRIGGER: "manual" for
	// one-shot runs, or the trigger kind when fired by the daemon.
	TriggerType string

	database   string
	logFile    string
	reportFile string
}

// NewExec builds the exec driver from config.
func NewExec(cfg *config.Config) (*Exec, error) {
	var timeout time.Duration
	if cfg.Pipeline.Timeout != "" {
		d, err := time.ParseDuration(cfg.Pipeline.Timeout)
		if err != nil {
			return nil, fmt.Errorf("pipeline.timeout: %w", err)
		}
		timeout = d
	}

	return &Exec{
		Command:     cfg.Pipeline.Command,
		Args:        cfg.Pipeline.Args,
		Timeout:     timeout,
		TriggerType: "manual",
		database:    cfg.Database,
		logFile:     cfg.LogFile,
		reportFile:  cfg.ReportFile,
	}, nil
}

// Run executes the job and decodes its stdout. A non-zero exit code is not a
// failure by itself: the job is expected to report its own failures in the
// result document. Timeouts and unparseable output are.
func (e *Exec) Run(ctx context.Context) Result {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.Command)
	cmd.Env = append(os.Environ(), e.buildEnv()...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return Fail(StageExec, fmt.Sprintf("pipeline timed out after %s", e.Timeout))
		}
		if _, ok := err.(*exec.ExitError); !ok {
			return Fail(StageExec, fmt.Sprintf("executing pipeline: %v", err))
		}
		// ExitError: fall through and read whatever the job reported.
	}

	result, derr := DecodeResult(stdout.Bytes())
	if derr != nil {
		msg := derr.Error()
		if s := strings.TrimSpace(stderr.String()); s != "" {
			msg = fmt.Sprintf("%s (stderr: %s)", msg, s)
		}
		return Fail(StageParse, msg)
	}

	return result
}

func (e *Exec) buildEnv() []string {
	env := []string{
		"PIPELINE_TRIGGER=" + e.TriggerType,
		"PIPELINE_DATABASE=" + e.database,
		"PIPELINE_LOG_FILE=" + e.logFile,
		"PIPELINE_REPORT_FILE=" + e.reportFile,
	}

	for k, v := range e.Args {
		envKey := "PIPELINE_ARG_" + strings.ToUpper(k)
		env = append(env, envKey+"="+fmt.Sprint(v))
	}

	return env
}
