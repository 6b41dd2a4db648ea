package config

import (
	"fmt"
	"os"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Pipeline driver names.
const (
	DriverExec   = "exec"
	DriverReplay = "replay"
)

// NotifyOn values.
const (
	NotifyOnFailure = "failure"
	NotifyOnAlways  = "always"
)

type Config struct {
	// Artifact names the pipeline job is expected to produce. The harness
	// reports them; it never creates or checks them.
	Database   string `yaml:"database" validate:"required"`
	LogFile    string `yaml:"log_file" validate:"required"`
	ReportFile string `yaml:"report_file" validate:"required"`

	Hostname string             `yaml:"hostname"`
	Pipeline Pipeline           `yaml:"pipeline"`
	Trigger  Trigger            `yaml:"trigger"`
	Globals  map[string]any     `yaml:"globals"`
	Services map[string]Service `yaml:"services"`
	Notify   []NotifyTarget     `yaml:"notify"`
	NotifyOn string             `yaml:"notify_on" validate:"omitempty,oneof=failure always"`
	Template string             `yaml:"template"`
}

// Pipeline selects and configures the driver that produces a run result.
type Pipeline struct {
	Driver     string         `yaml:"driver" validate:"required,oneof=exec replay"`
	Command    string         `yaml:"command" validate:"required_if=Driver exec"`
	Args       map[string]any `yaml:"args"`
	Timeout    string         `yaml:"timeout"`
	ResultFile string         `yaml:"result_file" validate:"required_if=Driver replay"`
}

type Trigger struct {
	Interval string `yaml:"interval"`
	Cron     string `yaml:"cron"`
	Watch    string `yaml:"watch"`
}

type Service struct {
	URL    string            `yaml:"url"`
	Params map[string]string `yaml:"params"`
}

// NotifyTarget handles a plain service name string or an object with overrides.
type NotifyTarget struct {
	Service  string            `yaml:"service"`
	Template string            `yaml:"template"`
	Params   map[string]string `yaml:"params"`
}

func (n *NotifyTarget) UnmarshalYAML(unmarshal func(any) error) error {
	var str string
	if err := unmarshal(&str); err == nil {
		n.Service = str
		return nil
	}

	type notifyAlias NotifyTarget
	var obj notifyAlias
	if err := unmarshal(&obj); err != nil {
		return fmt.Errorf("notify: must be a service name string or an object with service/template/params")
	}
	*n = NotifyTarget(obj)
	return nil
}

// Default returns the configuration used when no config file is present:
// the conventional artifact names, the exec driver, and failure-only
// notifications.
func Default() *Config {
	return &Config{
		Database:   "retail_dwh.db",
		LogFile:    "pipeline_execution.log",
		ReportFile: "pipeline_execution_report.csv",
		Pipeline: Pipeline{
			Driver:  DriverExec,
			Command: "./run_pipeline",
			Timeout: "30m",
		},
		NotifyOn: NotifyOnFailure,
		Template: "{{result.status_emoji}} pipeline {{result.status}} on {{globals.hostname}}",
	}
}

// Load reads a config file on top of the defaults, expanding ${VAR}
// references first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints plus the parts validator tags cannot
// express: duration fields and notify references.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Pipeline.Timeout != "" {
		if _, err := time.ParseDuration(c.Pipeline.Timeout); err != nil {
			return fmt.Errorf("pipeline.timeout: %w", err)
		}
	}
	if c.Trigger.Interval != "" {
		if _, err := time.ParseDuration(c.Trigger.Interval); err != nil {
			return fmt.Errorf("trigger.interval: %w", err)
		}
	}

	for _, n := range c.Notify {
		if _, ok := c.Services[n.Service]; !ok {
			return fmt.Errorf("notify target references unknown service %q", n.Service)
		}
	}

	return nil
}
