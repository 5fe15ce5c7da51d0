package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// GridPath is a single .hcl file or a directory tree of .hcl files.
	GridPath string
	// ReportDir receives the report.html and the per-run log files.
	ReportDir string

	LogFormat string
	LogLevel  string
	// Workers bounds how many runs execute concurrently.
	Workers int
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "taskgrid-report"
	}
	return &cfg, nil
}
