// Package config provides configuration management for the dslyrics CLI.
//
// Settings merge from four layers, lowest to highest precedence:
// built-in defaults, a dslyrics.yaml file, DSLYRICS_* environment
// variables, and command-line flags. The same Config feeds the CLI
// commands and the HTTP service, so every surface lints and grades
// with identical settings.
package config

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output" validate:"omitempty,oneof=auto text markdown json"`
	HistoryPath  string      `koanf:"history_path"`
	Serve        ServeConfig `koanf:"serve"`
	Lint         LintConfig  `koanf:"lint"`
}

// ServeConfig holds options for the HTTP analysis service.
type ServeConfig struct {
	Addr string `koanf:"addr" validate:"omitempty,hostname_port"`
}

// LintConfig holds rule settings: which rules to skip, severity
// overrides by rule ID, per-rule options, and the worker count for
// concurrent rule evaluation.
type LintConfig struct {
	Disabled []string                  `koanf:"disabled"`
	Severity map[string]string         `koanf:"severity" validate:"dive,oneof=error warning info hint"`
	Rules    map[string]map[string]any `koanf:"rules"`
	Workers  int                       `koanf:"workers" validate:"gte=0,lte=64"`
}

// Default configuration values.
const (
	DefaultHistoryFile = ".dslyrics/history.db"
	DefaultServeAddr   = ":8080"
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLintWorkers = 4
)

// BuildLintConfig converts the file-level lint settings into the
// analyzer's configuration.
func (c *Config) BuildLintConfig() (*lint.Config, error) {
	lc := lint.NewConfig()
	lc.Workers = c.Lint.Workers
	for _, id := range c.Lint.Disabled {
		lc.Disable(id)
	}
	for id, name := range c.Lint.Severity {
		sev, ok := lint.ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("invalid severity %q for rule %s", name, id)
		}
		lc.SetSeverity(id, sev)
	}
	for id, opts := range c.Lint.Rules {
		lc.SetRuleOptions(id, opts)
	}
	return lc, nil
}
