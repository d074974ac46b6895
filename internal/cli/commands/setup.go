package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jayk56/dslyrics/internal/cli/config"
	"github.com/Jayk56/dslyrics/internal/cli/output"
	"github.com/Jayk56/dslyrics/internal/history"
	"github.com/Jayk56/dslyrics/pkg/pipeline"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's config and
// output settings.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// newPipeline builds an analysis pipeline from the lint section of the
// configuration.
func (c *CommandContext) newPipeline() (*pipeline.Analyzer, error) {
	lintCfg, err := c.Cfg.BuildLintConfig()
	if err != nil {
		return nil, err
	}
	return pipeline.New(lintCfg), nil
}

// openHistory opens the report history store at the configured path.
// Callers must close the returned store.
func (c *CommandContext) openHistory(ctx context.Context) (*history.Store, error) {
	return history.Open(ctx, c.Cfg.HistoryPath)
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	historyPath := getEnvOrDefault("DSLYRICS_HISTORY_PATH", config.DefaultHistoryFile)
	serveAddr := getEnvOrDefault("DSLYRICS_SERVE_ADDR", config.DefaultServeAddr)
	verbose := os.Getenv("DSLYRICS_VERBOSE") == "true"
	outputFormat := getEnvOrDefault("DSLYRICS_OUTPUT", config.DefaultOutput)

	return &config.Config{
		Verbose:      verbose,
		OutputFormat: outputFormat,
		HistoryPath:  historyPath,
		Serve:        config.ServeConfig{Addr: serveAddr},
		Lint:         config.LintConfig{Workers: config.DefaultLintWorkers},
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
