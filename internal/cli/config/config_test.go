package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayk56/dslyrics/pkg/core"
)

// chdir moves into dir for the duration of the test so upward config
// search starts from a known place.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, filepath.Join(tmpDir, DefaultHistoryFile), cfg.HistoryPath)
	assert.Equal(t, DefaultServeAddr, cfg.Serve.Addr)
	assert.Equal(t, DefaultLintWorkers, cfg.Lint.Workers)
	assert.Empty(t, cfg.Lint.Disabled)
	assert.Equal(t, "", GetConfigFileUsed())
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "dslyrics.yaml")
	cfgContent := `verbose: true
output: markdown
history_path: var/history.db
serve:
  addr: "127.0.0.1:9000"
lint:
  disabled:
    - ST05
  severity:
    ST06: error
  rules:
    ST02:
      min_sections: 3
  workers: 8
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgContent), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(tmpDir, "var/history.db"), cfg.HistoryPath)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.Equal(t, []string{"ST05"}, cfg.Lint.Disabled)
	assert.Equal(t, "error", cfg.Lint.Severity["ST06"])
	assert.Equal(t, 8, cfg.Lint.Workers)
	assert.Equal(t, cfgPath, GetConfigFileUsed())

	opts, ok := cfg.Lint.Rules["ST02"]
	require.True(t, ok)
	assert.EqualValues(t, 3, opts["min_sections"])
}

func TestLoadConfig_FoundByUpwardSearch(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgContent := "output: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "dslyrics.yaml"), []byte(cfgContent), 0600))

	nested := filepath.Join(tmpDir, "songs", "drafts")
	require.NoError(t, os.MkdirAll(nested, 0750))
	chdir(t, nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	// Relative paths anchor to the directory the config was found in.
	assert.Equal(t, filepath.Join(tmpDir, DefaultHistoryFile), cfg.HistoryPath)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "dslyrics.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: markdown\n"), 0600))

	require.NoError(t, os.Setenv("DSLYRICS_OUTPUT", "json"))
	defer func() { _ = os.Unsetenv("DSLYRICS_OUTPUT") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	require.NoError(t, os.Setenv("DSLYRICS_OUTPUT", "json"))
	defer func() { _ = os.Unsetenv("DSLYRICS_OUTPUT") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	require.NoError(t, flags.Set("output", "text"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat)
}

func TestLoadConfig_UnsetFlagFallsThrough(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	require.NoError(t, os.Setenv("DSLYRICS_OUTPUT", "markdown"))
	defer func() { _ = os.Unsetenv("DSLYRICS_OUTPUT") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", "", "output format")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.OutputFormat)
}

func TestLoadConfig_HistoryFlagMapsToHistoryPath(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("history", "", "history database path")
	require.NoError(t, flags.Set("history", "elsewhere/h.db"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "elsewhere/h.db"), cfg.HistoryPath)
}

func TestLoadConfig_DisabledFromEnvList(t *testing.T) {
	ResetConfig()
	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	require.NoError(t, os.Setenv("DSLYRICS_LINT_DISABLED", "ST05,MU01"))
	defer func() { _ = os.Unsetenv("DSLYRICS_LINT_DISABLED") }()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"ST05", "MU01"}, cfg.Lint.Disabled)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad output format", "output: csv\n"},
		{"bad serve addr", "serve:\n  addr: not-an-addr\n"},
		{"bad severity", "lint:\n  severity:\n    ST01: fatal\n"},
		{"workers too high", "lint:\n  workers: 200\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			tmpDir := t.TempDir()
			cfgPath := filepath.Join(tmpDir, "dslyrics.yaml")
			require.NoError(t, os.WriteFile(cfgPath, []byte(tt.content), 0600))

			_, err := LoadConfig(cfgPath, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestBuildLintConfig(t *testing.T) {
	cfg := &Config{
		Lint: LintConfig{
			Disabled: []string{"ST05"},
			Severity: map[string]string{"ST06": "error"},
			Rules:    map[string]map[string]any{"ST02": {"min_sections": 3}},
			Workers:  2,
		},
	}

	lc, err := cfg.BuildLintConfig()
	require.NoError(t, err)

	assert.True(t, lc.IsDisabled("ST05"))
	assert.False(t, lc.IsDisabled("ST01"))
	assert.Equal(t, core.SeverityError, lc.Severity("ST06", core.SeverityWarning))
	assert.Equal(t, 2, lc.Workers)
	assert.EqualValues(t, 3, lc.Options("ST02")["min_sections"])
}

func TestBuildLintConfig_BadSeverity(t *testing.T) {
	cfg := &Config{
		Lint: LintConfig{Severity: map[string]string{"ST01": "fatal"}},
	}

	_, err := cfg.BuildLintConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid severity "fatal"`)
}

func TestGetCurrentConfig(t *testing.T) {
	ResetConfig()
	assert.Nil(t, GetCurrentConfig())

	tmpDir := t.TempDir()
	chdir(t, tmpDir)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())

	ResetConfig()
	assert.Nil(t, GetCurrentConfig())
}
