package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Jayk56/dslyrics/internal/cli/config"
	"github.com/Jayk56/dslyrics/internal/cli/output"
)

// exampleSheet is the starter song written by init --example. It
// parses clean and grades with no error findings.
const exampleSheet = `title:"Validation Blues"
artist:"The Null Pointers"
tempo:72
genre:ballad
key:E
time_sig:4/4
lang:en
writers:"J. Kaye, R. Datta"
duration:190

VERSE[1]
Woke up this morning, my build was broken {rhyme:A, chord:E,A}
Seventeen warnings I'd never seen {rhyme:B}
Coffee's gone cold while I'm staring at tokens {rhyme:A}
Debugger's lying, if you know what I mean {rhyme:B, stress:x/x/x/x/}

CHORUS
I got the validation blues {rhyme:A, chord:E7,A7}
Every line I write, I lose {rhyme:A}
Nothing left for me to choose {rhyme:A}
Errors scrolling like the news {rhyme:A}

VERSE[2]
Grammar keeps changing, the parser's unsteady {rhyme:A}
Sections unnumbered and metadata gone {rhyme:B}
Fixed one error, found twenty already {rhyme:A}
I'll be chasing these findings from midnight till dawn {rhyme:B}

BRIDGE
Maybe the grade will be kind {chord:C#m,A}
Maybe the meter will rhyme {stress:x/x/x/}

CHORUS
I got the validation blues {rhyme:A, chord:E7,A7}
Every line I write, I lose {rhyme:A}
Nothing left for me to choose {rhyme:A}
Errors scrolling like the news {rhyme:A}
`

// configFileTemplate mirrors the keys LoadConfig reads from
// dslyrics.yaml.
type configFileTemplate struct {
	Output      string        `yaml:"output"`
	HistoryPath string        `yaml:"history_path"`
	Serve       serveTemplate `yaml:"serve"`
	Lint        lintTemplate  `yaml:"lint"`
}

type serveTemplate struct {
	Addr string `yaml:"addr"`
}

type lintTemplate struct {
	Workers  int               `yaml:"workers"`
	Disabled []string          `yaml:"disabled"`
	Severity map[string]string `yaml:"severity"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a dslyrics project",
		Long: `Initialize a dslyrics project with a default configuration file.

This creates:
  - dslyrics.yaml with the default settings spelled out

Use --example to also write a starter lyric sheet that parses clean
and grades without error findings.`,
		Example: `  # Initialize in current directory
  dslyrics init

  # Initialize with a starter song
  dslyrics init --example

  # Initialize in a new directory
  dslyrics init my-songs --example

  # Force overwrite existing config
  dslyrics init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Also write a starter lyric sheet")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, example bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := filepath.Join(dir, "dslyrics.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("dslyrics.yaml already exists. Use --force to overwrite")
	}

	raw, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.StatusLine("dslyrics.yaml", "success", "")

	if example {
		songPath := filepath.Join(dir, "validation_blues.lyr")
		if err := os.WriteFile(songPath, []byte(exampleSheet), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", songPath, err)
		}
		r.StatusLine("validation_blues.lyr", "success", "")
	}

	r.Println("")
	r.Success("dslyrics project initialized!")
	r.Println("")
	r.Println("Next steps:")
	if example {
		r.Println("  1. Run 'dslyrics analyze validation_blues.lyr' for a full report")
	} else {
		r.Println("  1. Write a lyric sheet, or rerun with --example for a starter")
	}
	r.Println("  2. Run 'dslyrics rules' to browse the lint catalog")
	r.Println("  3. Run 'dslyrics repl' to sketch lines interactively")

	return nil
}

// defaultConfigYAML renders the default settings as a commented
// dslyrics.yaml.
func defaultConfigYAML() ([]byte, error) {
	tmpl := configFileTemplate{
		Output:      config.DefaultOutput,
		HistoryPath: config.DefaultHistoryFile,
	}
	tmpl.Serve.Addr = config.DefaultServeAddr
	tmpl.Lint.Workers = config.DefaultLintWorkers
	tmpl.Lint.Disabled = []string{}
	tmpl.Lint.Severity = map[string]string{}

	raw, err := yaml.Marshal(tmpl)
	if err != nil {
		return nil, fmt.Errorf("failed to render default config: %w", err)
	}

	header := `# dslyrics configuration.
# Environment variables (DSLYRICS_*) and command-line flags override
# anything set here.
`
	return append([]byte(header), raw...), nil
}
