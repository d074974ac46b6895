package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Jayk56/dslyrics/internal/cli/output"
	"github.com/Jayk56/dslyrics/pkg/parser"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file...>",
		Short: "Parse lyric sheets without linting or grading",
		Long: `Parse one or more lyric sheets and report syntax errors.

check is the fast gate for scripts and editors: it runs the parser only,
skipping lint rules and grading. The exit code is 1 when any sheet fails
to parse.`,
		Example: `  # Gate a single sheet
  dslyrics check song.lyr

  # Gate a whole directory
  dslyrics check drafts/*.lyr`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCheck,
	}
}

// checkResult is the JSON row for one checked sheet.
type checkResult struct {
	Path     string `json:"path"`
	OK       bool   `json:"ok"`
	Sections int    `json:"sections,omitempty"`
	Lines    int    `json:"lines,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	jsonMode := r.EffectiveMode() == output.ModeJSON

	results := make([]checkResult, 0, len(args))
	failed := 0

	for _, path := range args {
		res := checkResult{Path: path}
		content, err := os.ReadFile(path)
		if err == nil {
			parsed, perr := parser.ParseSong(string(content))
			if perr != nil {
				err = perr
			} else {
				res.OK = true
				res.Sections = len(parsed.Sections)
				res.Lines = parsed.LineCount()
			}
		}
		if err != nil {
			res.Error = err.Error()
			failed++
			if !jsonMode {
				r.StatusLine(path, "error", err.Error())
			}
		} else if !jsonMode {
			r.StatusLine(path, "success", fmt.Sprintf("%d sections, %d lines", res.Sections, res.Lines))
		}
		results = append(results, res)
	}

	if jsonMode {
		if err := r.JSON(results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sheets failed to parse", failed, len(args))
	}
	return nil
}
