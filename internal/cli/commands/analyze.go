package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Jayk56/dslyrics/internal/cli/output"
	"github.com/Jayk56/dslyrics/pkg/lint"
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules" // register lint rules
	"github.com/Jayk56/dslyrics/pkg/parser"
	"github.com/Jayk56/dslyrics/pkg/pipeline"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	JSON  bool // Emit reports as JSON
	Save  bool // Persist reports to the history store
	Quiet bool // One status line per sheet instead of the full report
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file...>",
		Short: "Parse, lint, and grade lyric sheets",
		Long: `Run the full analysis pass over one or more lyric sheets.

Each sheet is parsed, checked against the registered lint rules, and
graded on structure, prosody, originality, and commerciality. Rules can
be configured in dslyrics.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Analyze a sheet
  dslyrics analyze song.lyr

  # Analyze several sheets and keep the reports
  dslyrics analyze drafts/*.lyr --save

  # Machine-readable report
  dslyrics analyze song.lyr --json

  # One line per sheet
  dslyrics analyze drafts/*.lyr --quiet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit reports as JSON")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save reports to the history store")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Only print a status line per sheet")

	return cmd
}

// AnalyzeFileError describes a sheet that could not be analyzed.
type AnalyzeFileError struct {
	Path   string `json:"path"`
	Error  string `json:"error"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// AnalyzeJSONOutput is the JSON envelope when analyzing several sheets.
type AnalyzeJSONOutput struct {
	Reports []*pipeline.Report `json:"reports"`
	Errors  []AnalyzeFileError `json:"errors,omitempty"`
}

// historySaver is the slice of the history store analyze needs.
type historySaver interface {
	Save(ctx context.Context, rep *pipeline.Report) (string, error)
	Close() error
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if opts.JSON {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeJSON)
	}

	p, err := cmdCtx.newPipeline()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var store historySaver
	if opts.Save {
		s, err := cmdCtx.openHistory(ctx)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	jsonMode := r.EffectiveMode() == output.ModeJSON

	var (
		reports  []*pipeline.Report
		failures []AnalyzeFileError
		invalid  int
	)

	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			failures = append(failures, fileError(path, err))
			if !jsonMode {
				r.StatusLine(path, "error", err.Error())
			}
			continue
		}

		rep, err := p.AnalyzeContext(ctx, path, string(content))
		if err != nil {
			failures = append(failures, fileError(path, err))
			if !jsonMode {
				r.StatusLine(path, "error", err.Error())
			}
			continue
		}

		if store != nil {
			id, err := store.Save(ctx, rep)
			if err != nil {
				return fmt.Errorf("failed to save report for %s: %w", path, err)
			}
			rep.ID = id
		}

		if !rep.Valid {
			invalid++
		}
		reports = append(reports, rep)

		if !jsonMode {
			renderReport(r, path, rep, opts.Quiet)
		}
	}

	if jsonMode {
		if len(args) == 1 && len(reports) == 1 {
			// A single sheet emits its report bare.
			if err := r.JSON(reports[0]); err != nil {
				return err
			}
		} else if err := r.JSON(AnalyzeJSONOutput{Reports: reports, Errors: failures}); err != nil {
			return err
		}
	} else if !opts.Quiet {
		renderAnalyzeSummary(r, reports, len(failures))
	}

	if failed := len(failures) + invalid; failed > 0 {
		return fmt.Errorf("%d of %d sheets failed analysis", failed, len(args))
	}
	return nil
}

func fileError(path string, err error) AnalyzeFileError {
	fe := AnalyzeFileError{Path: path, Error: err.Error()}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		fe.Line = pe.Pos.Line
		fe.Column = pe.Pos.Column
	}
	return fe
}

// renderReport prints one sheet's findings, grade, and stats.
func renderReport(r *output.Renderer, path string, rep *pipeline.Report, quiet bool) {
	styles := r.Styles()

	if quiet {
		status := "success"
		if !rep.Valid {
			status = "error"
		}
		r.StatusLine(path, status, fmt.Sprintf("grade %d, %d findings", rep.Grade.Overall, len(rep.Findings)))
		return
	}

	r.Println(styles.FilePath.Render(path))
	if rep.Song != nil && rep.Song.Title() != "" {
		r.Println(styles.Muted.Render("  " + rep.Song.Title()))
	}

	for _, f := range rep.Findings {
		loc := fmt.Sprintf("%d:%d", f.Pos.Line, f.Pos.Column)
		if f.Pos.Line == 0 {
			loc = "-"
		}
		r.Printf("  %s  %s  %s  %s\n",
			styles.Muted.Render(fmt.Sprintf("%-5s", loc)),
			severityLabel(r, f.Severity),
			styles.Bold.Render(f.RuleID),
			f.Message,
		)
	}
	if len(rep.Findings) == 0 {
		r.Success("No findings")
	}

	g := rep.Grade
	r.Printf("  %s %s  %s\n",
		styles.Bold.Render("Grade:"),
		gradeStyle(r, g.Overall).Render(fmt.Sprintf("%d/100", g.Overall)),
		styles.Muted.Render(fmt.Sprintf("structure %d, prosody %d, originality %d, commerciality %d",
			g.Breakdown.Structure, g.Breakdown.Prosody, g.Breakdown.Originality, g.Breakdown.Commerciality)),
	)
	for _, line := range g.Feedback {
		r.Println(styles.Muted.Render("  " + line))
	}
	r.Println(styles.Muted.Render(fmt.Sprintf("  %d sections, %d lines, %d words",
		rep.Stats.Sections, rep.Stats.Lines, rep.Stats.Words)))
	if rep.ID != "" {
		r.Println(styles.Muted.Render("  saved as " + rep.ID))
	}
	r.Println("")
}

func renderAnalyzeSummary(r *output.Renderer, reports []*pipeline.Report, failedFiles int) {
	total := 0
	counts := make(map[lint.Severity]int)
	for _, rep := range reports {
		total += len(rep.Findings)
		for sev, n := range lint.CountBySeverity(rep.Findings) {
			counts[sev] += n
		}
	}

	parts := []string{fmt.Sprintf("%d findings", total)}
	if n := counts[lint.SeverityError]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", n))
	}
	if n := counts[lint.SeverityWarning]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", n))
	}
	if n := counts[lint.SeverityInfo]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d info", n))
	}
	if n := counts[lint.SeverityHint]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", n))
	}

	summary := fmt.Sprintf("Summary: %s in %d sheets", strings.Join(parts, ", "), len(reports))
	if failedFiles > 0 {
		summary += fmt.Sprintf(" (%d failed to parse)", failedFiles)
	}
	r.Println(summary)
}

// severityLabel returns a fixed-width styled severity word.
func severityLabel(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

// gradeStyle picks a style for an overall score.
func gradeStyle(r *output.Renderer, overall int) lipgloss.Style {
	switch {
	case overall >= 80:
		return r.Styles().Success
	case overall >= 60:
		return r.Styles().Warning
	default:
		return r.Styles().Error
	}
}
