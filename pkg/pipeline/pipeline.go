// Package pipeline runs the full analysis pass over a lyric sheet:
// parse, lint, grade. It is the single entry point shared by the CLI
// commands and the HTTP service, so every surface reports identical
// results for the same source.
package pipeline

import (
	"context"

	"github.com/Jayk56/dslyrics/pkg/grade"
	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/parser"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// Stats summarizes the size of an analyzed song.
type Stats struct {
	Sections int `json:"sections"`
	Lines    int `json:"lines"`
	Words    int `json:"words"`
}

// Report is the result of analyzing one lyric sheet. Parse failures
// never produce a Report; they surface as errors from Analyze.
type Report struct {
	// ID is assigned when the report is stored or served, not here.
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Valid    bool           `json:"valid"`
	Findings []lint.Finding `json:"findings"`
	Grade    grade.Grade    `json:"grade"`
	Stats    Stats          `json:"stats"`
	Song     *song.Song     `json:"-"`
}

// Analyzer owns a configured lint pass. It is safe for concurrent use.
type Analyzer struct {
	lint *lint.Analyzer
}

// New creates an Analyzer over the global rule registry. A nil config
// runs every rule at its default severity.
func New(cfg *lint.Config) *Analyzer {
	return &Analyzer{lint: lint.NewAnalyzer(cfg)}
}

// Analyze parses and analyzes src. The name is carried through to the
// report for display; it is usually a file path or request-supplied
// title. A parse failure returns a *parser.ParseError and no report.
func (a *Analyzer) Analyze(name, src string) (*Report, error) {
	s, err := parser.ParseSong(src)
	if err != nil {
		return nil, err
	}
	return a.report(name, s, a.lint.Analyze(s)), nil
}

// AnalyzeContext is Analyze with rule evaluation bounded by ctx and
// the configured worker count.
func (a *Analyzer) AnalyzeContext(ctx context.Context, name, src string) (*Report, error) {
	s, err := parser.ParseSong(src)
	if err != nil {
		return nil, err
	}
	findings, err := a.lint.AnalyzeContext(ctx, s)
	if err != nil {
		return nil, err
	}
	return a.report(name, s, findings), nil
}

func (a *Analyzer) report(name string, s *song.Song, findings []lint.Finding) *Report {
	if findings == nil {
		// Keep JSON output as [] rather than null.
		findings = []lint.Finding{}
	}
	return &Report{
		Name:     name,
		Valid:    !lint.HasErrors(findings),
		Findings: findings,
		Grade:    grade.Score(s, findings),
		Stats: Stats{
			Sections: len(s.Sections),
			Lines:    s.LineCount(),
			Words:    s.WordCount(),
		},
		Song: s,
	}
}
