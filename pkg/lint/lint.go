// Package lint provides the rule engine for lyric sheet analysis.
//
// Rules are self-registering: each rule file declares a RuleDef and adds
// it to the global registry from init, and the rules/all package pulls
// every group in with blank imports. An Analyzer applies the registered
// rules to a parsed song in registration order, honoring per-rule
// configuration for disabling, severity overrides, and options.
//
// Rules never mutate the song and never see each other's findings, so
// the analyzer is free to evaluate them concurrently. Findings locate
// problems two ways: a source position for display, and a stable
// section/line ordinal pair that stays meaningful after the source text
// is gone.
package lint

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/core"
	"github.com/Jayk56/dslyrics/pkg/token"
)

// Severity aliases the shared severity scale so rule files and
// configuration can stay within this package's vocabulary.
type Severity = core.Severity

const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
	SeverityHint    = core.SeverityHint
)

// ParseSeverity parses a severity name such as "warning".
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}

// Finding is a single rule violation.
type Finding struct {
	RuleID   string         `json:"rule"`
	RuleName string         `json:"name,omitempty"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"location"`

	// Section and Line are 1-based ordinals into the analyzed song,
	// zero when the finding is not tied to a section or line.
	Section int `json:"section,omitempty"`
	Line    int `json:"line,omitempty"`
}

// Path describes where in the song the finding points, for human
// readable output.
func (f Finding) Path() string {
	switch {
	case f.Section > 0 && f.Line > 0:
		return fmt.Sprintf("section %d, line %d", f.Section, f.Line)
	case f.Section > 0:
		return fmt.Sprintf("section %d", f.Section)
	default:
		return "song"
	}
}

// HasErrors reports whether any finding carries error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CountBySeverity tallies findings per severity.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := make(map[Severity]int)
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}
