package structure

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "ST03",
		Name:        "required-sections",
		Group:       "structure",
		Description: "Song must contain at least one verse and one chorus",
		Severity:    lint.SeverityError,
		Check:       checkRequiredSections,
		Rationale: "Verse and chorus are the load-bearing walls of the form. " +
			"Sheets without both are almost always incomplete drafts.",
		BadExample:  "title:Hookless\n\nVERSE\nAll verse, no payoff",
		GoodExample: "title:Complete\n\nVERSE\nSetup line\n\nCHORUS\nPayoff line",
		Fix:         "Add the missing VERSE or CHORUS section.",
	})
}

func checkRequiredSections(s *song.Song, _ map[string]any) []lint.Finding {
	var findings []lint.Finding
	for _, kind := range []song.SectionKind{song.Verse, song.Chorus} {
		if s.CountOf(kind) == 0 {
			findings = append(findings, lint.Finding{
				Message: fmt.Sprintf("song has no %s section", kind.Keyword()),
				Pos:     s.Span.Start,
			})
		}
	}
	return findings
}
