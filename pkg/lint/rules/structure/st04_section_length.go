package structure

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// lengthBounds holds the inclusive line-count range per section kind.
// Kinds absent from the table are unconstrained.
var lengthBounds = map[song.SectionKind][2]int{
	song.Verse:     {4, 8},
	song.Chorus:    {2, 6},
	song.Bridge:    {2, 8},
	song.PreChorus: {2, 4},
}

func init() {
	lint.Register(lint.RuleDef{
		ID:          "ST04",
		Name:        "section-length",
		Group:       "structure",
		Description: "Section line counts must fit their kind",
		Severity:    lint.SeverityError,
		Check:       checkSectionLength,
		Rationale: "Each section kind has a working range: verses carry " +
			"narrative in 4 to 8 lines, choruses land the hook in 2 to 6, " +
			"bridges turn in 2 to 8, and pre-choruses lift in 2 to 4. " +
			"Counts outside those ranges read as pasted-in prose or stubs.",
		BadExample:  "VERSE\nOnly line",
		GoodExample: "VERSE\nFirst line\nSecond line\nThird line\nFourth line",
		Fix:         "Grow or trim the section until its line count fits the range for its kind.",
	})
}

func checkSectionLength(s *song.Song, _ map[string]any) []lint.Finding {
	var findings []lint.Finding
	for i, sec := range s.Sections {
		bounds, constrained := lengthBounds[sec.Kind]
		if !constrained {
			continue
		}
		n := len(sec.Lines)
		if n >= bounds[0] && n <= bounds[1] {
			continue
		}
		findings = append(findings, lint.Finding{
			Message: fmt.Sprintf("%s has %d lines, expected between %d and %d",
				sec.Label(), n, bounds[0], bounds[1]),
			Pos:     sec.Span.Start,
			Section: i + 1,
		})
	}
	return findings
}
