package prosody

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/prosody"
	"github.com/Jayk56/dslyrics/pkg/song"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "PR03",
		Name:        "meter",
		Group:       "prosody",
		Description: "Stress annotations are matched against known meters",
		Severity:    lint.SeverityInfo,
		Check:       checkMeter,
		Rationale: "A stress pattern that matches no named meter is not " +
			"wrong, just worth a look. The finding is informational and " +
			"never gates validity.",
		BadExample:  "VERSE\nOdd cadence here {stress:x//x}",
		GoodExample: "VERSE\nSteady cadence here {stress:x/x/x/x/}",
		Fix:         "Check the annotation against how the line is actually sung.",
	})
}

func checkMeter(s *song.Song, _ map[string]any) []lint.Finding {
	var findings []lint.Finding
	for i, sec := range s.Sections {
		for j, line := range sec.Lines {
			if line.Stress == "" {
				continue
			}
			if _, ok := prosody.MatchMeter(line.Stress); ok {
				continue
			}
			findings = append(findings, lint.Finding{
				Message: fmt.Sprintf("stress pattern %q does not match a known meter", line.Stress),
				Pos:     line.Span.Start,
				Section: i + 1,
				Line:    j + 1,
			})
		}
	}
	return findings
}
