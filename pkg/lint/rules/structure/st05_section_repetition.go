package structure

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// repetitionLimits caps how many times a section kind may appear.
// Kinds absent from the table repeat freely.
var repetitionLimits = map[song.SectionKind]int{
	song.Verse:     5,
	song.Chorus:    5,
	song.Bridge:    1,
	song.PreChorus: 3,
}

func init() {
	lint.Register(lint.RuleDef{
		ID:          "ST05",
		Name:        "section-repetition",
		Group:       "structure",
		Description: "Section kinds must not repeat past their limits",
		Severity:    lint.SeverityError,
		Check:       checkSectionRepetition,
		Rationale: "A second bridge stops being a bridge, and a sixth verse " +
			"or chorus stops being a pop song. Repetition limits keep the " +
			"form recognizable.",
		BadExample:  "BRIDGE\nFirst detour\n\nBRIDGE\nSecond detour",
		GoodExample: "BRIDGE\nOne detour is the point of a bridge",
		Fix:         "Merge repeated sections or recast extras as a different kind.",
	})
}

func checkSectionRepetition(s *song.Song, _ map[string]any) []lint.Finding {
	var findings []lint.Finding
	counts := make(map[song.SectionKind]int, len(repetitionLimits))
	for i, sec := range s.Sections {
		limit, capped := repetitionLimits[sec.Kind]
		if !capped {
			continue
		}
		counts[sec.Kind]++
		// Report once, at the first section past the limit.
		if counts[sec.Kind] == limit+1 {
			findings = append(findings, lint.Finding{
				Message: fmt.Sprintf("%s appears more than %d times", sec.Kind.Keyword(), limit),
				Pos:     sec.Span.Start,
				Section: i + 1,
			})
		}
	}
	return findings
}
