package structure

import (
	"fmt"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

const (
	defaultMinSections = 2
	defaultMaxSections = 20
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "ST02",
		Name:        "section-count",
		Group:       "structure",
		Description: "Total section count must stay within bounds",
		Severity:    lint.SeverityError,
		Check:       checkSectionCount,
		ConfigKeys:  []string{"min_sections", "max_sections"},
		Rationale: "A single section is a fragment, not a song, and past " +
			"twenty sections the sheet almost certainly concatenates several " +
			"songs or duplicates material.",
		BadExample:  "title:Fragment\n\nVERSE\nOnly one section here",
		GoodExample: "title:Whole\n\nVERSE\nFirst section\n\nCHORUS\nSecond section",
		Fix:         "Split oversized sheets into separate songs, or add the missing sections.",
	})
}

func checkSectionCount(s *song.Song, opts map[string]any) []lint.Finding {
	min := lint.GetIntOption(opts, "min_sections", defaultMinSections)
	max := lint.GetIntOption(opts, "max_sections", defaultMaxSections)

	n := len(s.Sections)
	if n >= min && n <= max {
		return nil
	}
	return []lint.Finding{{
		Message: fmt.Sprintf("song has %d sections, expected between %d and %d", n, min, max),
		Pos:     s.Span.Start,
	}}
}
