package prosody

import (
	"fmt"
	"strings"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/prosody"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// syllableBudget is the per-line ceiling and allowed variance for a
// section kind. A line is flagged only past ceiling+variance, so the
// estimator's fuzziness does not nag on borderline lines.
type syllableBudget struct {
	ceiling  int
	variance int
}

var syllableBudgets = map[song.SectionKind]syllableBudget{
	song.Chorus: {ceiling: 8, variance: 1},
	song.Verse:  {ceiling: 12, variance: 2},
}

func init() {
	lint.Register(lint.RuleDef{
		ID:          "PR01",
		Name:        "syllable-ceiling",
		Group:       "prosody",
		Description: "Lines must stay within their section's syllable budget",
		Severity:    lint.SeverityWarning,
		Check:       checkSyllableCeiling,
		ConfigKeys:  []string{"verse_ceiling", "chorus_ceiling"},
		Rationale: "Chorus lines past eight syllables and verse lines past " +
			"twelve stop scanning as sung phrases. The check allows a small " +
			"variance because the count is an estimate.",
		BadExample:  "CHORUS\nThis chorus line meanders on far past anything a singer could breathe through",
		GoodExample: "CHORUS\nShort enough to sing",
		Fix:         "Tighten the line or split it across two lines.",
	})
}

func checkSyllableCeiling(s *song.Song, opts map[string]any) []lint.Finding {
	budgets := map[song.SectionKind]syllableBudget{
		song.Chorus: {
			ceiling:  lint.GetIntOption(opts, "chorus_ceiling", syllableBudgets[song.Chorus].ceiling),
			variance: syllableBudgets[song.Chorus].variance,
		},
		song.Verse: {
			ceiling:  lint.GetIntOption(opts, "verse_ceiling", syllableBudgets[song.Verse].ceiling),
			variance: syllableBudgets[song.Verse].variance,
		},
	}

	var findings []lint.Finding
	for i, sec := range s.Sections {
		budget, constrained := budgets[sec.Kind]
		if !constrained {
			continue
		}
		limit := budget.ceiling + budget.variance
		for j, line := range sec.Lines {
			n := prosody.LineSyllables(line.Text)
			if n <= limit {
				continue
			}
			findings = append(findings, lint.Finding{
				Message: fmt.Sprintf("line has %d syllables, over the %s limit of %d",
					n, strings.ToLower(sec.Kind.String()), limit),
				Pos:     line.Span.Start,
				Section: i + 1,
				Line:    j + 1,
			})
		}
	}
	return findings
}
