package prosody

import (
	"fmt"
	"strings"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/prosody"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// acceptedSchemes lists the canonical rhyme schemes per section kind.
// Kinds absent from the table are not judged.
var acceptedSchemes = map[song.SectionKind][]string{
	song.Verse:  {"AABB", "ABAB", "ABCB", "AAAA"},
	song.Chorus: {"AABB", "AAAA", "ABAB"},
}

func init() {
	lint.Register(lint.RuleDef{
		ID:          "PR02",
		Name:        "rhyme-scheme",
		Group:       "prosody",
		Description: "Annotated rhyme schemes must match an accepted pattern",
		Severity:    lint.SeverityWarning,
		Check:       checkRhymeScheme,
		Rationale: "Rhyme annotations are compared after canonicalization, " +
			"so AABB and CCDD describe the same scheme. Sections with no " +
			"rhyme annotations are skipped; an absent scheme is a choice, " +
			"a broken one is probably a typo.",
		BadExample:  "VERSE\nOne {rhyme:A}\nTwo {rhyme:B}\nThree {rhyme:C}\nFour {rhyme:D}",
		GoodExample: "VERSE\nOne {rhyme:A}\nTwo {rhyme:B}\nThree {rhyme:A}\nFour {rhyme:B}",
		Fix:         "Rework the rhyme letters into an accepted scheme, or drop the annotations.",
	})
}

func checkRhymeScheme(s *song.Song, _ map[string]any) []lint.Finding {
	var findings []lint.Finding
	for i, sec := range s.Sections {
		accepted, judged := acceptedSchemes[sec.Kind]
		if !judged {
			continue
		}
		letters := sec.RhymeLetters()
		if len(letters) == 0 {
			continue
		}

		scheme := prosody.Scheme(letters)
		ok := false
		for _, want := range accepted {
			if scheme == want {
				ok = true
				break
			}
		}
		if ok {
			continue
		}

		findings = append(findings, lint.Finding{
			Message: fmt.Sprintf("%s rhyme scheme %s is not an accepted %s scheme (%s)",
				sec.Label(), scheme, strings.ToLower(sec.Kind.String()), strings.Join(accepted, ", ")),
			Pos:     sec.Span.Start,
			Section: i + 1,
		})
	}
	return findings
}
