package structure

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "ST06",
		Name:        "language-tag",
		Group:       "structure",
		Description: "lang metadata must be a valid BCP 47 tag",
		Severity:    lint.SeverityWarning,
		Check:       checkLanguageTag,
		Rationale: "Downstream tooling keys pronunciation and syllable " +
			"dictionaries off the declared language. A bad tag silently " +
			"disables all of that.",
		BadExample:  "lang:american",
		GoodExample: "lang:en-US",
		Fix:         "Use a BCP 47 language tag such as en, en-US, or pt-BR.",
	})
}

func checkLanguageTag(s *song.Song, _ map[string]any) []lint.Finding {
	tag := s.MetaString("lang")
	if tag == "" {
		return nil
	}
	if _, err := language.Parse(tag); err != nil {
		return []lint.Finding{{
			Message: fmt.Sprintf("lang %q is not a valid BCP 47 language tag", tag),
			Pos:     s.Span.Start,
		}}
	}
	return nil
}
