package structure

import (
	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "ST01",
		Name:        "metadata-required",
		Group:       "structure",
		Description: "Song must declare metadata",
		Severity:    lint.SeverityError,
		Check:       checkMetadataRequired,
		Rationale: "Metadata carries the title, tempo, and genre that both " +
			"humans and the musical rules depend on. A sheet without it " +
			"cannot be catalogued or graded meaningfully.",
		BadExample:  "VERSE\nStraight into lyrics",
		GoodExample: "title:Morning Song\ntempo:96\n\nVERSE\nStraight into lyrics",
		Fix:         "Add metadata lines such as title: and tempo: before the first section.",
	})
}

func checkMetadataRequired(s *song.Song, _ map[string]any) []lint.Finding {
	if len(s.Metadata) > 0 {
		return nil
	}
	return []lint.Finding{{
		Message: "song declares no metadata",
		Pos:     s.Span.Start,
	}}
}
