package musical

import (
	"fmt"
	"strings"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// tempoRanges maps a genre to its conventional BPM range, inclusive.
var tempoRanges = map[string][2]float64{
	"ballad": {60, 80},
	"pop":    {100, 130},
	"dance":  {120, 140},
}

func init() {
	lint.Register(lint.RuleDef{
		ID:          "MU01",
		Name:        "tempo-range",
		Group:       "musical",
		Description: "Tempo should fit the declared genre",
		Severity:    lint.SeverityWarning,
		Check:       checkTempoRange,
		Rationale: "A 140 BPM ballad or a 70 BPM dance track is usually a " +
			"mislabeled genre or a typo in the tempo, and either way the " +
			"commercial framing is off.",
		BadExample:  "tempo:140\ngenre:ballad",
		GoodExample: "tempo:72\ngenre:ballad",
		Fix:         "Correct the tempo or relabel the genre.",
	})
}

func checkTempoRange(s *song.Song, _ map[string]any) []lint.Finding {
	tempo, ok := s.Tempo()
	if !ok {
		return nil
	}
	genre := strings.ToLower(strings.TrimSpace(s.Genre()))
	bounds, known := tempoRanges[genre]
	if !known {
		// Unknown genres carry no tempo convention.
		return nil
	}
	if tempo >= bounds[0] && tempo <= bounds[1] {
		return nil
	}
	return []lint.Finding{{
		Message: fmt.Sprintf("tempo %g BPM is outside the %s range of %g-%g",
			tempo, genre, bounds[0], bounds[1]),
		Pos: s.Span.Start,
	}}
}
