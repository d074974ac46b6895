package musical

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/song"
)

var timeSigPattern = regexp.MustCompile(`^([1-9][0-9]?)/([1-9][0-9]?)$`)

func init() {
	lint.Register(lint.RuleDef{
		ID:          "MU02",
		Name:        "time-signature",
		Group:       "musical",
		Description: "time_sig metadata must be a playable N/N signature",
		Severity:    lint.SeverityWarning,
		Check:       checkTimeSignature,
		Rationale: "The denominator names a note value, so it must be a " +
			"power of two; numerators past 32 beats per measure are not " +
			"something a band can count.",
		BadExample:  "time_sig:4/5",
		GoodExample: "time_sig:7/8",
		Fix:         "Use numerator/denominator with a power-of-two denominator, e.g. 4/4 or 6/8.",
	})
}

func checkTimeSignature(s *song.Song, _ map[string]any) []lint.Finding {
	sig := s.MetaString("time_sig")
	if sig == "" {
		return nil
	}

	bad := func() []lint.Finding {
		return []lint.Finding{{
			Message: fmt.Sprintf("time signature %q is not a playable N/N signature", sig),
			Pos:     s.Span.Start,
		}}
	}

	m := timeSigPattern.FindStringSubmatch(sig)
	if m == nil {
		return bad()
	}
	num, _ := strconv.Atoi(m[1])
	den, _ := strconv.Atoi(m[2])
	if num > 32 {
		return bad()
	}
	switch den {
	case 1, 2, 4, 8, 16, 32:
		return nil
	default:
		return bad()
	}
}
