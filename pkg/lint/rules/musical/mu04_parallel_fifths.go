package musical

import "github.com/Jayk56/dslyrics/pkg/lint"

// MU04 would need voice-leading analysis between consecutive chords,
// which in turn needs voicings the DSL does not carry: a chord symbol
// says nothing about which inversion the player grabs. Declared
// without a Check until the DSL grows voicing annotations.
func init() {
	lint.Register(lint.RuleDef{
		ID:          "MU04",
		Name:        "parallel-fifths",
		Group:       "musical",
		Description: "Consecutive chords should avoid parallel fifths (not implemented)",
		Severity:    lint.SeverityWarning,
		Rationale: "Parallel fifths flatten the harmonic motion between " +
			"chords. Detecting them requires knowing the actual voicings, " +
			"not just the chord symbols.",
		Fix: "Planned: analyze voice leading once the DSL can express voicings.",
	})
}
