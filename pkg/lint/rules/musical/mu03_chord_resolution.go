package musical

import "github.com/Jayk56/dslyrics/pkg/lint"

// MU03 needs a functional-harmony model: which chord is the tonic,
// which degrees pull toward it, and how strongly a section's final
// chord wants to resolve. None of that exists yet, so the rule is
// declared without a Check and the analyzer skips it. It still appears
// in rule listings, marked unimplemented.
func init() {
	lint.Register(lint.RuleDef{
		ID:          "MU03",
		Name:        "chord-resolution",
		Group:       "musical",
		Description: "Sections should end on a resolving chord (not implemented)",
		Severity:    lint.SeverityWarning,
		Rationale: "A chorus that ends on the dominant leaves the hook " +
			"hanging. Checking this requires harmonic analysis of the chord " +
			"annotations against the declared key.",
		Fix: "Planned: compare each section's final chord against the declared key.",
	})
}
