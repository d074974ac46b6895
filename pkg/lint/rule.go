package lint

import (
	"github.com/Jayk56/dslyrics/pkg/core"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// CheckFunc inspects a song and returns its findings. opts carries the
// rule's options from configuration, already merged over defaults by
// the analyzer; implementations read them with the typed Get*Option
// helpers. Checks must not mutate the song.
type CheckFunc func(s *song.Song, opts map[string]any) []Finding

// RuleDef is a data-driven rule definition.
type RuleDef struct {
	// ID is the stable rule identifier, e.g. "ST03".
	ID string

	// Name is a short kebab-case label, e.g. "required-sections".
	Name string

	// Group is the rule family: structure, prosody, or musical.
	Group string

	// Description is a one-line summary shown by the rules command.
	Description string

	// Severity is the default severity; configuration may override it.
	Severity Severity

	// Check evaluates the rule. A nil Check registers the rule as
	// declared but not implemented.
	Check CheckFunc

	// ConfigKeys lists the option keys the rule understands.
	ConfigKeys []string

	// Documentation shown by "rules <ID>".
	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// Implemented reports whether the rule actually checks anything.
func (d RuleDef) Implemented() bool {
	return d.Check != nil
}

// Info projects the rule definition into the shared metadata shape
// used by documentation surfaces and the HTTP API.
func (d RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              d.ID,
		Name:            d.Name,
		Group:           d.Group,
		Description:     d.Description,
		DefaultSeverity: d.Severity,
		ConfigKeys:      append([]string(nil), d.ConfigKeys...),
		Implemented:     d.Implemented(),
		Rationale:       d.Rationale,
		BadExample:      d.BadExample,
		GoodExample:     d.GoodExample,
		Fix:             d.Fix,
	}
}
