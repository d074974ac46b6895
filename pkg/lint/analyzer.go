package lint

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Jayk56/dslyrics/pkg/song"
)

// Analyzer applies registered rules to a song.
type Analyzer struct {
	config   *Config
	registry *Registry
}

// NewAnalyzer creates an analyzer over the global registry. A nil
// config means all rules at their default severities.
func NewAnalyzer(config *Config) *Analyzer {
	return &Analyzer{config: config, registry: globalRegistry}
}

// NewAnalyzerWithRegistry creates an analyzer over a specific registry.
// Intended for tests that need an isolated rule set.
func NewAnalyzerWithRegistry(config *Config, registry *Registry) *Analyzer {
	return &Analyzer{config: config, registry: registry}
}

// Analyze runs every enabled rule in registration order and returns
// the concatenated findings.
func (a *Analyzer) Analyze(s *song.Song) []Finding {
	if s == nil {
		return nil
	}

	var findings []Finding
	for _, def := range a.enabledRules() {
		findings = append(findings, a.runRule(def, s)...)
	}
	return findings
}

// AnalyzeContext evaluates rules concurrently, bounded by the
// configured worker count. Each rule writes into its own slot, so the
// output order matches Analyze exactly. The only error it returns is
// the context's.
func (a *Analyzer) AnalyzeContext(ctx context.Context, s *song.Song) ([]Finding, error) {
	if s == nil {
		return nil, nil
	}

	rules := a.enabledRules()
	workers := 0
	if a.config != nil {
		workers = a.config.Workers
	}
	if workers <= 1 || len(rules) <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return a.Analyze(s), nil
	}

	slots := make([][]Finding, len(rules))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, def := range rules {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			slots[i] = a.runRule(def, s)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var findings []Finding
	for _, slot := range slots {
		findings = append(findings, slot...)
	}
	return findings, nil
}

// enabledRules returns the rules to run, in registration order.
func (a *Analyzer) enabledRules() []RuleDef {
	all := a.registry.All()
	out := make([]RuleDef, 0, len(all))
	for _, def := range all {
		if def.Check == nil {
			continue
		}
		if a.config.IsDisabled(def.ID) {
			continue
		}
		out = append(out, def)
	}
	return out
}

// runRule evaluates one rule and stamps identity and effective
// severity onto its findings.
func (a *Analyzer) runRule(def RuleDef, s *song.Song) []Finding {
	findings := def.Check(s, a.config.Options(def.ID))
	severity := a.config.Severity(def.ID, def.Severity)
	for i := range findings {
		findings[i].RuleID = def.ID
		findings[i].RuleName = def.Name
		findings[i].Severity = severity
	}
	return findings
}
