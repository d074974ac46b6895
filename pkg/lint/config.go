package lint

// Config controls which rules run and how strict they are.
type Config struct {
	// DisabledRules holds rule IDs that should not run.
	DisabledRules map[string]bool

	// SeverityOverrides remaps a rule's severity by ID.
	SeverityOverrides map[string]Severity

	// RuleOptions carries per-rule option maps keyed by rule ID.
	RuleOptions map[string]map[string]any

	// Workers bounds concurrent rule evaluation in AnalyzeContext.
	// Zero or one means serial evaluation.
	Workers int
}

// NewConfig returns an empty configuration: every rule enabled at its
// default severity.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// Disable marks a rule as disabled and returns the config for chaining.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides a rule's severity.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions replaces the option map for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

// IsDisabled reports whether the rule is disabled.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// Severity resolves a rule's effective severity given its default.
func (c *Config) Severity(ruleID string, def Severity) Severity {
	if c == nil {
		return def
	}
	if s, ok := c.SeverityOverrides[ruleID]; ok {
		return s
	}
	return def
}

// Options returns the configured options for a rule, which may be nil.
func (c *Config) Options(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}
