package lint

import (
	"sort"
	"sync"

	"github.com/Jayk56/dslyrics/pkg/core"
)

// Registry holds rule definitions. Registration order is remembered so
// analysis output is deterministic run to run.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleDef)}
}

// globalRegistry is populated by rule packages at init time.
var globalRegistry = NewRegistry()

// Register adds a rule definition to the registry. Registering the
// same ID again replaces the definition but keeps its original slot in
// the evaluation order.
func (r *Registry) Register(def RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[def.ID]; !exists {
		r.order = append(r.order, def.ID)
	}
	r.rules[def.ID] = def
}

// Get returns the rule with the given ID.
func (r *Registry) Get(id string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.rules[id]
	return def, ok
}

// All returns every registered rule in registration order.
func (r *Registry) All() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]RuleDef, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.rules[id])
	}
	return out
}

// ByGroup returns the rules in the given group, in registration order.
func (r *Registry) ByGroup(group string) []RuleDef {
	var out []RuleDef
	for _, def := range r.All() {
		if def.Group == group {
			out = append(out, def)
		}
	}
	return out
}

// Groups returns the distinct group names, sorted.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, id := range r.order {
		g := r.rules[id].Group
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Clear removes all rules. Intended for tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = make(map[string]RuleDef)
	r.order = nil
}

// Register adds a rule to the global registry.
func Register(def RuleDef) {
	globalRegistry.Register(def)
}

// Get returns a rule from the global registry.
func Get(id string) (RuleDef, bool) {
	return globalRegistry.Get(id)
}

// All returns the globally registered rules in registration order.
func All() []RuleDef {
	return globalRegistry.All()
}

// ByGroup returns the globally registered rules in the given group.
func ByGroup(group string) []RuleDef {
	return globalRegistry.ByGroup(group)
}

// Groups returns the distinct group names in the global registry.
func Groups() []string {
	return globalRegistry.Groups()
}

// Count returns the number of globally registered rules.
func Count() int {
	return globalRegistry.Count()
}

// AllInfo returns metadata for every globally registered rule, in
// registration order.
func AllInfo() []core.RuleInfo {
	defs := All()
	out := make([]core.RuleInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, def.Info())
	}
	return out
}
