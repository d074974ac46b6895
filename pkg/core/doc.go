// Package core defines the shared language of the dslyrics system.
//
// It holds the types every layer agrees on: the Severity scale used by
// lint findings and the RuleInfo metadata consumed by documentation and
// tooling surfaces.
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
