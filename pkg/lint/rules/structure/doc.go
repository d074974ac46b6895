// Package structure contains rules about song shape: required metadata,
// section inventory, section lengths, and repetition limits. Structural
// violations are errors by default and gate the song's validity.
package structure
