// Package prosody contains rules about how the lyrics sing: syllable
// budgets per line, rhyme scheme conformance, and meter recognition.
// These rules ride on estimates, so they warn or inform rather than
// fail the song.
package prosody
