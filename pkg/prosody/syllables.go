// Package prosody provides the deterministic text heuristics used by the
// prosodic lint rules: syllable estimation, rhyme scheme normalization,
// and meter matching.
//
// The syllable estimator counts vowel groups with silent-e and diphthong
// adjustments. It is an approximation, not a dictionary lookup, and the
// rules that consume it treat its output accordingly: thresholds carry a
// variance band and violations are warnings, never errors.
package prosody

import (
	"regexp"
	"strings"
)

var (
	// silentSuffix strips word endings that do not add a syllable:
	// a consonant plus "es" or "e" (but not "le", which does), and "ed".
	silentSuffix = regexp.MustCompile(`([^laeiouy]es|ed|[^laeiouy]e)$`)

	// vowelRun matches one syllable nucleus. Pairs count once so common
	// diphthongs ("ea", "ou", "ai") do not inflate the estimate.
	vowelRun = regexp.MustCompile(`[aeiouy]{1,2}`)
)

// Syllables estimates the syllable count of a single word. Words with
// no letters count zero; anything else counts at least one.
func Syllables(word string) int {
	w := letters(word)
	if w == "" {
		return 0
	}
	if len(w) <= 3 {
		return 1
	}

	w = silentSuffix.ReplaceAllString(w, "")
	w = strings.TrimPrefix(w, "y")

	n := len(vowelRun.FindAllString(w, -1))
	if n < 1 {
		return 1
	}
	return n
}

// LineSyllables estimates the syllable count of a lyric line by summing
// its words. Punctuation-only tokens contribute nothing.
func LineSyllables(text string) int {
	total := 0
	for _, word := range strings.Fields(text) {
		total += Syllables(word)
	}
	return total
}

// letters lowercases the word and keeps only a-z.
func letters(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
