package song

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// Chord is one symbol from a line's chord annotation, split into the
// fixed grammar parts (root, quality, extension, optional bass note).
type Chord struct {
	Root      string // "C", "F#", "Bb"
	Quality   string // "", "m", "maj", "min", "dim", "aug", "sus2", "sus4"
	Extension string // "", "7", "maj7", "add9", ...
	Bass      string // "" or the note after "/"
}

// chordPattern is the fixed chord grammar. Alternations are ordered
// longest-first because submatching is leftmost-first.
var chordPattern = regexp.MustCompile(
	`^([A-G][#b]?)` + // root
		`(maj|min|dim|aug|sus2|sus4|m)?` + // quality
		`(maj7|min7|dim7|aug7|add11|add13|add9|11|13|2|4|5|6|7|9)?` + // extension
		`(?:/([A-G][#b]?))?$`, // bass
)

// ParseChord splits a chord symbol into its parts.
// Returns the chord and true if the symbol matches the chord grammar.
func ParseChord(s string) (Chord, bool) {
	m := chordPattern.FindStringSubmatch(s)
	if m == nil {
		return Chord{}, false
	}
	return Chord{
		Root:      m[1],
		Quality:   m[2],
		Extension: m[3],
		Bass:      m[4],
	}, true
}

// ValidChord reports whether s matches the chord grammar.
func ValidChord(s string) bool {
	return chordPattern.MatchString(s)
}

// String reassembles the chord symbol as written.
func (c Chord) String() string {
	s := c.Root + c.Quality + c.Extension
	if c.Bass != "" {
		s += "/" + c.Bass
	}
	return s
}

// MarshalJSON renders the chord as its compact symbol.
func (c Chord) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses a compact chord symbol.
func (c *Chord) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ok := ParseChord(s)
	if !ok {
		return fmt.Errorf("invalid chord symbol %q", s)
	}
	*c = parsed
	return nil
}
