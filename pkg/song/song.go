// Package song defines the analysis model for parsed lyric sheets.
//
// A Song is the output of parsing and the input to linting and grading.
// It carries no source text beyond what analysis needs: metadata values,
// section structure, lyric lines, and their annotations, each with the
// source span it came from.
package song

import (
	"fmt"
	"strings"

	"github.com/Jayk56/dslyrics/pkg/token"
)

// SectionKind identifies the structural role of a section.
type SectionKind int

// Section kinds, in keyword order.
const (
	Verse SectionKind = iota
	Chorus
	Bridge
	PreChorus
	Outro
	Intro
)

// String returns the lowercase human-readable name of the kind.
func (k SectionKind) String() string {
	switch k {
	case Verse:
		return "verse"
	case Chorus:
		return "chorus"
	case Bridge:
		return "bridge"
	case PreChorus:
		return "pre-chorus"
	case Outro:
		return "outro"
	case Intro:
		return "intro"
	default:
		return "unknown"
	}
}

// Keyword returns the uppercase source keyword for the kind.
func (k SectionKind) Keyword() string {
	return strings.ToUpper(k.String())
}

// ParseSectionKind converts a name (either case) to a SectionKind.
// Returns the kind and true if valid, or Verse and false if invalid.
func ParseSectionKind(s string) (SectionKind, bool) {
	switch strings.ToLower(s) {
	case "verse":
		return Verse, true
	case "chorus":
		return Chorus, true
	case "bridge":
		return Bridge, true
	case "pre-chorus", "prechorus":
		return PreChorus, true
	case "outro":
		return Outro, true
	case "intro":
		return Intro, true
	default:
		return Verse, false
	}
}

// Timing is a beats:offset annotation on a lyric line.
type Timing struct {
	Beats  float64 `json:"beats"`
	Offset float64 `json:"offset"`
}

// Line is a single lyric line with its optional annotations.
// Absent annotations are zero values: empty Rhyme/Stress, nil Chords/Timing.
type Line struct {
	Text   string     `json:"text"`
	Rhyme  string     `json:"rhyme,omitempty"`
	Stress string     `json:"stress,omitempty"`
	Chords []Chord    `json:"chords,omitempty"`
	Timing *Timing    `json:"timing,omitempty"`
	Span   token.Span `json:"-"`
}

// Section is a contiguous block of lyric lines under one header.
type Section struct {
	Kind  SectionKind          `json:"kind"`
	Index int                  `json:"index,omitempty"` // VERSE[2] -> 2; 0 when unnumbered
	Attrs map[string]AttrValue `json:"attrs,omitempty"`
	Lines []Line               `json:"lines"`
	Span  token.Span           `json:"-"`
}

// Label returns the section header as written, e.g. "VERSE[1]" or "CHORUS".
func (s *Section) Label() string {
	if s.Index > 0 {
		return fmt.Sprintf("%s[%d]", s.Kind.Keyword(), s.Index)
	}
	return s.Kind.Keyword()
}

// RhymeLetters returns the rhyme annotations on this section's lines,
// in order. Unannotated lines are skipped.
func (s *Section) RhymeLetters() []string {
	var out []string
	for _, line := range s.Lines {
		if line.Rhyme != "" {
			out = append(out, line.Rhyme)
		}
	}
	return out
}

// Song is a fully parsed lyric sheet.
type Song struct {
	Metadata map[string]AttrValue `json:"metadata"`
	// MetaOrder holds the metadata keys in source order, so rendered
	// output can mirror what the author wrote.
	MetaOrder []string   `json:"-"`
	Sections  []*Section `json:"sections"`
	Span      token.Span `json:"-"`
}

// Meta returns the metadata value for key, if present.
func (s *Song) Meta(key string) (AttrValue, bool) {
	v, ok := s.Metadata[key]
	return v, ok
}

// MetaString returns the metadata value for key as a string,
// or "" when absent.
func (s *Song) MetaString(key string) string {
	v, ok := s.Metadata[key]
	if !ok {
		return ""
	}
	return v.String()
}

// MetaNumber returns the numeric metadata value for key.
// The second result is false when the key is absent or not numeric.
func (s *Song) MetaNumber(key string) (float64, bool) {
	v, ok := s.Metadata[key]
	if !ok || v.Kind != ValueNumber {
		return 0, false
	}
	return v.Num, true
}

// Title returns the title metadata value, or "" when absent.
func (s *Song) Title() string { return s.MetaString("title") }

// Artist returns the artist metadata value, or "" when absent.
func (s *Song) Artist() string { return s.MetaString("artist") }

// Genre returns the genre metadata value, or "" when absent.
func (s *Song) Genre() string { return s.MetaString("genre") }

// Tempo returns the tempo metadata value in BPM, if present and numeric.
func (s *Song) Tempo() (float64, bool) { return s.MetaNumber("tempo") }

// SectionsOf returns the sections of the given kind, in source order.
func (s *Song) SectionsOf(kind SectionKind) []*Section {
	var out []*Section
	for _, sec := range s.Sections {
		if sec.Kind == kind {
			out = append(out, sec)
		}
	}
	return out
}

// CountOf returns how many sections of the given kind the song has.
func (s *Song) CountOf(kind SectionKind) int {
	n := 0
	for _, sec := range s.Sections {
		if sec.Kind == kind {
			n++
		}
	}
	return n
}

// LineCount returns the total number of lyric lines across all sections.
func (s *Song) LineCount() int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Lines)
	}
	return n
}

// WordCount returns the total number of whitespace-separated words across
// all lyric lines.
func (s *Song) WordCount() int {
	n := 0
	for _, sec := range s.Sections {
		for _, ln := range sec.Lines {
			n += len(strings.Fields(ln.Text))
		}
	}
	return n
}
