// Package grade turns a song and its lint findings into a weighted,
// explainable quality grade. Scoring is fully deterministic: fixed
// penalties keyed by rule ID, a fixed originality baseline, and
// proxy checks computed from the song itself. The same input always
// produces the same grade.
package grade

import (
	"fmt"
	"math"
	"strings"

	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/prosody"
	"github.com/Jayk56/dslyrics/pkg/song"
)

// Breakdown carries the four sub-scores, each in [0,100].
type Breakdown struct {
	Structure     int `json:"structure"`
	Prosody       int `json:"prosody"`
	Originality   int `json:"originality"`
	Commerciality int `json:"commerciality"`
}

// Grade is the full grading result.
type Grade struct {
	Overall   int       `json:"overall"`
	Breakdown Breakdown `json:"breakdown"`
	Feedback  []string  `json:"feedback"`
}

// structurePenalties and prosodyPenalties map rule IDs to the points
// each finding costs its sub-score.
var structurePenalties = map[string]int{
	"ST01": 20, // metadata-required
	"ST02": 15, // section-count
	"ST03": 20, // required-sections
	"ST04": 10, // section-length
	"ST05": 10, // section-repetition
	"ST06": 5,  // language-tag
}

var prosodyPenalties = map[string]int{
	"PR01": 3, // syllable-ceiling
	"PR02": 5, // rhyme-scheme
	"PR03": 1, // meter
}

const (
	// originalityBaseline is the fixed originality sub-score. Lexical
	// diversity analysis would move it; until then every song gets
	// the same neutral value.
	originalityBaseline = 70

	tempoPenalty     = 15 // MU01 findings
	timeSigPenalty   = 5  // MU02 findings
	spreadPenalty    = 10 // syllable spread past maxSyllableSpread
	hookDriftPenalty = 10 // chorus text drifting between repeats

	// maxSyllableSpread is the widest max-minus-min per-line syllable
	// spread that still counts as evenly singable.
	maxSyllableSpread = 6
)

// Score grades a song given its lint findings.
func Score(s *song.Song, findings []lint.Finding) Grade {
	structure := 100
	prosodyScore := 100
	var structureHits, prosodyHits int
	var tempoOff, timeSigOff bool

	for _, f := range findings {
		if p, ok := structurePenalties[f.RuleID]; ok {
			structure -= p
			structureHits++
			continue
		}
		if p, ok := prosodyPenalties[f.RuleID]; ok {
			prosodyScore -= p
			prosodyHits++
			continue
		}
		switch f.RuleID {
		case "MU01":
			tempoOff = true
		case "MU02":
			timeSigOff = true
		}
	}

	spreadOff := syllableSpread(s) > maxSyllableSpread
	driftOff := hookDrifts(s)

	commerciality := 100
	if tempoOff {
		commerciality -= tempoPenalty
	}
	if timeSigOff {
		commerciality -= timeSigPenalty
	}
	if spreadOff {
		commerciality -= spreadPenalty
	}
	if driftOff {
		commerciality -= hookDriftPenalty
	}

	b := Breakdown{
		Structure:     clamp(structure),
		Prosody:       clamp(prosodyScore),
		Originality:   originalityBaseline,
		Commerciality: clamp(commerciality),
	}

	g := Grade{
		Overall:   overall(b),
		Breakdown: b,
	}
	g.Feedback = feedback(b, structureHits, prosodyHits, tempoOff, timeSigOff, spreadOff, driftOff)
	return g
}

// overall is the rounded mean of the four sub-scores.
func overall(b Breakdown) int {
	sum := b.Structure + b.Prosody + b.Originality + b.Commerciality
	return int(math.Round(float64(sum) / 4))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// syllableSpread returns max minus min of per-line syllable counts
// across the whole song, or 0 for songs with fewer than two lines.
func syllableSpread(s *song.Song) int {
	min, max := -1, -1
	lines := 0
	for _, sec := range s.Sections {
		for _, line := range sec.Lines {
			n := prosody.LineSyllables(line.Text)
			lines++
			if min == -1 || n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
	}
	if lines < 2 {
		return 0
	}
	return max - min
}

// hookDrifts reports whether repeated choruses stop matching each
// other verbatim. A single chorus cannot drift.
func hookDrifts(s *song.Song) bool {
	choruses := s.SectionsOf(song.Chorus)
	if len(choruses) < 2 {
		return false
	}
	first := chorusText(choruses[0])
	for _, c := range choruses[1:] {
		if chorusText(c) != first {
			return true
		}
	}
	return false
}

func chorusText(sec *song.Section) string {
	texts := make([]string, 0, len(sec.Lines))
	for _, line := range sec.Lines {
		texts = append(texts, line.Text)
	}
	return strings.Join(texts, "\n")
}

// feedback builds one sentence per triggered category in a fixed
// order: structure, prosody, originality, commerciality. The
// originality note is always present; a clean sheet gets a fixed
// lead sentence instead of category complaints.
func feedback(b Breakdown, structureHits, prosodyHits int, tempoOff, timeSigOff, spreadOff, driftOff bool) []string {
	var out []string

	clean := b.Structure == 100 && b.Prosody == 100 && b.Commerciality == 100
	if clean {
		out = append(out, "No structural, prosodic, or commercial issues found.")
	}

	if b.Structure < 100 {
		out = append(out, fmt.Sprintf(
			"Structure lost %d points across %d finding(s); resolve the structural errors first.",
			100-b.Structure, structureHits))
	}
	if b.Prosody < 100 {
		out = append(out, fmt.Sprintf(
			"Prosody lost %d points across %d finding(s) on syllables, rhyme, or meter.",
			100-b.Prosody, prosodyHits))
	}

	out = append(out, fmt.Sprintf(
		"Originality holds at the neutral baseline of %d; lexical diversity is not analyzed yet.",
		originalityBaseline))

	if b.Commerciality < 100 {
		var reasons []string
		if tempoOff {
			reasons = append(reasons, "the tempo sits outside its genre range")
		}
		if timeSigOff {
			reasons = append(reasons, "the time signature is not playable")
		}
		if spreadOff {
			reasons = append(reasons, "line lengths vary too widely to sing evenly")
		}
		if driftOff {
			reasons = append(reasons, "the chorus drifts between repeats")
		}
		out = append(out, "Commerciality suffers because "+strings.Join(reasons, ", and ")+".")
	}

	return out
}
