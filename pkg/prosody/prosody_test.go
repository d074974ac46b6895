package prosody

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"", 0},
		{"...", 0},
		{"a", 1},
		{"the", 1},
		{"cat", 1},
		{"hello", 2},
		{"love", 1},
		{"loved", 1},
		{"table", 2},
		{"syllable", 3},
		{"morning", 2},
		{"blues", 1},
		{"orange", 2},
		{"validation", 4},
		{"I'd", 1},
		{"Broken", 2},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Syllables(tt.word), "word %q", tt.word)
		})
	}
}

func TestLineSyllables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"hook", "I got the validation blues", 8},
		{"opening", "Woke up this morning, my build was broken", 10},
		{"punctuation only", "-- ...", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineSyllables(tt.text))
		})
	}
}

func TestScheme(t *testing.T) {
	tests := []struct {
		name    string
		letters []string
		want    string
	}{
		{"empty", nil, ""},
		{"single", []string{"A"}, "A"},
		{"couplets", []string{"A", "A", "B", "B"}, "AABB"},
		{"relabeled", []string{"B", "A", "B"}, "ABA"},
		{"arbitrary letters", []string{"C", "D", "C", "D"}, "ABAB"},
		{"non-initial single", []string{"X"}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Scheme(tt.letters))
		})
	}
}

func TestMatchMeter(t *testing.T) {
	m, ok := MatchMeter("x/x/x/x/")
	assert.True(t, ok)
	assert.Equal(t, "iambic tetrameter", m.Name)

	m, ok = MatchMeter("/x/x/x/x")
	assert.True(t, ok)
	assert.Equal(t, "trochaic tetrameter", m.Name)

	m, ok = MatchMeter("x/x/x/x/x/")
	assert.True(t, ok)
	assert.Equal(t, "iambic pentameter", m.Name)

	_, ok = MatchMeter("x/x/")
	assert.False(t, ok)
	_, ok = MatchMeter("")
	assert.False(t, ok)
}

func TestMeters(t *testing.T) {
	all := Meters()
	assert.Len(t, all, 3)

	// Callers get a copy, not the package table.
	all[0].Name = "changed"
	fresh := Meters()
	assert.Equal(t, "iambic tetrameter", fresh[0].Name)
}
