package prosody

// Meter is a named stress pattern. In a pattern, x marks an unstressed
// syllable and / marks a stressed one.
type Meter struct {
	Name    string
	Pattern string
}

// meters holds the patterns the meter rule recognizes. Matching is an
// exact string comparison against the line's stress annotation.
var meters = []Meter{
	{Name: "iambic tetrameter", Pattern: "x/x/x/x/"},
	{Name: "trochaic tetrameter", Pattern: "/x/x/x/x"},
	{Name: "iambic pentameter", Pattern: "x/x/x/x/x/"},
}

// MatchMeter returns the named meter whose pattern exactly matches the
// given stress annotation.
func MatchMeter(pattern string) (Meter, bool) {
	for _, m := range meters {
		if m.Pattern == pattern {
			return m, true
		}
	}
	return Meter{}, false
}

// Meters returns the recognized meters in a stable order.
func Meters() []Meter {
	out := make([]Meter, len(meters))
	copy(out, meters)
	return out
}
