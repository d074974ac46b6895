package song

// Closed vocabularies. Keys outside these sets are rejected at parse time.

// metaKeys is the closed set of metadata keys.
var metaKeys = map[string]bool{
	"title":    true,
	"artist":   true,
	"tempo":    true,
	"key":      true,
	"time_sig": true,
	"genre":    true,
	"lang":     true,
	"writers":  true,
	"duration": true,
}

// numericMetaKeys are metadata keys whose values must parse as numbers.
var numericMetaKeys = map[string]bool{
	"tempo":    true,
	"duration": true,
}

// lineAttrKeys is the closed set of per-line annotation keys.
var lineAttrKeys = map[string]bool{
	"rhyme":  true,
	"stress": true,
	"chord":  true,
	"timing": true,
}

// IsMetaKey reports whether key is a recognized metadata key.
func IsMetaKey(key string) bool { return metaKeys[key] }

// IsNumericMetaKey reports whether key carries a numeric value.
func IsNumericMetaKey(key string) bool { return numericMetaKeys[key] }

// IsLineAttrKey reports whether key is a recognized line annotation key.
func IsLineAttrKey(key string) bool { return lineAttrKeys[key] }

// MetaKeys returns the recognized metadata keys (for docs and completion).
func MetaKeys() []string {
	return []string{"title", "artist", "tempo", "key", "time_sig", "genre", "lang", "writers", "duration"}
}

// LineAttrKeys returns the recognized line annotation keys.
func LineAttrKeys() []string {
	return []string{"rhyme", "stress", "chord", "timing"}
}

// IsRhymeLetter reports whether s is a single uppercase letter A-Z.
func IsRhymeLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

// IsStressPattern reports whether s is a non-empty string over {x, /},
// where x is an unstressed syllable and / a stressed one.
func IsStressPattern(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != 'x' && s[i] != '/' {
			return false
		}
	}
	return true
}
