package prosody

// Scheme canonicalizes a sequence of rhyme letters so that equivalent
// schemes compare equal regardless of which letters the author chose:
// the first distinct letter becomes A, the second B, and so on.
// ["B","A","B"] and ["A","C","A"] both canonicalize to "ABA".
func Scheme(letters []string) string {
	if len(letters) == 0 {
		return ""
	}

	next := byte('A')
	assigned := make(map[string]byte, len(letters))
	out := make([]byte, 0, len(letters))
	for _, letter := range letters {
		c, ok := assigned[letter]
		if !ok {
			c = next
			assigned[letter] = c
			next++
		}
		out = append(out, c)
	}
	return string(out)
}
