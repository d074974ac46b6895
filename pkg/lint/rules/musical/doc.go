// Package musical contains rules about the musical framing of a song:
// tempo against genre conventions and time signature sanity. Two
// harmonic rules are declared here but not yet implemented; they show
// up in rule listings as placeholders and never produce findings.
package musical
