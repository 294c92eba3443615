package harmony

import (
	"fmt"
	"strings"

	"github.com/schollz/accompany/music"
)

// Mode selects which triad quality each scale degree gets.
type Mode int

const (
	Major Mode = iota
	Minor
)

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

// ParseMode accepts "major"/"maj"/"" and "minor"/"min"/"m".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "major", "maj":
		return Major, nil
	case "minor", "min", "m":
		return Minor, nil
	}
	return Major, fmt.Errorf("unknown mode %q: %w", s, music.ErrInvalidConfiguration)
}

var rootNames = map[string]int{
	"C":  0,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E":  4,
	"F":  5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11,
}

// ParseRoot converts a note name such as "Eb" into its pitch class.
func ParseRoot(name string) (int, error) {
	name = strings.TrimSpace(name)
	if len(name) > 0 {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	pc, ok := rootNames[name]
	if !ok {
		return 0, fmt.Errorf("invalid root note %q: %w", name, music.ErrInvalidConfiguration)
	}
	return pc, nil
}

// ParseKey reads keys written like "C", "A minor" or "F# major".
func ParseKey(s string) (root int, mode Mode, err error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		err = fmt.Errorf("invalid key %q: %w", s, music.ErrInvalidConfiguration)
		return
	}
	root, err = ParseRoot(fields[0])
	if err != nil {
		return
	}
	if len(fields) == 2 {
		mode, err = ParseMode(fields[1])
	}
	return
}

type quality int

const (
	majorTriad quality = iota
	minorTriad
	diminishedTriad
)

var triads = map[quality][3]int{
	majorTriad:      {0, 4, 7}, // Root, Major 3rd, Perfect 5th
	minorTriad:      {0, 3, 7}, // Root, Minor 3rd, Perfect 5th
	diminishedTriad: {0, 3, 6}, // Root, Minor 3rd, Diminished 5th
}

// degree -> quality. Degree 1 of the minor table is diminished (ii°).
var degreeQualities = map[Mode][7]quality{
	Major: {majorTriad, minorTriad, minorTriad, majorTriad, majorTriad, minorTriad, diminishedTriad},
	Minor: {minorTriad, diminishedTriad, majorTriad, minorTriad, minorTriad, majorTriad, diminishedTriad},
}

// Vocabulary builds the seven triads available to the accompaniment.
// The chord for degree i is the degree's triad template transposed by
// root+i semitones, folded into [0,12).
func Vocabulary(root int, mode Mode) (chords []music.Chord, err error) {
	if root < 0 || root > 11 {
		err = fmt.Errorf("root pitch class %d outside [0,12): %w", root, music.ErrInvalidConfiguration)
		return
	}
	qualities, ok := degreeQualities[mode]
	if !ok {
		err = fmt.Errorf("unknown mode %d: %w", mode, music.ErrInvalidConfiguration)
		return
	}
	chords = make([]music.Chord, 7)
	for i, q := range qualities {
		for j, offset := range triads[q] {
			chords[i][j] = (offset + root + i) % 12
		}
	}
	return
}
