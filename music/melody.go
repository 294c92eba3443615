package music

import "errors"

var (
	// ErrInvalidInput is returned when a melody is too short for the
	// requested operation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidConfiguration is returned for out of range parameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Melody is an ordered, monophonic sequence of pitches (MIDI note numbers).
type Melody []int

// PitchClass folds a pitch into [0,12).
func PitchClass(pitch int) int {
	pc := pitch % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// PitchClasses returns which of the twelve pitch classes occur
// anywhere in the melody.
func (m Melody) PitchClasses() (classes [12]bool) {
	for _, pitch := range m {
		classes[PitchClass(pitch)] = true
	}
	return
}

// Copy returns an independent copy of the melody.
func (m Melody) Copy() Melody {
	c := make(Melody, len(m))
	copy(c, m)
	return c
}

// Chord is a triad of pitch classes. Two chords are identical only
// when the same pitch classes appear in the same order.
type Chord [3]int

// Contains reports whether the pitch class is one of the chord's notes.
func (c Chord) Contains(pitchClass int) bool {
	for _, pc := range c {
		if pc == pitchClass {
			return true
		}
	}
	return false
}

// Overlaps reports whether any pitch class in the set is in the chord.
func (c Chord) Overlaps(classes [12]bool) bool {
	for pc, present := range classes {
		if present && c.Contains(pc) {
			return true
		}
	}
	return false
}
