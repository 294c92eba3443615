package music

import (
	log "github.com/sirupsen/logrus"
)

const (
	// TicksPerQuarter is the resolution used when laying notes onto beats.
	TicksPerQuarter = 480
	// MelodyNoteTicks is the length of every melody note (an eighth).
	MelodyNoteTicks = 240
	// ChordTicks is the length of every chord (a whole bar of 4/4).
	ChordTicks = 960
	// ChordOctaveOffset voices pitch classes in the octave starting at C3.
	ChordOctaveOffset = 48

	MelodyChannel = 0
	ChordChannel  = 1
)

// Composition is the melody and accompaniment laid out as two tracks.
type Composition struct {
	Melody *Music
	Chords *Music
}

// Arrange lays the melody out as back to back eighth notes and the
// chords as whole-bar triads underneath it.
func Arrange(melody Melody, chords []Chord, velocity int) *Composition {
	logger := log.WithFields(log.Fields{
		"function": "Arrange",
	})
	c := &Composition{
		Melody: New(),
		Chords: New(),
	}

	beat := 0
	for _, pitch := range melody {
		c.Melody.AddNote(Note{On: true, Pitch: pitch, Velocity: velocity, Beat: beat, Channel: MelodyChannel})
		c.Melody.AddNote(Note{On: false, Pitch: pitch, Velocity: 0, Beat: beat + MelodyNoteTicks, Channel: MelodyChannel})
		beat += MelodyNoteTicks
	}

	beat = 0
	for _, chord := range chords {
		for _, pc := range chord {
			pitch := pc + ChordOctaveOffset
			c.Chords.AddNote(Note{On: true, Pitch: pitch, Velocity: velocity, Beat: beat, Channel: ChordChannel})
			c.Chords.AddNote(Note{On: false, Pitch: pitch, Velocity: 0, Beat: beat + ChordTicks, Channel: ChordChannel})
		}
		beat += ChordTicks
	}
	logger.Debugf("arranged %d melody notes over %d chords", len(melody), len(chords))
	return c
}
