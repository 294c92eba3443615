// Package midifile moves melodies and accompaniments in and out of
// Standard MIDI Files.
package midifile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/schollz/accompany/music"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Load returns the pitch of every note-on in the file, track by track,
// in the order the events appear.
func Load(filename string) (melody music.Melody, err error) {
	logger := log.WithFields(log.Fields{
		"function": "midifile.Load",
	})
	s, err := smf.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	melody = music.Melody{}
	for i, track := range s.Tracks {
		count := 0
		for _, ev := range track {
			var channel, key, velocity uint8
			if midi.Message(ev.Message).GetNoteStart(&channel, &key, &velocity) {
				melody = append(melody, int(key))
				count++
			}
		}
		logger.Debugf("track %d: %d notes", i, count)
	}
	logger.Infof("Loaded %d notes from %s", len(melody), filename)
	return
}

// ReadMelody loads a melody from a MIDI file, or from a JSON note
// history when the file ends in .json.
func ReadMelody(filename string) (music.Melody, error) {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		m, err := music.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filename, err)
		}
		return m.Melody(), nil
	}
	return Load(filename)
}

// Write saves the composition as a two track file: the melody with the
// tempo, then the chords.
func Write(filename string, c *music.Composition, bpm int) (err error) {
	logger := log.WithFields(log.Fields{
		"function": "midifile.Write",
	})
	if bpm <= 0 {
		return fmt.Errorf("bpm %d must be positive: %w", bpm, music.ErrInvalidConfiguration)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(music.TicksPerQuarter)

	var melodyTrack smf.Track
	melodyTrack.Add(0, smf.MetaTempo(float64(bpm)))
	addNotes(&melodyTrack, c.Melody.GetAll())
	if err = s.Add(melodyTrack); err != nil {
		return
	}

	var chordTrack smf.Track
	addNotes(&chordTrack, c.Chords.GetAll())
	if err = s.Add(chordTrack); err != nil {
		return
	}

	if err = s.WriteFile(filename); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	logger.Infof("Generated MIDI file saved as %s", filename)
	return
}

// addNotes appends notes, already sorted by beat, converting absolute
// ticks into deltas, and closes the track.
func addNotes(track *smf.Track, notes music.Notes) {
	last := 0
	for _, note := range notes {
		delta := uint32(note.Beat - last)
		last = note.Beat
		channel := uint8(note.Channel)
		key := uint8(note.Pitch)
		if note.On {
			track.Add(delta, midi.NoteOn(channel, key, uint8(note.Velocity)))
		} else {
			track.Add(delta, midi.NoteOff(channel, key))
		}
	}
	track.Close(0)
}
