package composer

import (
	"fmt"

	"github.com/schollz/accompany/harmony"
	"github.com/schollz/accompany/midifile"
	"github.com/schollz/accompany/music"
	"github.com/schollz/jsonstore"
	log "github.com/sirupsen/logrus"
)

// Piece is a generated melody and the chords chosen to go with it,
// one chord for every four notes.
type Piece struct {
	ID        string                    `json:"id"`
	Melody    music.Melody              `json:"melody"`
	Chords    []music.Chord             `json:"chords"`
	Fitness   int                       `json:"fitness"`
	Requested int                       `json:"requested"`
	Truncated bool                      `json:"truncated"`
	Root      int                       `json:"root"`
	Mode      string                    `json:"mode"`
	Seed      int64                     `json:"seed"`
	Velocity  int                       `json:"velocity"`
	BPM       int                       `json:"bpm"`
	History   []harmony.GenerationStats `json:"history"`
}

// Arrange lays the piece out on ticks.
func (p *Piece) Arrange() *music.Composition {
	return music.Arrange(p.Melody, p.Chords, p.Velocity)
}

// WriteMIDI writes the piece as a playable MIDI file.
func (p *Piece) WriteMIDI(filename string) error {
	return midifile.Write(filename, p.Arrange(), p.BPM)
}

// Save stores the piece in a JSON store under its ID, alongside any
// pieces already saved in the same file.
func (p *Piece) Save(filename string) (err error) {
	logger := log.WithFields(log.Fields{
		"function": "Piece.Save",
	})
	if p.ID == "" {
		return fmt.Errorf("piece has no id: %w", music.ErrInvalidInput)
	}
	ks, errOpen := jsonstore.Open(filename)
	if errOpen != nil {
		logger.Debugf("starting new store: %s", errOpen.Error())
		ks = new(jsonstore.JSONStore)
	}
	if err = ks.Set(p.ID, p); err != nil {
		return
	}
	if err = ks.Set("latest", p.ID); err != nil {
		return
	}
	if err = jsonstore.Save(ks, filename); err != nil {
		return fmt.Errorf("saving %s: %w", filename, err)
	}
	logger.Infof("Saved %s to %s", p.ID, filename)
	return
}

// LoadPiece reads a saved piece. An empty id loads the latest one.
func LoadPiece(filename, id string) (p *Piece, err error) {
	ks, err := jsonstore.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	if id == "" {
		if err = ks.Get("latest", &id); err != nil {
			return nil, fmt.Errorf("no latest piece in %s: %w", filename, err)
		}
	}
	p = new(Piece)
	if err = ks.Get(id, p); err != nil {
		return nil, fmt.Errorf("piece %s: %w", id, err)
	}
	return
}
