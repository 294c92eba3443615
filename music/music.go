package music

import (
	"encoding/json"
	"io/ioutil"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Note carries the pitch, velocity, and tick of a single
// press or release.
type Note struct {
	On       bool
	Pitch    int
	Velocity int
	Beat     int
	Channel  int
}

// Notes is a structure for sorting the notes based on current beat
type Notes []Note

func (p Notes) Len() int {
	return len(p)
}

// Less orders by beat, and releases before presses on the same beat
// so a repeated pitch is turned off before it is struck again.
func (p Notes) Less(i, j int) bool {
	if p[i].Beat != p[j].Beat {
		return p[i].Beat < p[j].Beat
	}
	if p[i].On != p[j].On {
		return !p[i].On
	}
	return false
}

func (p Notes) Swap(i, j int) {
	p[i], p[j] = p[j], p[i]
}

// Music stores all the notes of a single track
type Music struct {
	// Notes map: tick -> notes in insertion order
	Notes map[int][]Note
	sync.RWMutex
}

// New returns a new object
func New() *Music {
	m := new(Music)
	m.Lock()
	m.Notes = make(map[int][]Note)
	m.Unlock()
	return m
}

// Open opens music written by Save. The file is a JSON object keyed
// by tick, each value the list of notes on that tick:
//
//	{"0": [{"On": true, "Pitch": 60, "Velocity": 100, "Beat": 0, "Channel": 0}]}
//
// Histories recorded in the older per-pitch layout
// (tick -> pitch -> note) do not load and must be re-recorded.
func Open(filename string) (*Music, error) {
	bMusic, err := ioutil.ReadFile(filename)
	if err != nil {
		return New(), err
	}
	m := New()
	m.Lock()
	err = json.Unmarshal(bMusic, &m.Notes)
	m.Unlock()
	return m, err
}

// AddNote will add a note in a thread-safe way. Exact duplicates
// are ignored.
func (m *Music) AddNote(n Note) (err error) {
	m.Lock()
	defer m.Unlock()
	for _, existing := range m.Notes[n.Beat] {
		if existing == n {
			return
		}
	}
	m.Notes[n.Beat] = append(m.Notes[n.Beat], n)
	return
}

// GetAll retrieves every note, ordered by beat
func (m *Music) GetAll() (notes Notes) {
	logger := log.WithFields(log.Fields{
		"function": "Music.GetAll",
	})
	m.RLock()
	defer m.RUnlock()
	notes = Notes{}
	for beat := range m.Notes {
		notes = append(notes, m.Notes[beat]...)
	}
	sort.Stable(notes)
	logger.Debugf("Got %d notes", len(notes))
	return
}

// Melody returns the pitches of every press in beat order. Presses
// on the same beat are ordered by pitch.
func (m *Music) Melody() Melody {
	presses := Notes{}
	for _, note := range m.GetAll() {
		if note.On && note.Velocity > 0 {
			presses = append(presses, note)
		}
	}
	sort.SliceStable(presses, func(i, j int) bool {
		if presses[i].Beat != presses[j].Beat {
			return presses[i].Beat < presses[j].Beat
		}
		return presses[i].Pitch < presses[j].Pitch
	})
	melody := make(Melody, len(presses))
	for i, note := range presses {
		melody[i] = note.Pitch
	}
	return melody
}

// Save writes the notes in the tick-keyed JSON layout that Open reads.
func (m *Music) Save(filename string) (err error) {
	m.RLock()
	defer m.RUnlock()
	bMusic, err := json.Marshal(m.Notes)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(filename, bMusic, 0644)
}
