package ai

import (
	"fmt"

	"github.com/schollz/accompany/music"
	log "github.com/sirupsen/logrus"
)

// Rand is the source of randomness used for sampling. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Context is the pair of consecutive pitches used to predict
// the next one. Order matters.
type Context struct {
	First  int
	Second int
}

// Table maps each context to every pitch that followed it, in the
// order they were observed. Duplicates are kept so that drawing
// uniformly from the list reproduces the observed frequencies.
type Table map[Context][]int

// Build records, for every position in the melody, which pitch
// followed the two before it. Melodies shorter than three notes
// give an empty table.
func Build(melody music.Melody) Table {
	table := make(Table)
	for i := 0; i < len(melody)-2; i++ {
		key := Context{melody[i], melody[i+1]}
		table[key] = append(table[key], melody[i+2])
	}
	return table
}

// Successors returns the observed followers of a context.
func (t Table) Successors(c Context) ([]int, bool) {
	next, ok := t[c]
	return next, ok && len(next) > 0
}

// Model is a second-order Markov model of a melody. It is read-only
// once built.
type Model struct {
	source music.Melody
	table  Table
}

// Generation is a melody sampled from a Model.
type Generation struct {
	Melody music.Melody
	// Truncated is set when a context had no successors before the
	// requested length was reached.
	Truncated bool
}

// New learns the transition table from the source melody.
func New(source music.Melody) (m *Model) {
	logger := log.WithFields(log.Fields{
		"function": "Model.New",
	})
	m = &Model{
		source: source.Copy(),
		table:  Build(source),
	}
	logger.Debugf("learned %d contexts from %d notes", len(m.table), len(source))
	return m
}

// Table returns the learned transitions.
func (m *Model) Table() Table {
	return m.table
}

// Generate samples a melody of at most targetLength notes. It always
// starts with the first two notes of the source, and stops early if it
// reaches a context that never occurred in the source.
func (m *Model) Generate(rng Rand, targetLength int) (g Generation, err error) {
	logger := log.WithFields(log.Fields{
		"function": "Model.Generate",
	})
	if len(m.source) < 2 {
		err = fmt.Errorf("need at least 2 notes to generate, have %d: %w", len(m.source), music.ErrInvalidInput)
		return
	}
	if targetLength < 2 {
		err = fmt.Errorf("target length %d is below 2: %w", targetLength, music.ErrInvalidConfiguration)
		return
	}

	// grown by append; targetLength is only an upper bound
	g.Melody = music.Melody{m.source[0], m.source[1]}
	current := Context{m.source[0], m.source[1]}
	for i := 0; i < targetLength-2; i++ {
		nextNotes, ok := m.table.Successors(current)
		if !ok {
			logger.Debugf("no successors for %+v, stopping at %d notes", current, len(g.Melody))
			g.Truncated = true
			break
		}
		nextNote := nextNotes[rng.Intn(len(nextNotes))]
		g.Melody = append(g.Melody, nextNote)
		current = Context{current.Second, nextNote}
	}
	logger.Debugf("generated %d of %d notes", len(g.Melody), targetLength)
	return
}
