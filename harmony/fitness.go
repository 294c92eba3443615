package harmony

import (
	"github.com/schollz/accompany/music"
)

const (
	// MatchReward is earned by each chord sharing a pitch class with the melody.
	MatchReward = 10
	// RepeatPenalty is paid for each chord identical to the one before it.
	RepeatPenalty = 5
)

// Individual is one candidate accompaniment, one chord per four
// melody notes.
type Individual []music.Chord

// Copy returns an independent copy of the individual.
func (ind Individual) Copy() Individual {
	c := make(Individual, len(ind))
	copy(c, ind)
	return c
}

// Fitness scores an accompaniment against the whole melody. Every chord
// is compared to every melody note, not only the notes it sounds under.
func Fitness(ind Individual, melody music.Melody) int {
	return fitness(ind, melody.PitchClasses())
}

func fitness(ind Individual, classes [12]bool) (score int) {
	for _, chord := range ind {
		if chord.Overlaps(classes) {
			score += MatchReward
		}
	}
	for i := 1; i < len(ind); i++ {
		if ind[i] == ind[i-1] {
			score -= RepeatPenalty
		}
	}
	return
}
