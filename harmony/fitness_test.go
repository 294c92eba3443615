package harmony

import (
	"testing"

	"github.com/schollz/accompany/music"
	"github.com/stretchr/testify/assert"
)

var (
	cMajor = music.Chord{0, 4, 7}
	dMinor = music.Chord{2, 5, 9}
	fSharp = music.Chord{6, 10, 1}
)

func TestFitness(t *testing.T) {
	// pitch classes C, D, E
	melody := music.Melody{60, 62, 64, 72}

	tests := []struct {
		name     string
		ind      Individual
		expected int
	}{
		{name: "empty", ind: Individual{}, expected: 0},
		{name: "one match", ind: Individual{cMajor}, expected: 10},
		{name: "no match", ind: Individual{fSharp}, expected: 0},
		{name: "two different matches", ind: Individual{cMajor, dMinor}, expected: 20},
		{name: "repeat", ind: Individual{cMajor, cMajor}, expected: 15},
		{name: "repeated miss", ind: Individual{fSharp, fSharp, fSharp}, expected: -10},
		{name: "mixed", ind: Individual{cMajor, cMajor, fSharp, dMinor, dMinor}, expected: 40 - 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Fitness(tt.ind, melody))
		})
	}
}

func TestFitnessWholeMelody(t *testing.T) {
	// the only F# is the last note, yet every chord containing F# is rewarded
	melody := music.Melody{60, 60, 60, 60, 60, 60, 60, 66}
	assert.Equal(t, 20, Fitness(Individual{fSharp, cMajor}, melody))
	assert.Equal(t, 0, Fitness(Individual{dMinor}, melody))
}

func TestFitnessRepeatIsOrderSensitive(t *testing.T) {
	melody := music.Melody{60}
	reordered := music.Chord{4, 7, 0}
	assert.Equal(t, 20, Fitness(Individual{cMajor, reordered}, melody))
	assert.Equal(t, 15, Fitness(Individual{cMajor, {0, 4, 7}}, melody))
}

func TestFitnessIsPure(t *testing.T) {
	melody := music.Melody{60, 62, 64, 65, 67}
	ind := Individual{cMajor, dMinor, dMinor, fSharp}
	before := ind.Copy()
	first := Fitness(ind, melody)
	assert.Equal(t, first, Fitness(ind, melody))
	assert.Equal(t, before, ind)
}
