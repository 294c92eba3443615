package ai

import (
	"math"
	"math/rand"
	"testing"

	"github.com/schollz/accompany/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cScale = music.Melody{60, 62, 64, 62, 64, 65, 67, 65, 64, 62, 60, 62, 64, 65, 67, 69}

func TestBuild(t *testing.T) {
	table := Build(music.Melody{60, 62, 64, 60, 62, 64, 60, 62, 65})

	assert.Equal(t, []int{64, 64, 65}, table[Context{60, 62}])
	assert.Equal(t, []int{60, 60}, table[Context{62, 64}])
	assert.Equal(t, []int{62, 62}, table[Context{64, 60}])
	assert.Len(t, table, 3)

	for c, next := range Build(cScale) {
		assert.NotEmpty(t, next, "context %+v", c)
	}
}

func TestBuildOrderMatters(t *testing.T) {
	table := Build(music.Melody{60, 62, 64})
	_, ok := table.Successors(Context{62, 60})
	assert.False(t, ok)
	next, ok := table.Successors(Context{60, 62})
	require.True(t, ok)
	assert.Equal(t, []int{64}, next)
}

func TestBuildShort(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build(music.Melody{60}))
	assert.Empty(t, Build(music.Melody{60, 62}))
}

func TestGenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := New(cScale)
	for _, length := range []int{2, 3, 10, 50, 200} {
		g, err := m.Generate(rng, length)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(g.Melody), length)
		assert.Equal(t, cScale[:2], g.Melody[:2])
		for i := 2; i < len(g.Melody); i++ {
			next, ok := m.Table().Successors(Context{g.Melody[i-2], g.Melody[i-1]})
			require.True(t, ok)
			assert.Contains(t, next, g.Melody[i])
		}
	}
}

func TestGenerateOnlyDrawsObservedSuccessors(t *testing.T) {
	m := New(music.Melody{60, 62, 64, 60, 62, 64, 60, 62, 65, 67})
	rng := rand.New(rand.NewSource(42))
	seen := map[int]int{}
	for i := 0; i < 500; i++ {
		g, err := m.Generate(rng, 3)
		require.NoError(t, err)
		require.Len(t, g.Melody, 3)
		seen[g.Melody[2]]++
	}
	assert.NotContains(t, seen, 67)
	assert.Len(t, seen, 2)
	// 64 was observed twice as often as 65
	assert.Greater(t, seen[64], seen[65])
}

func TestGenerateStopsEarly(t *testing.T) {
	m := New(music.Melody{60, 62, 64, 65})
	g, err := m.Generate(rand.New(rand.NewSource(1)), 10)
	require.NoError(t, err)
	assert.True(t, g.Truncated)
	assert.Equal(t, music.Melody{60, 62, 64, 65}, g.Melody)

	m = New(music.Melody{60, 62})
	g, err = m.Generate(rand.New(rand.NewSource(1)), 10)
	require.NoError(t, err)
	assert.True(t, g.Truncated)
	assert.Equal(t, music.Melody{60, 62}, g.Melody)
}

func TestGenerateHugeTarget(t *testing.T) {
	m := New(music.Melody{60, 62})
	require.NotPanics(t, func() {
		g, err := m.Generate(rand.New(rand.NewSource(1)), math.MaxInt)
		require.NoError(t, err)
		assert.True(t, g.Truncated)
		assert.Equal(t, music.Melody{60, 62}, g.Melody)
	})

	m = New(music.Melody{60, 62, 64, 65})
	g, err := m.Generate(rand.New(rand.NewSource(1)), math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, music.Melody{60, 62, 64, 65}, g.Melody)
}

func TestGenerateSeeded(t *testing.T) {
	m := New(cScale)
	a, err := m.Generate(rand.New(rand.NewSource(7)), 100)
	require.NoError(t, err)
	b, err := m.Generate(rand.New(rand.NewSource(7)), 100)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := New(music.Melody{60}).Generate(rng, 10)
	assert.ErrorIs(t, err, music.ErrInvalidInput)

	_, err = New(cScale).Generate(rng, 1)
	assert.ErrorIs(t, err, music.ErrInvalidConfiguration)
}
