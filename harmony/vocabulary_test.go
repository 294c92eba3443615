package harmony

import (
	"testing"

	"github.com/schollz/accompany/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVocabularyCMajor(t *testing.T) {
	chords, err := Vocabulary(0, Major)
	require.NoError(t, err)
	require.Len(t, chords, 7)

	assert.Equal(t, music.Chord{0, 4, 7}, chords[0])
	assert.Equal(t, music.Chord{1, 4, 8}, chords[1])
	assert.Equal(t, music.Chord{2, 5, 9}, chords[2])
	assert.Equal(t, music.Chord{3, 7, 10}, chords[3])
	assert.Equal(t, music.Chord{4, 8, 11}, chords[4])
	assert.Equal(t, music.Chord{5, 8, 0}, chords[5])
	assert.Equal(t, music.Chord{6, 9, 0}, chords[6])
}

func TestVocabularyTemplates(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		qualities [7][3]int
	}{
		{
			name: "major",
			mode: Major,
			qualities: [7][3]int{
				{0, 4, 7}, {0, 3, 7}, {0, 3, 7}, {0, 4, 7}, {0, 4, 7}, {0, 3, 7}, {0, 3, 6},
			},
		},
		{
			name: "minor",
			mode: Minor,
			qualities: [7][3]int{
				{0, 3, 7}, {0, 3, 6}, {0, 4, 7}, {0, 3, 7}, {0, 3, 7}, {0, 4, 7}, {0, 3, 6},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for root := 0; root < 12; root++ {
				chords, err := Vocabulary(root, tt.mode)
				require.NoError(t, err)
				require.Len(t, chords, 7)
				for degree, chord := range chords {
					for j, pc := range chord {
						assert.GreaterOrEqual(t, pc, 0)
						assert.Less(t, pc, 12)
						assert.Equal(t, (tt.qualities[degree][j]+root+degree)%12, pc)
					}
				}
			}
		})
	}
}

func TestVocabularyInvalidRoot(t *testing.T) {
	_, err := Vocabulary(12, Major)
	assert.ErrorIs(t, err, music.ErrInvalidConfiguration)
	_, err = Vocabulary(-1, Minor)
	assert.ErrorIs(t, err, music.ErrInvalidConfiguration)
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		key         string
		root        int
		mode        Mode
		expectError bool
	}{
		{key: "C", root: 0, mode: Major},
		{key: "A minor", root: 9, mode: Minor},
		{key: "f# major", root: 6, mode: Major},
		{key: "Eb min", root: 3, mode: Minor},
		{key: "Bb", root: 10, mode: Major},
		{key: "H", expectError: true},
		{key: "C dorian", expectError: true},
		{key: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			root, mode, err := ParseKey(tt.key)
			if tt.expectError {
				assert.ErrorIs(t, err, music.ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.root, root)
			assert.Equal(t, tt.mode, mode)
		})
	}
}
