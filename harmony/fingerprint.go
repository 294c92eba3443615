package harmony

import (
	"github.com/schollz/accompany/music"
	log "github.com/sirupsen/logrus"
	hashids "github.com/speps/go-hashids"
)

var hasher = newHasher()

func newHasher() *hashids.HashIDData {
	h := hashids.NewData()
	h.Salt = "accompany"
	h.MinLength = 8
	return h
}

// Fingerprint gives a short, stable name to a chord sequence. Equal
// sequences always share a fingerprint. An empty sequence has none.
func Fingerprint(ind Individual) string {
	if len(ind) == 0 {
		return ""
	}
	return encode("Fingerprint", chordInts(make([]int, 0, 3*len(ind)), ind))
}

// PieceFingerprint names a melody together with its accompaniment. Two
// pieces share a fingerprint only when both the melody and the chords
// are equal.
func PieceFingerprint(melody music.Melody, ind Individual) string {
	if len(melody) == 0 && len(ind) == 0 {
		return ""
	}
	ints := make([]int, 0, 1+len(melody)+3*len(ind))
	ints = append(ints, len(melody))
	for _, pitch := range melody {
		// zigzag so negative pitches stay distinct and non-negative
		if pitch < 0 {
			ints = append(ints, -2*pitch-1)
		} else {
			ints = append(ints, 2*pitch)
		}
	}
	return encode("PieceFingerprint", chordInts(ints, ind))
}

func chordInts(ints []int, ind Individual) []int {
	for _, chord := range ind {
		ints = append(ints, chord[:]...)
	}
	return ints
}

func encode(function string, ints []int) string {
	h := hashids.NewWithData(hasher)
	e, err := h.Encode(ints)
	if err != nil {
		log.WithFields(log.Fields{
			"function": function,
		}).Warnf("could not encode %d values: %s", len(ints), err.Error())
		return ""
	}
	return e
}
