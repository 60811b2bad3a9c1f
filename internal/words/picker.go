package words

import (
	"crypto/rand"
	"math/big"
)

// Picker chooses the secret word for a new session from a corpus.
type Picker interface {
	Pick(d *Dictionary) string
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(d *Dictionary) string

func (f PickerFunc) Pick(d *Dictionary) string { return f(d) }

// RandomPicker picks a uniformly random corpus entry using crypto/rand.
type RandomPicker struct{}

// Pick returns a random entry, or "" for an empty dictionary.
func (RandomPicker) Pick(d *Dictionary) string {
	if d == nil || d.Len() == 0 {
		return ""
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(d.Len())))
	if err != nil {
		return d.At(0)
	}
	return d.At(int(nBig.Int64()))
}

// FixedPicker always returns the same word.
type FixedPicker string

func (f FixedPicker) Pick(*Dictionary) string { return string(f) }
