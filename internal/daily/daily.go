// Package daily picks the shared secret of the day.
//
// The word for a date is HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo the
// corpus size, so every player with the same corpus and salt gets the same
// word, and the sequence cannot be guessed without the salt.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Picker is a words.Picker returning the word of the day.
type Picker struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

func (p Picker) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Date returns the date key the picker currently selects for.
func (p Picker) Date() string { return DateKey(p.now()) }

// Pick returns the corpus entry for today, or "" for an empty corpus.
func (p Picker) Pick(d *words.Dictionary) string {
	if d == nil || d.Len() == 0 {
		return ""
	}
	return d.At(WordIndex(p.now(), p.Salt, d.Len()))
}

var _ words.Picker = Picker{}
