package words

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyCorpus is returned when a dictionary would hold no words.
	ErrEmptyCorpus = errors.New("words: corpus is empty")
	// ErrUnsorted is returned when the corpus is not in ascending order.
	ErrUnsorted = errors.New("words: corpus is not sorted")
	// ErrMalformedEntry is returned for an entry that is not a valid word.
	ErrMalformedEntry = errors.New("words: malformed entry")
)

// LoadError describes why a corpus was rejected. Index is the zero-based
// position of the offending entry (or line number minus one when it comes
// from the loader), -1 when the failure is not tied to one entry.
type LoadError struct {
	Index int
	Word  string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Index < 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: entry %d %q", e.Err, e.Index+1, e.Word)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Dictionary is a sorted, immutable corpus of fixed-length words.
type Dictionary struct {
	words []string
}

// NewDictionary builds a Dictionary over list, which must be sorted in
// ascending order and contain only valid words. Duplicates are allowed.
// The slice is copied.
func NewDictionary(list []string) (*Dictionary, error) {
	if len(list) == 0 {
		return nil, &LoadError{Index: -1, Err: ErrEmptyCorpus}
	}
	for i, w := range list {
		if !IsWord(w) {
			return nil, &LoadError{Index: i, Word: w, Err: ErrMalformedEntry}
		}
		if i > 0 && w < list[i-1] {
			return nil, &LoadError{Index: i, Word: w, Err: ErrUnsorted}
		}
	}
	return &Dictionary{words: append([]string(nil), list...)}, nil
}

// Len returns the number of entries, duplicates included.
func (d *Dictionary) Len() int { return len(d.words) }

// At returns the i-th entry in sorted order.
func (d *Dictionary) At(i int) string { return d.words[i] }

// Words returns a copy of the corpus.
func (d *Dictionary) Words() []string { return append([]string(nil), d.words...) }

// Validate reports whether w is an exact member of the corpus.
//
// The active range [lo, hi) is narrowed one position at a time. Every entry
// in the range shares w[:p], so within it the entries are ordered by their
// p-th letter and the sub-range matching w[p] is found with two binary
// searches. A range of one entry is settled by direct comparison.
func (d *Dictionary) Validate(w string) bool {
	if d == nil || len(w) != WordLength {
		return false
	}
	lo, hi := 0, len(d.words)
	for p := 0; p < WordLength; p++ {
		if hi-lo == 0 {
			return false
		}
		if hi-lo == 1 {
			return d.words[lo] == w
		}
		lo, hi = d.narrow(lo, hi, p, w[p])
	}
	return hi > lo
}

// narrow returns the maximal sub-range of [lo, hi) whose entries have c at
// position p. The result is empty (lo == hi) when no entry matches.
func (d *Dictionary) narrow(lo, hi, p int, c byte) (int, int) {
	n := hi - lo
	first := lo + sort.Search(n, func(i int) bool { return d.words[lo+i][p] >= c })
	if first == hi || d.words[first][p] != c {
		return first, first
	}
	last := first + sort.Search(hi-first, func(i int) bool { return d.words[first+i][p] > c })
	return first, last
}
