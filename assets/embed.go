// Package assets embeds the default word list, used when no list is given
// to the server and by tests that need a realistic corpus.
package assets

import (
	"bytes"
	_ "embed"

	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

//go:embed words.txt
var wordsTxt []byte

// Source names the embedded list in logs and /debug/words.
const Source = "embedded:words.txt"

// Corpus returns the embedded list, one sorted 5-letter word per entry.
func Corpus() ([]string, error) {
	return words.LoadReader(bytes.NewReader(wordsTxt))
}

// Dictionary builds a Dictionary from the embedded list.
func Dictionary() (*words.Dictionary, error) {
	list, err := Corpus()
	if err != nil {
		return nil, err
	}
	return words.NewDictionary(list)
}
