// internal/words/loader.go
//
// Word-list loading.
//
// File format: one word per line, newline-terminated. Lines are trimmed and
// lowercased; blank lines are skipped; UTF-8 and UTF-16 files with a byte
// order mark are decoded transparently. Any other line that is not a
// WordLength-letter word rejects the whole list.
//
// LoadFile preserves file order; sortedness is checked by NewDictionary.
// LoadGlob merges every matching file and sorts the result itself.
package words

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadReader reads a word list from r.
func LoadReader(r io.Reader) ([]string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))

	var out []string
	line := 0
	for sc.Scan() {
		line++
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w == "" {
			continue
		}
		if !IsWord(w) {
			return nil, &LoadError{Index: line - 1, Word: w, Err: ErrMalformedEntry}
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// LoadFile reads a word list from the file at path.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// LoadGlob loads every file matching pattern (doublestar syntax, e.g.
// "lists/**/*.txt"), then merges, sorts and de-duplicates the words.
// A pattern naming an existing file is loaded as-is with LoadFile.
func LoadGlob(pattern string) ([]string, error) {
	if st, err := os.Stat(pattern); err == nil && !st.IsDir() {
		return LoadFile(pattern)
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", pattern, fs.ErrNotExist)
	}

	var all []string
	for _, m := range matches {
		list, err := LoadFile(m)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	slices.Sort(all)
	return slices.Compact(all), nil
}

// Load reads the word list(s) named by pattern and builds a Dictionary.
func Load(pattern string) (*Dictionary, error) {
	list, err := LoadGlob(pattern)
	if err != nil {
		return nil, err
	}
	d, err := NewDictionary(list)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, err)
	}
	return d, nil
}
