// internal/words/words.go
//
// Word-list management for the game engine.
//
// Responsibilities:
//   - Hold the sorted corpus of permitted guesses (Dictionary).
//   - Load corpora from files, glob patterns, or readers (loader.go).
//   - Pick secrets from a corpus (picker.go).
//   - Swap in reloaded corpora for new sessions (corpus.go).
//
// Constraints:
//   • Words are exactly WordLength lowercase letters (a–z).
//   • A Dictionary is immutable once built and safe for concurrent readers.
package words

// WordLength is the fixed number of letters in every word.
const WordLength = 5

// IsWord reports whether s is exactly WordLength lowercase ASCII letters.
func IsWord(s string) bool {
	if len(s) != WordLength {
		return false
	}
	return isAlpha(s)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
