// internal/game/score.go
//
// Guess scoring with duplicate-letter handling.
//
// Every letter of the secret can back at most one Correct or Present tile.
// Positions are scanned left to right against a remaining-count table
// initialised from the secret's letter multiplicities:
//
//   - exact match        → Correct, consuming one unit of that letter;
//   - other, count left  → Present, consuming one unit;
//   - otherwise          → Absent.
//
// A Correct can find the count already spent by earlier Present tiles of the
// same letter. Correct wins: the earliest such Present is downgraded to
// Absent and its unit backs the Correct instead. For every letter the number
// of Correct+Present tiles therefore never exceeds its multiplicity in the
// secret, and all exact matches are always Correct.

package game

import "github.com/robalobadob/wordle/apps/go-term/internal/words"

// Score classifies each letter of guess against secret. Both must be
// words.WordLength lowercase letters, otherwise ErrMalformedWord is returned.
func Score(secret, guess string) (GuessResult, error) {
	if !words.IsWord(secret) || !words.IsWord(guess) {
		return GuessResult{}, ErrMalformedWord
	}

	var remaining [26]int
	for i := 0; i < len(secret); i++ {
		remaining[idx(secret[i])]++
	}

	res := GuessResult{Word: guess}
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		k := idx(c)
		res.Tiles[i].Letter = c

		switch {
		case c == secret[i]:
			res.Tiles[i].Class = Correct
			if remaining[k] > 0 {
				remaining[k]--
			} else {
				reclaim(&res, i, c)
			}
		case remaining[k] > 0:
			res.Tiles[i].Class = Present
			remaining[k]--
		default:
			res.Tiles[i].Class = Absent
		}
	}

	res.Win = allCorrect(res)
	return res, nil
}

// reclaim downgrades the earliest Present tile of letter c before position
// end, handing its unit to the Correct tile at end. One always exists: the
// secret holds c at end and at every earlier Correct position of c, so at
// least one unit of c must have gone to a Present.
func reclaim(res *GuessResult, end int, c byte) {
	for j := 0; j < end; j++ {
		if res.Tiles[j].Letter == c && res.Tiles[j].Class == Present {
			res.Tiles[j].Class = Absent
			return
		}
	}
}

// idx maps a lowercase ASCII letter to 0..25.
// Inputs are validated to a–z before use.
func idx(c byte) int { return int(c - 'a') }

func allCorrect(r GuessResult) bool {
	for _, t := range r.Tiles {
		if t.Class != Correct {
			return false
		}
	}
	return true
}
