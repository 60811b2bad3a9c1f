package game

// KeyboardState records the best classification seen for each letter over a
// session. It never downgrades a letter, so the order in which results are
// applied does not change the final state.
type KeyboardState struct {
	marks [26]Classification
}

// NewKeyboardState returns a keyboard with every letter Unseen.
func NewKeyboardState() *KeyboardState { return &KeyboardState{} }

// Update folds one scored guess into the keyboard.
func (k *KeyboardState) Update(r GuessResult) {
	for _, t := range r.Tiles {
		if t.Letter < 'a' || t.Letter > 'z' {
			continue
		}
		i := idx(t.Letter)
		if t.Class > k.marks[i] {
			k.marks[i] = t.Class
		}
	}
}

// StatusOf returns the best classification for letter, or Unseen.
func (k *KeyboardState) StatusOf(letter byte) Classification {
	if letter < 'a' || letter > 'z' {
		return Unseen
	}
	return k.marks[idx(letter)]
}

// Snapshot returns the seen letters and their classifications.
func (k *KeyboardState) Snapshot() map[string]Classification {
	out := make(map[string]Classification)
	for i, c := range k.marks {
		if c != Unseen {
			out[string(rune('a'+i))] = c
		}
	}
	return out
}
