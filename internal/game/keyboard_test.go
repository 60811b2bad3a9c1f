package game

import (
	"math/rand"
	"testing"
)

func TestKeyboardNeverDowngrades(t *testing.T) {
	kb := NewKeyboardState()
	if got := kb.StatusOf('p'); got != Unseen {
		t.Fatalf("fresh keyboard p = %v, want unseen", got)
	}

	first, _ := Score("plane", "plank") // p l a n correct, k absent
	kb.Update(first)
	second, _ := Score("plane", "nepal") // p now only present
	kb.Update(second)

	if got := kb.StatusOf('p'); got != Correct {
		t.Fatalf("p = %v, want correct", got)
	}
	if got := kb.StatusOf('k'); got != Absent {
		t.Fatalf("k = %v, want absent", got)
	}
	if got := kb.StatusOf('e'); got != Present {
		t.Fatalf("e = %v, want present", got)
	}
	if got := kb.StatusOf('z'); got != Unseen {
		t.Fatalf("z = %v, want unseen", got)
	}
	if got := kb.StatusOf('#'); got != Unseen {
		t.Fatalf("non-letter = %v, want unseen", got)
	}
}

func TestKeyboardUpdatesCommute(t *testing.T) {
	secret := "crane"
	guesses := []string{"react", "nacre", "cares", "eerie", "crane", "scare", "acorn"}
	var results []GuessResult
	for _, g := range guesses {
		res, err := Score(secret, g)
		if err != nil {
			t.Fatal(err)
		}
		results = append(results, res)
	}

	want := NewKeyboardState()
	for _, res := range results {
		want.Update(res)
	}

	r := rand.New(rand.NewSource(1))
	for n := 0; n < 50; n++ {
		got := NewKeyboardState()
		for _, i := range r.Perm(len(results)) {
			got.Update(results[i])
		}
		if *got != *want {
			t.Fatalf("order-dependent keyboard: got %v, want %v", got.Snapshot(), want.Snapshot())
		}
	}
}

func TestKeyboardSnapshot(t *testing.T) {
	kb := NewKeyboardState()
	res, _ := Score("plane", "pious")
	kb.Update(res)
	snap := kb.Snapshot()
	if len(snap) != 5 {
		t.Fatalf("snapshot has %d letters, want 5: %v", len(snap), snap)
	}
	if snap["p"] != Correct || snap["o"] != Absent {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}
