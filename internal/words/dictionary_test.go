package words

import (
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func randWord(r *rand.Rand, alphabet string) string {
	var b strings.Builder
	for i := 0; i < WordLength; i++ {
		b.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return b.String()
}

func linearContains(list []string, w string) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}

func TestValidateAgreesWithLinearScan(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for round := 0; round < 200; round++ {
		n := 1 + r.Intn(60)
		list := make([]string, n)
		for i := range list {
			list[i] = randWord(r, "abc")
		}
		sort.Strings(list) // duplicates kept on purpose
		d, err := NewDictionary(list)
		if err != nil {
			t.Fatalf("NewDictionary: %v", err)
		}
		for q := 0; q < 100; q++ {
			w := randWord(r, "abcd")
			if got, want := d.Validate(w), linearContains(list, w); got != want {
				t.Fatalf("Validate(%q) = %v, linear scan = %v, corpus %v", w, got, want, list)
			}
		}
		for _, w := range list {
			if !d.Validate(w) {
				t.Fatalf("Validate(%q) = false for corpus member", w)
			}
		}
	}
}

func TestValidateSharedPrefixes(t *testing.T) {
	d, err := NewDictionary([]string{"plaid", "plain", "plane", "plank", "plant", "plate", "pleat"})
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"plaid", "plane", "plant", "pleat"} {
		if !d.Validate(w) {
			t.Errorf("Validate(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"plana", "plans", "pleas", "aaaaa", "zzzzz", "plan", "planes", ""} {
		if d.Validate(w) {
			t.Errorf("Validate(%q) = true, want false", w)
		}
	}
}

func TestValidateSingleEntry(t *testing.T) {
	d, err := NewDictionary([]string{"crane"})
	if err != nil {
		t.Fatal(err)
	}
	if !d.Validate("crane") || d.Validate("crank") {
		t.Fatalf("single-entry dictionary gave wrong answers")
	}
}

func TestNewDictionaryRejects(t *testing.T) {
	cases := []struct {
		name  string
		list  []string
		want  error
		index int
	}{
		{"empty", nil, ErrEmptyCorpus, -1},
		{"unsorted", []string{"apple", "crane", "brown"}, ErrUnsorted, 2},
		{"short word", []string{"apple", "bro"}, ErrMalformedEntry, 1},
		{"uppercase", []string{"Apple"}, ErrMalformedEntry, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDictionary(tc.list)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("err %T is not *LoadError", err)
			}
			if le.Index != tc.index {
				t.Fatalf("index = %d, want %d", le.Index, tc.index)
			}
		})
	}
}

func TestDictionaryIsACopy(t *testing.T) {
	list := []string{"apple", "brown"}
	d, _ := NewDictionary(list)
	list[0] = "zzzzz"
	if !d.Validate("apple") || d.At(0) != "apple" || d.Len() != 2 {
		t.Fatalf("dictionary shares caller's slice")
	}
	ws := d.Words()
	ws[1] = "yyyyy"
	if d.At(1) != "brown" {
		t.Fatalf("Words() exposes internal slice")
	}
}

func TestNilDictionary(t *testing.T) {
	var d *Dictionary
	if d.Validate("apple") {
		t.Fatalf("nil dictionary validated a word")
	}
}
