package editdist

import (
	"encoding/csv"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

var testFilename = filepath.Join("testdata", "lev_test.csv")

func TestLevenshtein(t *testing.T) {
	f, err := os.Open(testFilename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := csv.NewReader(f)

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error parsing %v: %v", testFilename, err)
		}
		if len(record) != 3 {
			t.Fatalf("Expected string,string,int but got: %v", record)
		}
		dist, err := strconv.Atoi(record[2])
		if err != nil {
			t.Fatalf("%v is not an int. %v", record[2], err)
		}
		check(t, record[0], record[1], dist)
	}
}

func check(t *testing.T, as string, bs string, exp int) {
	a := []byte(as)
	b := []byte(bs)
	dists, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if dist := dists.Dist(); exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Lev '%v' '%v'\n%v",
			exp, dist, as, bs, dists)
	}
	if dist := Levenshtein(b, a); exp != dist {
		t.Fatalf("Expected: %v. Received: %v. Lev '%v' '%v'", exp, dist, bs, as)
	}
}

func TestBaseCases(t *testing.T) {
	a := []string{"the", "cat", "sat", "on", "the", "mat"}
	b := []string{"a", "cat", "sat"}
	m, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != len(a)+1 || m.Cols() != len(b)+1 {
		t.Fatalf("Expected %dx%d table. Received %dx%d", len(a)+1, len(b)+1, m.Rows(), m.Cols())
	}
	for i := 0; i < m.Rows(); i++ {
		if m.At(i, 0) != i {
			t.Fatalf("Expected m[%d][0] == %d\n%v", i, i, m)
		}
	}
	for j := 0; j < m.Cols(); j++ {
		if m.At(0, j) != j {
			t.Fatalf("Expected m[0][%d] == %d\n%v", j, j, m)
		}
	}
}

func TestEmpty(t *testing.T) {
	m, err := Distance[string](nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Rows() != 1 || m.Cols() != 1 || m.Dist() != 0 {
		t.Fatalf("Expected 1x1 zero table. Received:\n%v", m)
	}
	ops, err := Backtrack[string](nil, nil, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 0 {
		t.Fatalf("Expected no ops. Received %v", ops)
	}
}

func TestBacktrack(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		dist int
		ops  []Op
	}{
		{"deletion", []string{"what", "is", "it"}, []string{"what", "is"}, 1,
			[]Op{Equal, Equal, Delete}},
		{"substitution", []string{"a", "b", "c"}, []string{"a", "x", "c"}, 1,
			[]Op{Equal, Substitute, Equal}},
		{"empty reference", nil, []string{"a"}, 1,
			[]Op{Insert}},
		// Matching the last hyp word first puts the insert in front
		{"insertion", []string{"cat"}, []string{"cat", "cat"}, 1,
			[]Op{Insert, Equal}},
		{"empty hypothesis", []string{"a", "b"}, nil, 2,
			[]Op{Delete, Delete}},
		// Two substitutions are just as short; insert wins the tie
		{"swap", []string{"a", "b"}, []string{"b", "a"}, 2,
			[]Op{Delete, Equal, Insert}},
		{"identity", []string{"x", "y", "z"}, []string{"x", "y", "z"}, 0,
			[]Op{Equal, Equal, Equal}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Distance(tt.a, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if m.Dist() != tt.dist {
				t.Fatalf("Expected distance %d. Received %d\n%v", tt.dist, m.Dist(), m)
			}
			ops, err := Backtrack(tt.a, tt.b, m)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(ops, tt.ops) {
				t.Fatalf("Expected ops %v. Received %v\n%v", tt.ops, ops, m)
			}
		})
	}
}

func TestBacktrackInconsistent(t *testing.T) {
	a, b := []string{"x"}, []string{"y"}
	other, err := Distance([]string{"x", "y"}, b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Backtrack(a, b, other); !errors.Is(err, ErrInconsistentMatrix) {
		t.Fatalf("Expected ErrInconsistentMatrix on mismatched dims. Received %v", err)
	}
	corrupt := Matrix{{0, 1}, {1, 5}}
	if _, err := Backtrack(a, b, corrupt); !errors.Is(err, ErrInconsistentMatrix) {
		t.Fatalf("Expected ErrInconsistentMatrix on corrupt cell. Received %v", err)
	}
}

func randomWords(rng *rand.Rand, vocab []string, max int) []string {
	n := rng.Intn(max + 1)
	words := make([]string, n)
	for i := range words {
		words[i] = vocab[rng.Intn(len(vocab))]
	}
	return words
}

// Maps each distinct word to its own rune so a rune based levenshtein can
// serve as an oracle
func toRunes(dict map[string]rune, words []string) []rune {
	rs := make([]rune, len(words))
	for i, w := range words {
		r, ok := dict[w]
		if !ok {
			r = rune('A' + len(dict))
			dict[w] = r
		}
		rs[i] = r
	}
	return rs
}

func TestRandomScripts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vocab := []string{"the", "a", "cat", "dog", "sat", "ran", "on", "mat"}
	opts := levenshtein.Options{
		InsCost: 1,
		DelCost: 1,
		SubCost: 1,
		Matches: levenshtein.IdenticalRunes,
	}
	for n := 0; n < 500; n++ {
		a := randomWords(rng, vocab, 12)
		b := randomWords(rng, vocab, 12)
		m, err := Distance(a, b)
		if err != nil {
			t.Fatal(err)
		}
		d := m.Dist()

		dict := make(map[string]rune)
		if exp := levenshtein.DistanceForStrings(toRunes(dict, a), toRunes(dict, b), opts); d != exp {
			t.Fatalf("Expected distance %d. Received %d. %v -> %v\n%v", exp, d, a, b, m)
		}
		if d > len(a)+len(b) || d < abs(len(a)-len(b)) {
			t.Fatalf("Distance %d out of bounds for %d, %d", d, len(a), len(b))
		}

		ops, err := Backtrack(a, b, m)
		if err != nil {
			t.Fatalf("%v -> %v: %v\n%v", a, b, err, m)
		}
		if errs := Count(ops).Errors(); errs != d {
			t.Fatalf("Expected %d edits in script. Received %d: %v", d, errs, ops)
		}
		got, err := Apply(a, b, ops)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(b) || (len(b) > 0 && !reflect.DeepEqual(got, b)) {
			t.Fatalf("Expected replay to give %v. Received %v (ops %v)", b, got, ops)
		}
	}
}

func abs(n int) int {
	if n >= 0 {
		return n
	}
	return -n
}

func TestOpText(t *testing.T) {
	for _, op := range []Op{Equal, Substitute, Insert, Delete} {
		text, err := op.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Op
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != op {
			t.Fatalf("Expected %v. Received %v", op, back)
		}
	}
	if Delete.Tag() != 'D' || Equal.Tag() != ' ' {
		t.Fatalf("Unexpected tags %q %q", Delete.Tag(), Equal.Tag())
	}
}

func TestCER(t *testing.T) {
	if CER(0, 0) != 0.0 {
		t.Fatalf("Expected perfect match on empty")
	}
	if CER(3, 0) != 1.0 {
		t.Fatalf("Expected 100%% error on empty reference")
	}
	if CER(1, 4) != 0.25 {
		t.Fatalf("Expected 0.25")
	}
}
