package dictionary

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fixture words form one complete ladder (CAT..RETRACES) plus a dead end.
var fixtureWords = []string{
	"CAT", "ACT", "DOG",
	"CART",
	"CRATE", "TRACE", "REACT",
	"TRACES",
	"CRATERS",
	"RETRACES",
}

func loadFixture(t *testing.T, extra ...string) *Dictionary {
	t.Helper()
	d := New()
	list := strings.Join(append(fixtureWords, extra...), "\n")
	if err := d.Load(strings.NewReader(list)); err != nil {
		t.Fatalf("fixture load failed: %v", err)
	}
	return d
}

func TestSig(t *testing.T) {
	testCases := []struct {
		in   string
		want Signature
	}{
		{"CAT", "ACT"},
		{"cat", "ACT"},
		{"TCA", "ACT"},
		{"ACT", "ACT"},
		{"  t-c.a ", "ACT"},
		{"", ""},
		{"AABB", "AABB"},
	}
	for _, tc := range testCases {
		if got := Sig(tc.in); got != tc.want {
			t.Errorf("Sig(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Two words share a Signature iff they are rearrangements of each other.
func TestSigEquivalence(t *testing.T) {
	if Sig("CAT") != Sig("ACT") {
		t.Error("anagrams must share a signature")
	}
	if Sig("CAT") == Sig("CART") {
		t.Error("different multisets must not share a signature")
	}
	if Sig("AAB") == Sig("ABB") {
		t.Error("multiset counts matter, not just the letter set")
	}
}

func TestSigWithout(t *testing.T) {
	s := Signature("ACRT")
	if got := s.Without(1); got != "ART" {
		t.Errorf("Without(1) = %q, want ART", got)
	}
	if got := s.Without(9); got != s {
		t.Errorf("out-of-range Without must be a no-op, got %q", got)
	}
}

func TestContains(t *testing.T) {
	d := loadFixture(t)

	testCases := []struct {
		word string
		want bool
	}{
		{"CAT", true},
		{"cat", true},
		{"CaT", true},
		{"TAC", false}, // permutation of a member is not a member
		{"", false},
		{"RETRACES", true},
		{"MISSING", false},
	}
	for _, tc := range testCases {
		if got := d.Contains(tc.word); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestLoadNormalization(t *testing.T) {
	d := New()
	input := "  cat \n\nACT\nCat\n123\nc-t\ndog\n"
	if err := d.Load(strings.NewReader(input)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := d.Stats()["totalWords"]; got != 3 {
		t.Errorf("want 3 words after dedup and filtering, got %d", got)
	}
	if !d.Contains("DOG") {
		t.Error("lowercase token must be folded to uppercase")
	}
}

// brokenReader serves its data on the first read and fails afterwards,
// like a word list on a disconnecting volume.
type brokenReader struct {
	data []byte
	read bool
}

func (r *brokenReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		return copy(p, r.data), nil
	}
	return 0, errors.New("device gone")
}

func TestLoadFailureMidStream(t *testing.T) {
	d := New()
	err := d.Load(&brokenReader{data: []byte("CAT\nACT\n")})
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("want ErrSourceUnavailable, got %v", err)
	}
	if got := d.Stats()["totalWords"]; got != 0 {
		t.Errorf("failed load must publish nothing, got %d words", got)
	}
	if d.Contains("CAT") {
		t.Error("token scanned before the failure must not be visible")
	}
}

func TestLoadFileMissing(t *testing.T) {
	d := New()
	err := d.LoadFile("definitely/not/here.txt")
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("want ErrSourceUnavailable, got %v", err)
	}
	if got := d.Stats()["totalWords"]; got != 0 {
		t.Errorf("no partial dictionary allowed, got %d words", got)
	}
}

func TestFindAnagrams(t *testing.T) {
	d := loadFixture(t)

	want := []string{"ACT", "CAT"}
	if got := d.FindAnagrams("CAT"); !reflect.DeepEqual(got, want) {
		t.Errorf("FindAnagrams(CAT) = %v, want %v", got, want)
	}
	// Permuting the input letters cannot change the result.
	for _, perm := range []string{"TCA", "ATC", "cta"} {
		if got := d.FindAnagrams(perm); !reflect.DeepEqual(got, want) {
			t.Errorf("FindAnagrams(%q) = %v, want %v", perm, got, want)
		}
	}
	if got := d.FindAnagrams("XYZ"); got != nil {
		t.Errorf("unknown signature must yield nil, got %v", got)
	}
	// Full multiset is required: CAT is not an anagram of CART.
	if got := d.FindAnagrams("CART"); !reflect.DeepEqual(got, []string{"CART"}) {
		t.Errorf("FindAnagrams(CART) = %v", got)
	}
}

func TestFindValidWords(t *testing.T) {
	d := loadFixture(t, "AT", "A")

	testCases := []struct {
		letters string
		length  int
		want    []string
	}{
		{"CATR", 4, []string{"CART"}},
		{"CATR", 3, []string{"ACT", "CAT"}},
		{"CATR", 0, []string{"A", "ACT", "AT", "CART", "CAT"}},
		{"T A C", 3, []string{"ACT", "CAT"}},
		{"XYZ", 0, nil},
		{"CAT", 5, nil},
	}
	for _, tc := range testCases {
		got := d.FindValidWords(tc.letters, tc.length)
		if !reflect.DeepEqual(got, tc.want) {
			if !(len(got) == 0 && len(tc.want) == 0) {
				t.Errorf("FindValidWords(%q, %d) = %v, want %v", tc.letters, tc.length, got, tc.want)
			}
		}
	}
}

// Repeated letters must not duplicate results or explode the search.
func TestFindValidWordsRepeatedLetters(t *testing.T) {
	d := New()
	if err := d.Load(strings.NewReader("AA\nBAA\n")); err != nil {
		t.Fatal(err)
	}
	got := d.FindValidWords("AAB", 0)
	want := []string{"AA", "BAA"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindValidWords(AAB) = %v, want %v", got, want)
	}
}

func TestFindValidWordsGuard(t *testing.T) {
	d := loadFixture(t)
	if got := d.FindValidWords("ABCDEFGHI", 0); got != nil {
		t.Errorf("9-letter input must be rejected, got %v", got)
	}
	if got := d.FindValidWords("RETRACES", 8); !reflect.DeepEqual(got, []string{"RETRACES"}) {
		t.Errorf("8-letter input must still work, got %v", got)
	}
}
