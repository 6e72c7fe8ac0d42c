package textutil

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSortLines(t *testing.T) {
	in := []string{"pear", "apple", "banana", "apple"}
	got := SortLines(in)
	want := []string{"apple", "apple", "banana", "pear"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}

	// Input must not be modified.
	if in[0] != "pear" {
		t.Error("SortLines modified its input")
	}
}

func TestSortLines_Idempotent(t *testing.T) {
	in := []string{"b", "c", "a", "c", "b"}
	once := SortLines(in)
	twice := SortLines(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("sort is not idempotent (-once +twice):\n%s", diff)
	}
}

func TestSortLines_Permutation(t *testing.T) {
	in := []string{"z", "m", "a", "m", "q"}
	got := SortLines(in)
	if len(got) != len(in) {
		t.Fatalf("expected %d lines, got %d", len(in), len(got))
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("output not sorted: %v", got)
	}
	counts := map[string]int{}
	for _, l := range in {
		counts[l]++
	}
	for _, l := range got {
		counts[l]--
	}
	for l, c := range counts {
		if c != 0 {
			t.Errorf("output is not a permutation of input: %q off by %d", l, c)
		}
	}
}

func TestUniqueLines_FirstOccurrenceOrder(t *testing.T) {
	in := []string{"b", "a", "b", "c", "a", "a"}
	got := UniqueLines(in)
	want := []string{"b", "a", "c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("uniq mismatch (-want +got):\n%s", diff)
	}
	if len(got) > len(in) {
		t.Error("uniq output longer than input")
	}
}

func TestUniqueLines_NonAdjacent(t *testing.T) {
	// The whole point: duplicates separated by other lines still collapse,
	// unlike POSIX uniq.
	got := UniqueLines([]string{"x", "y", "x"})
	want := []string{"x", "y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("non-adjacent duplicate survived (-want +got):\n%s", diff)
	}
}

func TestReverseLines(t *testing.T) {
	got := ReverseLines([]string{"1", "2", "3"})
	want := []string{"3", "2", "1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tac mismatch (-want +got):\n%s", diff)
	}
}

func TestReverseRunes(t *testing.T) {
	if got := ReverseRunes("abc"); got != "cba" {
		t.Errorf("expected cba, got %q", got)
	}
	if got := ReverseRunes(""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestNumberLines(t *testing.T) {
	got := NumberLines([]string{"a", "b"})
	want := []string{"1\ta", "2\tb"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nl mismatch (-want +got):\n%s", diff)
	}
}

func TestFoldLines(t *testing.T) {
	got := FoldLines([]string{"abcdefg", "", "hi"}, 3)
	want := []string{"abc", "def", "g", "", "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fold mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tb", 8); got != "a       b" {
		t.Errorf("expand mismatch: %q", got)
	}
	if got := ExpandTabs("\t", 4); got != "    " {
		t.Errorf("expand at column 0 mismatch: %q", got)
	}
}

func TestUnexpandTabs(t *testing.T) {
	if got := UnexpandTabs("    x    y"); got != "\tx\ty" {
		t.Errorf("unexpand mismatch: %q", got)
	}
}

func TestColumnate(t *testing.T) {
	got := Columnate([]string{"a bb", "ccc d"})
	want := []string{"a   bb", "ccc d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("column mismatch (-want +got):\n%s", diff)
	}
}

func TestColrm(t *testing.T) {
	if got := Colrm("abcdef", 2, 4); got != "aef" {
		t.Errorf("colrm mismatch: %q", got)
	}
	if got := Colrm("ab", 5, 9); got != "ab" {
		t.Errorf("colrm out of range mismatch: %q", got)
	}
}

func TestCutField(t *testing.T) {
	got := CutField([]string{"a b c", "x y", "z"}, 2)
	want := []string{"b", "y"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cut mismatch (-want +got):\n%s", diff)
	}
}

func TestPasteLines(t *testing.T) {
	got := PasteLines([][]string{{"1", "2", "3"}, {"a", "b"}})
	want := []string{"1\ta", "2\tb", "3\t"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paste mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslate(t *testing.T) {
	if got := Translate("hello", "el", "ip"); got != "hippo" {
		t.Errorf("tr mismatch: %q", got)
	}
	if got := Translate("abc", "", "x"); got != "abc" {
		t.Errorf("tr with empty set mismatch: %q", got)
	}
}

func TestJoinFiles(t *testing.T) {
	left := []string{"1 alice", "2 bob"}
	right := []string{"1 admin", "3 guest"}
	got := JoinFiles(left, right, 1)
	want := []string{"1 alice admin"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("join mismatch (-want +got):\n%s", diff)
	}
}

func TestShuffleLines_IsPermutation(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e"}
	got := ShuffleLines(in, rand.New(rand.NewSource(1)))
	if len(got) != len(in) {
		t.Fatalf("expected %d lines, got %d", len(in), len(got))
	}
	counts := map[string]int{}
	for _, l := range in {
		counts[l]++
	}
	for _, l := range got {
		counts[l]--
	}
	for l, c := range counts {
		if c != 0 {
			t.Errorf("shuffle lost or duplicated %q (off by %d)", l, c)
		}
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("the quick brown fox jumps", 10)
	want := []string{"the quick", "brown fox", "jumps"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestSeq(t *testing.T) {
	got := Seq(1, 1, 3)
	want := []string{"1", "2", "3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("seq mismatch (-want +got):\n%s", diff)
	}

	got = Seq(2, 3, 10)
	want = []string{"2", "5", "8"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("seq with increment mismatch (-want +got):\n%s", diff)
	}

	if got := Seq(1, 0, 5); got != nil {
		t.Errorf("seq with zero increment should be empty, got %v", got)
	}
}
