package textutil

import (
	"fmt"
	"sort"
)

// Comm compares two files as sorted sets of unique lines and returns the
// three-way classification: lines only in the first file are prefixed
// "< ", lines only in the second "> ", and lines in both two spaces.
// Equal lines advance both cursors.
func Comm(lines1, lines2 []string) []string {
	set1 := sortedSet(lines1)
	set2 := sortedSet(lines2)

	var out []string
	i, j := 0, 0
	for i < len(set1) && j < len(set2) {
		switch {
		case set1[i] < set2[j]:
			out = append(out, "< "+set1[i])
			i++
		case set1[i] > set2[j]:
			out = append(out, "> "+set2[j])
			j++
		default:
			out = append(out, "  "+set1[i])
			i++
			j++
		}
	}
	for ; i < len(set1); i++ {
		out = append(out, "< "+set1[i])
	}
	for ; j < len(set2); j++ {
		out = append(out, "> "+set2[j])
	}
	return out
}

func sortedSet(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	var out []string
	for _, line := range lines {
		if _, ok := seen[line]; !ok {
			seen[line] = struct{}{}
			out = append(out, line)
		}
	}
	sort.Strings(out)
	return out
}

// Diff compares the files position by position. For each index where the
// lines differ it emits a change block ("{i}c{i}", "< left", "---",
// "> right", 1-based). Trailing lines present only in the first file are
// reported as appends ("{i}a{i}"), lines only in the second as deletes
// ("{i}d{i}"). This is a line-aligned comparison, not a minimal edit
// script.
func Diff(lines1, lines2 []string) []string {
	var out []string
	n := len(lines1)
	if len(lines2) < n {
		n = len(lines2)
	}
	for i := 0; i < n; i++ {
		if lines1[i] != lines2[i] {
			out = append(out,
				fmt.Sprintf("%dc%d", i+1, i+1),
				"< "+lines1[i],
				"---",
				"> "+lines2[i])
		}
	}
	for i := n; i < len(lines1); i++ {
		out = append(out,
			fmt.Sprintf("%da%d", i+1, i+1),
			"> "+lines1[i])
	}
	for i := n; i < len(lines2); i++ {
		out = append(out,
			fmt.Sprintf("%dd%d", i+1, i+1),
			"< "+lines2[i])
	}
	return out
}

// CompareBytes reports the 1-based offset of the first differing byte, or
// 0 if the shared prefix matches. sameLength is false when one input is a
// strict prefix of the other.
func CompareBytes(a, b []byte) (firstDiff int, sameLength bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i + 1, len(a) == len(b)
		}
	}
	return 0, len(a) == len(b)
}
