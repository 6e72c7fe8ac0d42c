// Package textutil provides the text-processing algorithms behind the
// shell's text commands. Every function here is pure: it takes lines or
// bytes and returns lines or bytes, with no I/O and no shell state.
//
// Some semantics are intentionally non-standard and must not be "fixed":
// UniqueLines de-duplicates across the whole input (not adjacent runs),
// and Diff is positional rather than a minimal edit script.
package textutil

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// SortLines returns the lines in non-decreasing lexicographic order.
// The sort is stable and the input slice is not modified.
func SortLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// UniqueLines returns each distinct line the first time it is seen,
// preserving first-occurrence order. This de-duplicates across the whole
// input, unlike POSIX uniq which only collapses adjacent repeats.
func UniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	var out []string
	for _, line := range lines {
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// ReverseLines returns the lines in reverse order (tac).
func ReverseLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[len(lines)-1-i] = line
	}
	return out
}

// ReverseRunes reverses each line character by character (rev).
func ReverseRunes(line string) string {
	runes := []rune(line)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// NumberLines prefixes each line with its 1-based number and a tab.
func NumberLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%d\t%s", i+1, line)
	}
	return out
}

// FoldLines breaks every line into chunks of at most width characters.
func FoldLines(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	var out []string
	for _, line := range lines {
		runes := []rune(line)
		if len(runes) == 0 {
			out = append(out, "")
			continue
		}
		for len(runes) > 0 {
			n := width
			if n > len(runes) {
				n = len(runes)
			}
			out = append(out, string(runes[:n]))
			runes = runes[n:]
		}
	}
	return out
}

// ExpandTabs replaces tabs with spaces, padding to tab stops of the given
// size.
func ExpandTabs(line string, tabSize int) string {
	if tabSize <= 0 {
		tabSize = 8
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			pad := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// UnexpandTabs replaces each run of four spaces with a tab.
func UnexpandTabs(line string) string {
	return strings.ReplaceAll(line, "    ", "\t")
}

// Columnate splits each line into whitespace fields and pads every column
// to the width of its widest cell.
func Columnate(lines []string) []string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Fields(line))
	}

	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, len(cell))
			} else if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		out = append(out, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return out
}

// Colrm removes columns start..end (1-based, inclusive) from a line.
func Colrm(line string, start, end int) string {
	runes := []rune(line)
	if start < 1 {
		start = 1
	}
	if start > len(runes) {
		return line
	}
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[:start-1]) + string(runes[end:])
}

// CutField returns the 1-based whitespace-separated field of each line.
// Lines with fewer fields produce no output row.
func CutField(lines []string, field int) []string {
	var out []string
	for _, line := range lines {
		fields := strings.Fields(line)
		if field >= 1 && field <= len(fields) {
			out = append(out, fields[field-1])
		}
	}
	return out
}

// PasteLines merges the line lists column-wise, joining with tabs.
// Shorter inputs contribute empty cells.
func PasteLines(columns [][]string) []string {
	maxLen := 0
	for _, col := range columns {
		if len(col) > maxLen {
			maxLen = len(col)
		}
	}
	out := make([]string, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		cells := make([]string, len(columns))
		for j, col := range columns {
			if i < len(col) {
				cells[j] = col[i]
			}
		}
		out = append(out, strings.Join(cells, "\t"))
	}
	return out
}

// Translate maps each character of set1 to the character at the same
// position in set2 (tr). Characters of set1 beyond the length of set2 map
// to the last character of set2.
func Translate(text, set1, set2 string) string {
	if set1 == "" || set2 == "" {
		return text
	}
	from := []rune(set1)
	to := []rune(set2)
	table := make(map[rune]rune, len(from))
	for i, r := range from {
		if i < len(to) {
			table[r] = to[i]
		} else {
			table[r] = to[len(to)-1]
		}
	}
	return strings.Map(func(r rune) rune {
		if repl, ok := table[r]; ok {
			return repl
		}
		return r
	}, text)
}

// JoinFiles joins lines1 and lines2 on the given 1-based field, emitting
// the fields of the left line followed by the right line's fields after
// the join field. Every matching pair is emitted (nested-loop join).
func JoinFiles(lines1, lines2 []string, field int) []string {
	var out []string
	for _, l1 := range lines1 {
		f1 := strings.Fields(l1)
		if field < 1 || field > len(f1) {
			continue
		}
		for _, l2 := range lines2 {
			f2 := strings.Fields(l2)
			if field > len(f2) {
				continue
			}
			if f1[field-1] == f2[field-1] {
				merged := append(append([]string{}, f1...), f2[field:]...)
				out = append(out, strings.Join(merged, " "))
			}
		}
	}
	return out
}

// ShuffleLines returns a random permutation of the lines.
func ShuffleLines(lines []string, rng *rand.Rand) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Wrap greedily re-flows the words of text into lines of at most width
// characters.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var out []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			out = append(out, line)
			line = w
		}
	}
	return append(out, line)
}

// Seq generates the integers from start to end inclusive, stepping by
// increment. A zero or wrong-signed increment yields nothing.
func Seq(start, increment, end int) []string {
	var out []string
	if increment == 0 {
		return nil
	}
	if increment > 0 {
		for i := start; i <= end; i += increment {
			out = append(out, fmt.Sprintf("%d", i))
		}
	} else {
		for i := start; i >= end; i += increment {
			out = append(out, fmt.Sprintf("%d", i))
		}
	}
	return out
}
