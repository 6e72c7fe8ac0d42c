package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandsh/sandsh/internal/expr"
	"github.com/sandsh/sandsh/internal/textutil"
)

// textCommands registers the line-oriented surface. All the algorithms
// live in internal/textutil as pure functions; handlers only do path
// resolution and printing.
func (sh *Shell) textCommands() []CommandSpec {
	return []CommandSpec{
		{Name: "sort", Usage: "sort <file>", Summary: "sort the lines of a file",
			Manual: "Print the lines of the file in lexicographic order. The file itself is not changed.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdSort},
		{Name: "uniq", Usage: "uniq <file>", Summary: "drop duplicate lines",
			Manual: "Print each distinct line once, keeping the first occurrence. Duplicates are removed across the whole file, not only when adjacent.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdUniq},
		{Name: "head", Usage: "head <file>", Summary: "print the first 10 lines",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdHead},
		{Name: "tail", Usage: "tail <file>", Summary: "print the last 10 lines",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdTail},
		{Name: "wc", Usage: "wc <file>", Summary: "count lines, words and characters",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdWc},
		{Name: "cut", Usage: "cut -f <field> <file>", Summary: "extract a whitespace-separated field",
			Manual: "Print field number N of each line, counting from 1. Lines with fewer fields are skipped.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdCut},
		{Name: "paste", Usage: "paste <file>...", Summary: "merge files line by line",
			Manual: "Print corresponding lines of the files joined with tabs. Short files contribute empty cells.",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdPaste},
		{Name: "tr", Usage: "tr <set1> <set2> <file>", Summary: "translate characters",
			Manual: "Replace each character of set1 with the character at the same position in set2. When set2 is shorter its last character is reused.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdTr},
		{Name: "sed", Usage: "sed <pattern> <replacement> <file>", Summary: "replace text",
			Manual: "Print the file with every literal occurrence of pattern replaced. The file itself is not changed.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdSed},
		{Name: "awk", Usage: "awk <condition> <file>", Summary: "print lines matching a condition",
			Manual: "Evaluate the arithmetic condition for each line, with NR bound to the line number and NF to the field count, and print lines where it holds.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdAwk},
		{Name: "nl", Usage: "nl <file>", Summary: "number the lines of a file",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdNl},
		{Name: "fold", Usage: "fold <file> <width>", Summary: "break long lines",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdFold},
		{Name: "expand", Usage: "expand <file>", Summary: "convert tabs to spaces",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdExpand},
		{Name: "unexpand", Usage: "unexpand <file>", Summary: "convert spaces to tabs",
			Manual: "Replace each run of four spaces with a tab.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdUnexpand},
		{Name: "join", Usage: "join <file1> <file2> <field>", Summary: "join files on a common field",
			Manual: "Print every pair of lines from the two files whose field number N matches.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdJoin},
		{Name: "comm", Usage: "comm <file1> <file2>", Summary: "compare two files line by line",
			Manual: "Print lines only in the first file with '< ', lines only in the second with '> ', and common lines indented. Input is deduplicated and sorted first.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdComm},
		{Name: "diff", Usage: "diff <file1> <file2>", Summary: "show differences between files",
			Manual: "Compare the files position by position and print change blocks, plus trailing additions or deletions when lengths differ.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdDiff},
		{Name: "cmp", Usage: "cmp <file1> <file2>", Summary: "compare files byte by byte",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdCmp},
		{Name: "shuf", Usage: "shuf <file>", Summary: "shuffle the lines of a file",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdShuf},
		{Name: "rev", Usage: "rev <file>", Summary: "reverse each line",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdRev},
		{Name: "tac", Usage: "tac <file>", Summary: "print lines in reverse order",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdTac},
		{Name: "tsort", Usage: "tsort <file>", Summary: "topologically sort a graph",
			Manual: "Read 'from to' edge pairs, one per line, and print the nodes in an order where every edge points forward. A cycle in the input is an error.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdTsort},
		{Name: "fmt", Usage: "fmt <file>", Summary: "reflow text to 70 columns",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdFmt},
		{Name: "pr", Usage: "pr <file>", Summary: "print a file with a header",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdPr},
		{Name: "ul", Usage: "ul <file>", Summary: "underline underscore characters",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdUl},
		{Name: "col", Usage: "col <file>", Summary: "replace tabs with spaces",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdCol},
		{Name: "colrm", Usage: "colrm <file> <start> <end>", Summary: "remove columns from each line",
			Manual: "Remove character columns start through end, counting from 1.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdColrm},
		{Name: "column", Usage: "column <file>", Summary: "align fields into columns",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdColumn},
		{Name: "strings", Usage: "strings <file>", Summary: "extract printable strings",
			Manual: "Print every run of at least four printable ASCII characters found in the file.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdStrings},
	}
}

func (sh *Shell) readLines(userPath string) ([]string, error) {
	_, real := sh.resolve(userPath)
	return sh.store.ReadLines(real)
}

func (sh *Shell) readBytes(userPath string) ([]byte, error) {
	_, real := sh.resolve(userPath)
	return sh.store.ReadFile(real)
}

func (sh *Shell) cmdSort(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.SortLines(lines))
	return nil
}

func (sh *Shell) cmdUniq(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.UniqueLines(lines))
	return nil
}

func (sh *Shell) cmdHead(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	if len(lines) > 10 {
		lines = lines[:10]
	}
	sh.printLines(lines)
	return nil
}

func (sh *Shell) cmdTail(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	if len(lines) > 10 {
		lines = lines[len(lines)-10:]
	}
	sh.printLines(lines)
	return nil
}

func (sh *Shell) cmdWc(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	content := string(data)
	lineCount := 0
	if len(content) > 0 {
		lineCount = strings.Count(content, "\n") + 1
	}
	words := len(strings.Fields(content))
	sh.printf("%d %d %d %s\n", lineCount, words, len(content), args[0])
	return nil
}

func (sh *Shell) cmdCut(ctx context.Context, args []string) error {
	if args[0] != "-f" {
		return usageErr("cut -f <field> <file>")
	}
	field, err := strconv.Atoi(args[1])
	if err != nil || field < 1 {
		return fmt.Errorf("invalid field number '%s'", args[1])
	}
	lines, err := sh.readLines(args[2])
	if err != nil {
		return err
	}
	sh.printLines(textutil.CutField(lines, field))
	return nil
}

func (sh *Shell) cmdPaste(ctx context.Context, args []string) error {
	columns := make([][]string, len(args))
	for i, name := range args {
		lines, err := sh.readLines(name)
		if err != nil {
			return err
		}
		columns[i] = lines
	}
	sh.printLines(textutil.PasteLines(columns))
	return nil
}

func (sh *Shell) cmdTr(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[2])
	if err != nil {
		return err
	}
	sh.println(textutil.Translate(string(data), args[0], args[1]))
	return nil
}

func (sh *Shell) cmdSed(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[2])
	if err != nil {
		return err
	}
	sh.println(strings.ReplaceAll(string(data), args[0], args[1]))
	return nil
}

func (sh *Shell) cmdAwk(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[1])
	if err != nil {
		return err
	}
	for i, line := range lines {
		vars := expr.Vars{
			"NR": float64(i + 1),
			"NF": float64(len(strings.Fields(line))),
		}
		v, err := expr.Eval(args[0], vars)
		if err != nil {
			return &ExpressionError{Err: err}
		}
		if v != 0 {
			sh.println(line)
		}
	}
	return nil
}

func (sh *Shell) cmdNl(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.NumberLines(lines))
	return nil
}

func (sh *Shell) cmdFold(ctx context.Context, args []string) error {
	width, err := strconv.Atoi(args[1])
	if err != nil || width < 1 {
		return fmt.Errorf("invalid width '%s'", args[1])
	}
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.FoldLines(lines, width))
	return nil
}

func (sh *Shell) cmdExpand(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		sh.println(textutil.ExpandTabs(line, 8))
	}
	return nil
}

func (sh *Shell) cmdUnexpand(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		sh.println(textutil.UnexpandTabs(line))
	}
	return nil
}

func (sh *Shell) cmdJoin(ctx context.Context, args []string) error {
	field, err := strconv.Atoi(args[2])
	if err != nil || field < 1 {
		return fmt.Errorf("invalid field number '%s'", args[2])
	}
	lines1, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	lines2, err := sh.readLines(args[1])
	if err != nil {
		return err
	}
	sh.printLines(textutil.JoinFiles(lines1, lines2, field))
	return nil
}

func (sh *Shell) cmdComm(ctx context.Context, args []string) error {
	lines1, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	lines2, err := sh.readLines(args[1])
	if err != nil {
		return err
	}
	sh.printLines(textutil.Comm(lines1, lines2))
	return nil
}

func (sh *Shell) cmdDiff(ctx context.Context, args []string) error {
	lines1, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	lines2, err := sh.readLines(args[1])
	if err != nil {
		return err
	}
	sh.printLines(textutil.Diff(lines1, lines2))
	return nil
}

func (sh *Shell) cmdCmp(ctx context.Context, args []string) error {
	data1, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	data2, err := sh.readBytes(args[1])
	if err != nil {
		return err
	}
	firstDiff, sameLength := textutil.CompareBytes(data1, data2)
	switch {
	case firstDiff > 0:
		sh.printf("files '%s' and '%s' differ at byte %d\n", args[0], args[1], firstDiff)
	case !sameLength:
		sh.printf("files '%s' and '%s' differ in length\n", args[0], args[1])
	default:
		sh.printf("files '%s' and '%s' are identical\n", args[0], args[1])
	}
	return nil
}

func (sh *Shell) cmdShuf(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.ShuffleLines(lines, sh.rng))
	return nil
}

func (sh *Shell) cmdRev(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		sh.println(textutil.ReverseRunes(line))
	}
	return nil
}

func (sh *Shell) cmdTac(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.ReverseLines(lines))
	return nil
}

func (sh *Shell) cmdTsort(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	order, err := textutil.Tsort(lines)
	if err != nil {
		return err
	}
	sh.println(strings.Join(order, " "))
	return nil
}

func (sh *Shell) cmdFmt(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.Wrap(string(data), 70))
	return nil
}

func (sh *Shell) cmdPr(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	rule := strings.Repeat("-", 72)
	sh.printf("file: %s\n", args[0])
	sh.println(rule)
	sh.printf("%s", data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		sh.println()
	}
	sh.println(rule)
	return nil
}

func (sh *Shell) cmdUl(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		sh.println(strings.ReplaceAll(line, "_", "\033[4m_\033[0m"))
	}
	return nil
}

func (sh *Shell) cmdCol(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		sh.println(strings.ReplaceAll(line, "\t", "    "))
	}
	return nil
}

func (sh *Shell) cmdColrm(ctx context.Context, args []string) error {
	start, err1 := strconv.Atoi(args[1])
	end, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil || start < 1 || end < start {
		return fmt.Errorf("invalid column range '%s %s'", args[1], args[2])
	}
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	for _, line := range lines {
		sh.println(textutil.Colrm(line, start, end))
	}
	return nil
}

func (sh *Shell) cmdColumn(ctx context.Context, args []string) error {
	lines, err := sh.readLines(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.Columnate(lines))
	return nil
}

func (sh *Shell) cmdStrings(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.ExtractStrings(data, 4))
	return nil
}
