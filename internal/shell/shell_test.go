package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sandsh/sandsh/internal/vfs"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	out := &bytes.Buffer{}
	sh, err := New(Options{
		Resolver: vfs.NewResolver(root),
		Store:    vfs.NewStore(),
		Logger:   log.New(io.Discard),
		Out:      out,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return sh, out
}

func run(t *testing.T, sh *Shell, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	sh.Execute(context.Background(), line)
	return out.String()
}

func TestMkdirCdPwd(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "mkdir a")
	got := run(t, sh, out, "cd a")
	if got != "" {
		t.Errorf("cd printed %q, want nothing", got)
	}
	if got := run(t, sh, out, "pwd"); got != "/a\n" {
		t.Errorf("pwd = %q, want %q", got, "/a\n")
	}
}

func TestCdFailureKeepsCwd(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "cd nosuchdir")
	if got := run(t, sh, out, "pwd"); got != "/\n" {
		t.Errorf("pwd after failed cd = %q, want %q", got, "/\n")
	}
}

func TestCdCannotEscapeRoot(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "cd ..")
	run(t, sh, out, "cd ../../..")
	if got := run(t, sh, out, "pwd"); got != "/\n" {
		t.Errorf("pwd = %q, want %q", got, "/\n")
	}
}

func TestEchoCatRoundTrip(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "echo hello world")
	if got := run(t, sh, out, "cat output.txt"); got != "hello world\n" {
		t.Errorf("cat output.txt = %q, want %q", got, "hello world\n")
	}
}

func TestEchoWritesIntoCwd(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "mkdir sub")
	run(t, sh, out, "cd sub")
	run(t, sh, out, "echo nested")
	data, err := os.ReadFile(filepath.Join(sh.resolver.Root(), "sub", "output.txt"))
	if err != nil {
		t.Fatalf("output.txt not written in cwd: %v", err)
	}
	if string(data) != "nested" {
		t.Errorf("output.txt = %q, want %q", data, "nested")
	}
}

func TestSeq(t *testing.T) {
	sh, out := newTestShell(t)

	if got := run(t, sh, out, "seq 3"); got != "1\n2\n3\n" {
		t.Errorf("seq 3 = %q", got)
	}
	if got := run(t, sh, out, "seq 2 5"); got != "2\n3\n4\n5\n" {
		t.Errorf("seq 2 5 = %q", got)
	}
	if got := run(t, sh, out, "seq 1 2 7"); got != "1\n3\n5\n7\n" {
		t.Errorf("seq 1 2 7 = %q", got)
	}
}

func TestFactor(t *testing.T) {
	sh, out := newTestShell(t)

	if got := run(t, sh, out, "factor 12"); got != "12: 1 2 3 4 6 12\n" {
		t.Errorf("factor 12 = %q", got)
	}
}

func TestExprAndBc(t *testing.T) {
	sh, out := newTestShell(t)

	if got := run(t, sh, out, "expr 2 + 3 * 4"); got != "14\n" {
		t.Errorf("expr = %q", got)
	}
	if got := run(t, sh, out, "bc 10 / 4"); got != "2.5\n" {
		t.Errorf("bc = %q", got)
	}
	if got := run(t, sh, out, "expr 3 > 2"); got != "1\n" {
		t.Errorf("comparison = %q", got)
	}
}

func TestTestCommand(t *testing.T) {
	sh, out := newTestShell(t)

	if got := run(t, sh, out, "test 3 -gt 2"); got != "true\n" {
		t.Errorf("test 3 -gt 2 = %q", got)
	}
	if got := run(t, sh, out, "test 1 -eq 2"); got != "false\n" {
		t.Errorf("test 1 -eq 2 = %q", got)
	}
}

func TestHistoryNumbering(t *testing.T) {
	sh, out := newTestShell(t)

	sh.history.Append("pwd")
	sh.history.Append("ls")
	sh.history.Append("date")
	got := run(t, sh, out, "history 2")
	want := "2: ls\n3: date\n"
	if got != want {
		t.Errorf("history 2 = %q, want %q", got, want)
	}
}

func TestAliasExpansion(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "alias ll ls")
	if got := run(t, sh, out, "ll"); strings.Contains(got, "not found") {
		t.Errorf("aliased command failed: %q", got)
	}
}

func TestAliasChain(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "alias a b")
	run(t, sh, out, "alias b pwd")
	if got := run(t, sh, out, "a"); got != "/\n" {
		t.Errorf("chained alias = %q, want %q", got, "/\n")
	}
}

func TestAliasCycleReported(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "alias x y")
	run(t, sh, out, "alias y x")
	got := run(t, sh, out, "x")
	if !strings.Contains(got, "loop") {
		t.Errorf("alias cycle not reported: %q", got)
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	sh, out := newTestShell(t)

	got := run(t, sh, out, "pwdd")
	if !strings.Contains(got, "not found") {
		t.Errorf("missing not-found message: %q", got)
	}
	if !strings.Contains(got, `"pwd"`) {
		t.Errorf("missing suggestion: %q", got)
	}
}

func TestUsageErrorOnBadArity(t *testing.T) {
	sh, out := newTestShell(t)

	got := run(t, sh, out, "cd")
	if !strings.Contains(got, "usage: cd <directory>") {
		t.Errorf("missing usage line: %q", got)
	}
}

func TestPanicRecovered(t *testing.T) {
	sh, out := newTestShell(t)

	err := sh.registry.register(CommandSpec{
		Name: "boom", Usage: "boom", Summary: "panics",
		Run: func(ctx context.Context, args []string) error { panic("kaput") },
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got := run(t, sh, out, "boom")
	if !strings.Contains(got, "internal error") {
		t.Errorf("panic not reported as error: %q", got)
	}
	// the loop survives
	if got := run(t, sh, out, "pwd"); got != "/\n" {
		t.Errorf("shell unusable after panic: %q", got)
	}
}

func TestRegistryDescriptionsComplete(t *testing.T) {
	sh, _ := newTestShell(t)

	for _, name := range sh.registry.Names() {
		spec, ok := sh.registry.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) failed", name)
		}
		if spec.Usage == "" {
			t.Errorf("%s has no usage", name)
		}
		if spec.Summary == "" {
			t.Errorf("%s has no summary", name)
		}
	}
}

func TestHelpAndManCoverEveryCommand(t *testing.T) {
	sh, out := newTestShell(t)

	helpAll := run(t, sh, out, "help")
	for _, name := range sh.registry.Names() {
		if !strings.Contains(helpAll, "  "+name+": ") {
			t.Errorf("help output missing %q", name)
		}
		man := run(t, sh, out, "man "+name)
		if !strings.Contains(man, "usage: ") {
			t.Errorf("man %s missing usage: %q", name, man)
		}
	}
}

func TestSortUniqPipelineFiles(t *testing.T) {
	sh, out := newTestShell(t)

	path := filepath.Join(sh.resolver.Root(), "data.txt")
	if err := os.WriteFile(path, []byte("b\na\nb\nc\na\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := run(t, sh, out, "sort data.txt"); got != "a\na\nb\nb\nc\n" {
		t.Errorf("sort = %q", got)
	}
	if got := run(t, sh, out, "uniq data.txt"); got != "b\na\nc\n" {
		t.Errorf("uniq = %q", got)
	}
}

func TestMd5sumEmptyFile(t *testing.T) {
	sh, out := newTestShell(t)

	run(t, sh, out, "touch empty.bin")
	got := run(t, sh, out, "md5sum empty.bin")
	want := "d41d8cd98f00b204e9800998ecf8427e  empty.bin\n"
	if got != want {
		t.Errorf("md5sum = %q, want %q", got, want)
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	sh, out := newTestShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	sh.Execute(ctx, "watch pwd")
	got := out.String()
	if !strings.Contains(got, "interrupted") {
		t.Errorf("cancelled watch not reported as interrupted: %q", got)
	}
}

func TestRunScript(t *testing.T) {
	sh, out := newTestShell(t)

	script := "mkdir a\ncd a\npwd\nexit\npwd\n"
	if err := sh.RunScript(context.Background(), strings.NewReader(script)); err != nil {
		t.Fatalf("RunScript: %v", err)
	}
	if !strings.Contains(out.String(), "/a\n") {
		t.Errorf("script output = %q, want /a", out.String())
	}
	if strings.Count(out.String(), "/a\n") != 1 {
		t.Errorf("exit did not stop the script: %q", out.String())
	}
}
