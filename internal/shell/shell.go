package shell

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/sandsh/sandsh/internal/vfs"
)

// Shell holds the full session state: the virtual working directory, the
// alias table, the environment, the history, and the command registry.
// It is single-threaded: one command runs to completion before the next
// prompt is shown.
type Shell struct {
	resolver *vfs.Resolver
	store    *vfs.Store
	logger   *log.Logger
	out      io.Writer

	cwd      string
	aliases  *AliasTable
	env      *Environment
	history  *History
	registry *Registry

	started time.Time
	rng     *rand.Rand
}

// Options configures a new Shell.
type Options struct {
	Resolver *vfs.Resolver
	Store    *vfs.Store
	Logger   *log.Logger
	Out      io.Writer
}

// New creates a Shell with an empty alias table, environment and history,
// the virtual working directory at "/", and the full command registry.
func New(opts Options) (*Shell, error) {
	sh := &Shell{
		resolver: opts.Resolver,
		store:    opts.Store,
		logger:   opts.Logger,
		out:      opts.Out,
		cwd:      "/",
		aliases:  NewAliasTable(),
		env:      NewEnvironment(),
		history:  NewHistory(),
		started:  time.Now(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if sh.out == nil {
		sh.out = os.Stdout
	}

	reg := newRegistry()
	for _, group := range [][]CommandSpec{
		sh.fileCommands(),
		sh.textCommands(),
		sh.checksumCommands(),
		sh.systemCommands(),
	} {
		if err := reg.registerAll(group); err != nil {
			return nil, fmt.Errorf("failed to build registry: %w", err)
		}
	}
	sh.registry = reg
	return sh, nil
}

// Cwd returns the virtual current directory.
func (sh *Shell) Cwd() string {
	return sh.cwd
}

// Prompt returns the prompt shown before each read.
func (sh *Shell) Prompt() string {
	return sh.cwd + "$ "
}

// Registry exposes the command registry (read-only).
func (sh *Shell) Registry() *Registry {
	return sh.registry
}

// resolve maps a user-supplied path onto the virtual tree, returning the
// cleaned virtual path and its real counterpart.
func (sh *Shell) resolve(userPath string) (virtual, real string) {
	return sh.resolver.Resolve(sh.cwd, userPath)
}

// changeDir resolves path and, if it names an existing directory, makes
// it the new virtual working directory. The real process working
// directory is never touched.
func (sh *Shell) changeDir(path string) error {
	virtual, real := sh.resolve(path)
	if !sh.store.IsDir(real) {
		return notFound("directory", path)
	}
	sh.cwd = virtual
	return nil
}

func (sh *Shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *Shell) println(args ...interface{}) {
	fmt.Fprintln(sh.out, args...)
}

// printLines writes each line followed by a newline.
func (sh *Shell) printLines(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(sh.out, line)
	}
}

// Run drives the read-dispatch-print loop until exit, end of input, or an
// interrupt at the prompt. An interrupt while a command is running only
// cancels that command; session state survives and the loop continues.
func (sh *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          sh.Prompt(),
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize line reader: %w", err)
	}
	defer rl.Close()

	sh.logger.Info("session started", "root", sh.resolver.Root())

	for {
		rl.SetPrompt(sh.Prompt())
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			sh.println("Interrupted.")
			sh.logger.Info("session interrupted by user")
			return nil
		}
		if err == io.EOF {
			sh.println("Bye.")
			sh.logger.Info("session ended at end of input")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			sh.println("Bye.")
			sh.logger.Info("session ended by exit")
			return nil
		}

		sh.history.Append(line)

		// Ctrl-C while a command runs cancels just that command.
		cmdCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
		sh.Execute(cmdCtx, line)
		stop()
	}
}

// RunScript feeds lines from r through the dispatcher, for non-interactive
// use and tests. exit stops early.
func (sh *Shell) RunScript(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			return nil
		}
		sh.history.Append(line)
		sh.Execute(ctx, line)
	}
	return nil
}

// completer offers every registered command name for tab completion.
func (sh *Shell) completer() readline.AutoCompleter {
	names := sh.registry.Names()
	items := make([]readline.PrefixCompleterInterface, len(names))
	for i, name := range names {
		items[i] = readline.PcItem(name)
	}
	return readline.NewPrefixCompleter(items...)
}
