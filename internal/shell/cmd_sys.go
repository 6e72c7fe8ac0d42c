package shell

import (
	"context"
	"fmt"
	"os/user"
	"strconv"
	"strings"
	"time"

	"github.com/sandsh/sandsh/internal/expr"
	"github.com/sandsh/sandsh/internal/textutil"
)

const version = "1.0"

func (sh *Shell) systemCommands() []CommandSpec {
	return []CommandSpec{
		{Name: "help", Usage: "help [command]", Summary: "list commands or describe one",
			Manual: "Without arguments, list every command with a one line summary. With a command name, show that command's summary.",
			MinArgs: 0, MaxArgs: 1, Run: sh.cmdHelp},
		{Name: "man", Usage: "man <command>", Summary: "show a command's manual",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdMan},
		{Name: "about", Usage: "about", Summary: "show version information",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdAbout},
		{Name: "alias", Usage: "alias <name> <command>", Summary: "define a command alias",
			Manual: "Make name expand to the given command text. An existing alias is overwritten silently.",
			MinArgs: 2, MaxArgs: -1, Run: sh.cmdAlias},
		{Name: "unalias", Usage: "unalias <name>", Summary: "remove a command alias",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdUnalias},
		{Name: "export", Usage: "export <name> <value>", Summary: "set an environment variable",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdExport},
		{Name: "env", Usage: "env", Summary: "list environment variables",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdEnv},
		{Name: "history", Usage: "history [count]", Summary: "show command history",
			Manual: "Print the session's commands with their sequence numbers, optionally only the last count entries.",
			MinArgs: 0, MaxArgs: 1, Run: sh.cmdHistory},
		{Name: "clear", Usage: "clear", Summary: "clear the screen",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdClear},
		{Name: "date", Usage: "date", Summary: "print the current date and time",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdDate},
		{Name: "cal", Usage: "cal [year]", Summary: "show a calendar",
			Manual: "Show the current month, or all twelve months of the given year.",
			MinArgs: 0, MaxArgs: 1, Run: sh.cmdCal},
		{Name: "whoami", Usage: "whoami", Summary: "print the current user name",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdWhoami},
		{Name: "uname", Usage: "uname", Summary: "print system information",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdUname},
		{Name: "uptime", Usage: "uptime", Summary: "show how long the session has been running",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdUptime},
		{Name: "ps", Usage: "ps", Summary: "show simulated processes",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdPs},
		{Name: "top", Usage: "top", Summary: "show simulated resource usage",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdTop},
		{Name: "kill", Usage: "kill <pid>", Summary: "simulate terminating a process",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdKill},
		{Name: "which", Usage: "which <command>", Summary: "show a command's path",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdWhich},
		{Name: "whereis", Usage: "whereis <command>", Summary: "show a command's binary, source and manual paths",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdWhereis},
		{Name: "sleep", Usage: "sleep <seconds>", Summary: "pause for a number of seconds",
			Manual: "Pause for the given number of seconds. Ctrl-C cancels the pause.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdSleep},
		{Name: "time", Usage: "time <command>...", Summary: "measure a command's execution time",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdTime},
		{Name: "watch", Usage: "watch <command>...", Summary: "run a command every two seconds",
			Manual: "Run the command, wait two seconds, and repeat until interrupted with Ctrl-C.",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdWatch},
		{Name: "yes", Usage: "yes <string>", Summary: "print a string until interrupted",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdYes},
		{Name: "seq", Usage: "seq <end> | seq <start> <end> | seq <start> <increment> <end>", Summary: "print a number sequence",
			MinArgs: 1, MaxArgs: 3, Run: sh.cmdSeq},
		{Name: "factor", Usage: "factor <number>", Summary: "list the divisors of a number",
			Manual: "Print every positive divisor of the number in ascending order.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdFactor},
		{Name: "numfmt", Usage: "numfmt <format> <number>", Summary: "format a number",
			Manual: "Format the number with the given printf style format string.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdNumfmt},
		{Name: "printf", Usage: "printf <format> [value]...", Summary: "print formatted text",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdPrintf},
		{Name: "test", Usage: "test <op1> <operator> <op2>", Summary: "compare two integers",
			Manual: "Compare two integers with -eq, -ne, -lt, -le, -gt or -ge and print true or false.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdTest},
		{Name: "expr", Usage: "expr <expression>", Summary: "evaluate an arithmetic expression",
			Manual: "Evaluate an arithmetic or comparison expression. Comparisons yield 1 or 0.",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdExpr},
		{Name: "bc", Usage: "bc <expression>", Summary: "evaluate an arithmetic expression",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdExpr},
	}
}

func (sh *Shell) cmdHelp(ctx context.Context, args []string) error {
	if len(args) == 1 {
		name := strings.ToLower(args[0])
		spec, ok := sh.registry.Lookup(name)
		if !ok {
			return notFound("command", name)
		}
		sh.printf("%s: %s\n", spec.Name, spec.Summary)
		return nil
	}
	sh.println("available commands:")
	for _, name := range sh.registry.Names() {
		spec, _ := sh.registry.Lookup(name)
		sh.printf("  %s: %s\n", spec.Name, spec.Summary)
	}
	return nil
}

func (sh *Shell) cmdMan(ctx context.Context, args []string) error {
	name := strings.ToLower(args[0])
	spec, ok := sh.registry.Lookup(name)
	if !ok {
		return notFound("command", name)
	}
	manual := spec.Manual
	if manual == "" {
		manual = spec.Summary + "."
	}
	sh.printf("%s\nusage: %s\n", manual, spec.Usage)
	return nil
}

func (sh *Shell) cmdAbout(ctx context.Context, args []string) error {
	sh.printf("sandsh version %s\n", version)
	sh.println("a sandboxed shell emulator")
	return nil
}

func (sh *Shell) cmdAlias(ctx context.Context, args []string) error {
	name := strings.ToLower(args[0])
	value := strings.Join(args[1:], " ")
	sh.aliases.Set(name, value)
	sh.printf("alias '%s' set to '%s'\n", name, value)
	return nil
}

func (sh *Shell) cmdUnalias(ctx context.Context, args []string) error {
	name := strings.ToLower(args[0])
	if !sh.aliases.Remove(name) {
		return notFound("alias", name)
	}
	sh.printf("alias '%s' removed\n", name)
	return nil
}

func (sh *Shell) cmdExport(ctx context.Context, args []string) error {
	sh.env.Set(args[0], args[1])
	sh.printf("environment variable '%s' set to '%s'\n", args[0], args[1])
	return nil
}

func (sh *Shell) cmdEnv(ctx context.Context, args []string) error {
	for _, name := range sh.env.Names() {
		value, _ := sh.env.Get(name)
		sh.printf("%s=%s\n", name, value)
	}
	return nil
}

func (sh *Shell) cmdHistory(ctx context.Context, args []string) error {
	n := sh.history.Len()
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 0 {
			return fmt.Errorf("invalid count '%s'", args[0])
		}
		n = v
	}
	lines, first := sh.history.Last(n)
	for i, line := range lines {
		sh.printf("%d: %s\n", first+i, line)
	}
	return nil
}

func (sh *Shell) cmdClear(ctx context.Context, args []string) error {
	sh.printf("\033[2J\033[H")
	return nil
}

func (sh *Shell) cmdDate(ctx context.Context, args []string) error {
	sh.println(time.Now().Format("2006-01-02 15:04:05"))
	return nil
}

func (sh *Shell) cmdCal(ctx context.Context, args []string) error {
	if len(args) == 1 {
		year, err := strconv.Atoi(args[0])
		if err != nil || year < 1 {
			return fmt.Errorf("invalid year '%s'", args[0])
		}
		for m := time.January; m <= time.December; m++ {
			sh.printLines(monthCalendar(year, m))
			sh.println()
		}
		return nil
	}
	now := time.Now()
	sh.printLines(monthCalendar(now.Year(), now.Month()))
	return nil
}

// monthCalendar renders one month, Monday first, 20 columns wide.
func monthCalendar(year int, month time.Month) []string {
	title := fmt.Sprintf("%s %d", month, year)
	pad := (20 - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	lines := []string{
		strings.Repeat(" ", pad) + title,
		"Mo Tu We Th Fr Sa Su",
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	cells := make([]string, 0, 7)
	for i := 0; i < offset; i++ {
		cells = append(cells, "  ")
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, fmt.Sprintf("%2d", day))
		if len(cells) == 7 {
			lines = append(lines, strings.Join(cells, " "))
			cells = cells[:0]
		}
	}
	if len(cells) > 0 {
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func (sh *Shell) cmdWhoami(ctx context.Context, args []string) error {
	u, err := user.Current()
	if err != nil {
		sh.println("unknown")
		return nil
	}
	sh.println(u.Username)
	return nil
}

func (sh *Shell) cmdUname(ctx context.Context, args []string) error {
	sh.printf("sandsh %s\n", version)
	return nil
}

func (sh *Shell) cmdUptime(ctx context.Context, args []string) error {
	up := time.Since(sh.started)
	days := int(up.Hours()) / 24
	hours := int(up.Hours()) % 24
	minutes := int(up.Minutes()) % 60
	sh.printf("up %d days %d hours %d minutes\n", days, hours, minutes)
	return nil
}

func (sh *Shell) cmdPs(ctx context.Context, args []string) error {
	sh.println("PID: 1, Name: init, Status: running")
	sh.println("PID: 2, Name: kernel, Status: running")
	sh.printf("PID: 3, Name: sandsh, Status: running\n")
	return nil
}

func (sh *Shell) cmdTop(ctx context.Context, args []string) error {
	sh.println("simulated resource usage:")
	sh.printf("cpu: %d%%\n", sh.rng.Intn(100)+1)
	sh.printf("memory: %d%%\n", sh.rng.Intn(100)+1)
	sh.printf("disk: %d%%\n", sh.rng.Intn(100)+1)
	return nil
}

func (sh *Shell) cmdKill(ctx context.Context, args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid pid '%s'", args[0])
	}
	sh.printf("terminated process %d (simulated)\n", pid)
	return nil
}

func (sh *Shell) cmdWhich(ctx context.Context, args []string) error {
	name := strings.ToLower(args[0])
	if _, ok := sh.registry.Lookup(name); !ok {
		return notFound("command", name)
	}
	sh.printf("/usr/bin/%s\n", name)
	return nil
}

func (sh *Shell) cmdWhereis(ctx context.Context, args []string) error {
	name := strings.ToLower(args[0])
	if _, ok := sh.registry.Lookup(name); !ok {
		return notFound("command", name)
	}
	sh.printf("%s: /usr/bin/%s /usr/src/%s /usr/share/man/man1/%s.1\n", name, name, name, name)
	return nil
}

// waitOr blocks for d or until the context is cancelled.
func waitOr(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (sh *Shell) cmdSleep(ctx context.Context, args []string) error {
	seconds, err := strconv.ParseFloat(args[0], 64)
	if err != nil || seconds < 0 {
		return fmt.Errorf("invalid duration '%s'", args[0])
	}
	return waitOr(ctx, time.Duration(seconds*float64(time.Second)))
}

func (sh *Shell) cmdTime(ctx context.Context, args []string) error {
	start := time.Now()
	sh.Execute(ctx, strings.Join(args, " "))
	sh.printf("elapsed: %.2f seconds\n", time.Since(start).Seconds())
	return nil
}

func (sh *Shell) cmdWatch(ctx context.Context, args []string) error {
	line := strings.Join(args, " ")
	for {
		sh.Execute(ctx, line)
		if err := waitOr(ctx, 2*time.Second); err != nil {
			return err
		}
	}
}

func (sh *Shell) cmdYes(ctx context.Context, args []string) error {
	for {
		sh.println(args[0])
		if err := waitOr(ctx, 100*time.Millisecond); err != nil {
			return err
		}
	}
}

func (sh *Shell) cmdSeq(ctx context.Context, args []string) error {
	nums := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid number '%s'", a)
		}
		nums[i] = v
	}
	var start, increment, end int
	switch len(nums) {
	case 1:
		start, increment, end = 1, 1, nums[0]
	case 2:
		start, increment, end = nums[0], 1, nums[1]
	case 3:
		start, increment, end = nums[0], nums[1], nums[2]
	}
	if increment == 0 {
		return fmt.Errorf("increment must not be zero")
	}
	sh.printLines(textutil.Seq(start, increment, end))
	return nil
}

func (sh *Shell) cmdFactor(ctx context.Context, args []string) error {
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || n < 1 {
		return fmt.Errorf("invalid number '%s'", args[0])
	}
	divisors := textutil.Factor(n)
	parts := make([]string, len(divisors))
	for i, d := range divisors {
		parts[i] = strconv.FormatInt(d, 10)
	}
	sh.printf("%d: %s\n", n, strings.Join(parts, " "))
	return nil
}

func (sh *Shell) cmdNumfmt(ctx context.Context, args []string) error {
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid number '%s'", args[1])
	}
	sh.println(fmt.Sprintf(args[0], v))
	return nil
}

func (sh *Shell) cmdPrintf(ctx context.Context, args []string) error {
	values := make([]interface{}, len(args)-1)
	for i, a := range args[1:] {
		values[i] = a
	}
	out := fmt.Sprintf(args[0], values...)
	if strings.Contains(out, "%!") {
		return fmt.Errorf("format error")
	}
	sh.println(out)
	return nil
}

func (sh *Shell) cmdTest(ctx context.Context, args []string) error {
	op1, err1 := strconv.Atoi(args[0])
	op2, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("operands must be integers")
	}
	var result bool
	switch args[1] {
	case "-eq":
		result = op1 == op2
	case "-ne":
		result = op1 != op2
	case "-lt":
		result = op1 < op2
	case "-le":
		result = op1 <= op2
	case "-gt":
		result = op1 > op2
	case "-ge":
		result = op1 >= op2
	default:
		return fmt.Errorf("unsupported operator '%s'", args[1])
	}
	sh.println(result)
	return nil
}

func (sh *Shell) cmdExpr(ctx context.Context, args []string) error {
	v, err := expr.Eval(strings.Join(args, " "), nil)
	if err != nil {
		return &ExpressionError{Err: err}
	}
	sh.println(expr.Format(v))
	return nil
}
