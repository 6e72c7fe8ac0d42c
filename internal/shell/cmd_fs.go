package shell

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sandsh/sandsh/internal/vfs"
)

// fileCommands registers the filesystem surface. Every path argument is
// resolved through the virtual tree; nothing here can reach outside the
// sandbox root.
func (sh *Shell) fileCommands() []CommandSpec {
	return []CommandSpec{
		{Name: "ls", Usage: "ls [directory]", Summary: "list files in the current directory",
			Manual: "List the entries of the current directory, or of the given directory, one per line in sorted order.",
			MinArgs: 0, MaxArgs: 1, Run: sh.cmdLs},
		{Name: "cd", Usage: "cd <directory>", Summary: "change the current working directory",
			Manual: "Change the working directory. Paths are confined to the sandbox root; '..' at the root stays at the root.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdCd},
		{Name: "pwd", Usage: "pwd", Summary: "print the current working directory",
			Manual: "Print the absolute virtual path of the working directory.",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdPwd},
		{Name: "mkdir", Usage: "mkdir <directory>", Summary: "create a new directory",
			Manual: "Create a directory, including missing parents.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdMkdir},
		{Name: "rmdir", Usage: "rmdir <directory>", Summary: "remove a directory",
			Manual: "Remove a directory and its contents.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdRmdir},
		{Name: "rm", Usage: "rm <file>", Summary: "remove a file",
			Manual: "Remove a single file. Directories are removed with rmdir.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdRm},
		{Name: "cp", Usage: "cp <source> <dest>", Summary: "copy a file",
			Manual: "Copy the source file to the destination path.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdCp},
		{Name: "mv", Usage: "mv <source> <dest>", Summary: "move or rename a file",
			Manual: "Move the source file to the destination path, renaming it if both are in the same directory.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdMv},
		{Name: "touch", Usage: "touch <file>", Summary: "create an empty file",
			Manual: "Create the file if it does not exist.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdTouch},
		{Name: "cat", Usage: "cat <file>", Summary: "print file contents",
			Manual: "Print the full contents of the file.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdCat},
		{Name: "echo", Usage: "echo <text>...", Summary: "write text to output.txt",
			Manual: "Join the arguments with spaces and write them to output.txt in the current directory.",
			MinArgs: 1, MaxArgs: -1, Run: sh.cmdEcho},
		{Name: "ln", Usage: "ln <target> <linkname>", Summary: "create a symbolic link",
			Manual: "Create a symbolic link pointing at the target.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdLn},
		{Name: "link", Usage: "link <source> <dest>", Summary: "create a hard link",
			Manual: "Create a hard link to the source file.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdLink},
		{Name: "unlink", Usage: "unlink <file>", Summary: "remove a file",
			Manual: "Remove a single file, like rm.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdUnlink},
		{Name: "readlink", Usage: "readlink <symlink>", Summary: "print a symlink target",
			Manual: "Print the path the symbolic link points at.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdReadlink},
		{Name: "truncate", Usage: "truncate <file> <size>", Summary: "truncate or extend a file",
			Manual: "Set the file to exactly size bytes, padding with zero bytes when extending.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdTruncate},
		{Name: "stat", Usage: "stat <file>", Summary: "show file status",
			Manual: "Print size, timestamps and permissions of the file.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdStat},
		{Name: "chmod", Usage: "chmod <mode> <file>", Summary: "change file mode",
			Manual: "Change the permission bits. The mode is octal, for example 755.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdChmod},
		{Name: "chown", Usage: "chown <uid> <gid> <file>", Summary: "change file owner",
			Manual: "Change the numeric owner and group of the file.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdChown},
		{Name: "df", Usage: "df", Summary: "show disk usage of the sandbox",
			Manual: "Print the total size of everything under the sandbox root.",
			MinArgs: 0, MaxArgs: 0, Run: sh.cmdDf},
		{Name: "du", Usage: "du <path>", Summary: "show disk usage of a path",
			Manual: "Print the total size of the file or directory tree.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdDu},
		{Name: "find", Usage: "find <path> <pattern>", Summary: "find files by name pattern",
			Manual: "Walk the tree below path and print every entry whose name matches the glob pattern.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdFind},
		{Name: "grep", Usage: "grep <pattern> <file>...", Summary: "search files for a pattern",
			Manual: "Print every line of the given files that matches the regular expression.",
			MinArgs: 2, MaxArgs: -1, Run: sh.cmdGrep},
		{Name: "mktemp", Usage: "mktemp <template>", Summary: "create a temporary file",
			Manual: "Create a uniquely named file in the current directory starting with the template.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdMktemp},
		{Name: "realpath", Usage: "realpath <path>", Summary: "print the absolute path",
			Manual: "Print the cleaned absolute virtual path of the argument.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdRealpath},
		{Name: "dirname", Usage: "dirname <path>", Summary: "print the directory part of a path",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdDirname},
		{Name: "basename", Usage: "basename <path>", Summary: "print the file part of a path",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdBasename},
		{Name: "pathchk", Usage: "pathchk <path>", Summary: "check whether a file name is valid",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdPathchk},
		{Name: "file", Usage: "file <file>", Summary: "guess the file type",
			Manual: "Identify the file type from well known leading magic bytes.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdFile},
		{Name: "mime", Usage: "mime <file>", Summary: "guess the MIME type",
			Manual: "Print the MIME type derived from the file extension.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdMime},
		{Name: "split", Usage: "split <file> <prefix>", Summary: "split a file into chunks",
			Manual: "Split the file into 1024 byte pieces named prefix000, prefix001 and so on.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdSplit},
		{Name: "csplit", Usage: "csplit <file> <pattern> <prefix>", Summary: "split a file at a pattern",
			Manual: "Split the file at every occurrence of the literal pattern into prefix000, prefix001 and so on.",
			MinArgs: 3, MaxArgs: 3, Run: sh.cmdCsplit},
		{Name: "patch", Usage: "patch <file> <patchfile>", Summary: "apply a patch file",
			Manual: "Apply a simple patch: lines starting with + are appended, lines starting with - are removed.",
			MinArgs: 2, MaxArgs: 2, Run: sh.cmdPatch},
	}
}

func (sh *Shell) cmdLs(ctx context.Context, args []string) error {
	target := sh.cwd
	if len(args) == 1 {
		target = args[0]
	}
	_, real := sh.resolve(target)
	names, err := sh.store.List(real)
	if err != nil {
		return err
	}
	sh.printLines(names)
	return nil
}

func (sh *Shell) cmdCd(ctx context.Context, args []string) error {
	return sh.changeDir(args[0])
}

func (sh *Shell) cmdPwd(ctx context.Context, args []string) error {
	sh.println(sh.cwd)
	return nil
}

func (sh *Shell) cmdMkdir(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	if err := sh.store.MakeDir(real); err != nil {
		return err
	}
	sh.printf("directory '%s' created\n", args[0])
	return nil
}

func (sh *Shell) cmdRmdir(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	if !sh.store.IsDir(real) {
		return notFound("directory", args[0])
	}
	if err := sh.store.RemoveTree(real); err != nil {
		return err
	}
	sh.printf("directory '%s' removed\n", args[0])
	return nil
}

func (sh *Shell) cmdRm(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	if !sh.store.Exists(real) {
		return notFound("file", args[0])
	}
	if err := sh.store.Remove(real); err != nil {
		return err
	}
	sh.printf("file '%s' removed\n", args[0])
	return nil
}

func (sh *Shell) cmdCp(ctx context.Context, args []string) error {
	_, src := sh.resolve(args[0])
	_, dst := sh.resolve(args[1])
	if err := sh.store.Copy(src, dst); err != nil {
		return err
	}
	sh.printf("copied '%s' to '%s'\n", args[0], args[1])
	return nil
}

func (sh *Shell) cmdMv(ctx context.Context, args []string) error {
	_, src := sh.resolve(args[0])
	_, dst := sh.resolve(args[1])
	if err := sh.store.Rename(src, dst); err != nil {
		return err
	}
	sh.printf("moved '%s' to '%s'\n", args[0], args[1])
	return nil
}

func (sh *Shell) cmdTouch(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	if err := sh.store.CreateFile(real); err != nil {
		return err
	}
	sh.printf("file '%s' created\n", args[0])
	return nil
}

func (sh *Shell) cmdCat(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	data, err := sh.store.ReadFile(real)
	if err != nil {
		return err
	}
	sh.printf("%s", data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		sh.println()
	}
	return nil
}

func (sh *Shell) cmdEcho(ctx context.Context, args []string) error {
	_, real := sh.resolve("output.txt")
	content := strings.Join(args, " ")
	if err := sh.store.WriteFile(real, []byte(content)); err != nil {
		return err
	}
	sh.println("content written to 'output.txt'")
	return nil
}

func (sh *Shell) cmdLn(ctx context.Context, args []string) error {
	_, target := sh.resolve(args[0])
	_, link := sh.resolve(args[1])
	if err := sh.store.Symlink(target, link); err != nil {
		return err
	}
	sh.printf("symlink '%s' created pointing at '%s'\n", args[1], args[0])
	return nil
}

func (sh *Shell) cmdLink(ctx context.Context, args []string) error {
	_, src := sh.resolve(args[0])
	_, dst := sh.resolve(args[1])
	if err := sh.store.Hardlink(src, dst); err != nil {
		return err
	}
	sh.printf("hard link '%s' created pointing at '%s'\n", args[1], args[0])
	return nil
}

func (sh *Shell) cmdUnlink(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	if err := sh.store.Remove(real); err != nil {
		return err
	}
	sh.printf("file '%s' removed\n", args[0])
	return nil
}

func (sh *Shell) cmdReadlink(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	target, err := sh.store.Readlink(real)
	if err != nil {
		return err
	}
	sh.println(target)
	return nil
}

func (sh *Shell) cmdTruncate(ctx context.Context, args []string) error {
	size, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || size < 0 {
		return fmt.Errorf("invalid size '%s'", args[1])
	}
	_, real := sh.resolve(args[0])
	if err := sh.store.Truncate(real, size); err != nil {
		return err
	}
	sh.printf("file '%s' truncated to %d bytes\n", args[0], size)
	return nil
}

func (sh *Shell) cmdStat(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	info, err := sh.store.Stat(real)
	if err != nil {
		return err
	}
	sh.printf("file: %s\n", args[0])
	sh.printf("size: %d bytes\n", info.Size())
	sh.printf("modified: %s\n", info.ModTime().Format("2006-01-02 15:04:05"))
	sh.printf("mode: %04o\n", info.Mode().Perm())
	return nil
}

func (sh *Shell) cmdChmod(ctx context.Context, args []string) error {
	mode, err := strconv.ParseUint(args[0], 8, 32)
	if err != nil {
		return fmt.Errorf("invalid mode '%s': use octal notation, for example 755", args[0])
	}
	_, real := sh.resolve(args[1])
	if err := sh.store.Chmod(real, os.FileMode(mode)); err != nil {
		return err
	}
	sh.printf("mode of '%s' changed to %04o\n", args[1], mode)
	return nil
}

func (sh *Shell) cmdChown(ctx context.Context, args []string) error {
	uid, err1 := strconv.Atoi(args[0])
	gid, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("invalid uid or gid: use numeric values")
	}
	_, real := sh.resolve(args[2])
	if err := sh.store.Chown(real, uid, gid); err != nil {
		return err
	}
	sh.printf("owner of '%s' changed to uid %d, gid %d\n", args[2], uid, gid)
	return nil
}

func (sh *Shell) cmdDf(ctx context.Context, args []string) error {
	used, err := sh.store.DiskUsage(sh.resolver.Root())
	if err != nil {
		return err
	}
	sh.printf("/: %s used\n", vfs.FormatBytes(used))
	return nil
}

func (sh *Shell) cmdDu(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	used, err := sh.store.DiskUsage(real)
	if err != nil {
		return err
	}
	sh.printf("%s\t%s\n", vfs.FormatBytes(used), args[0])
	return nil
}

func (sh *Shell) cmdFind(ctx context.Context, args []string) error {
	_, startReal := sh.resolve(args[0])
	pattern := args[1]
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("bad pattern '%s'", pattern)
	}
	root := sh.resolver.Root()
	return sh.store.Walk(startReal, func(p string, info os.FileInfo) error {
		ok, _ := path.Match(pattern, info.Name())
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		sh.println(path.Join("/", filepath.ToSlash(rel)))
		return nil
	})
}

func (sh *Shell) cmdGrep(ctx context.Context, args []string) error {
	re, err := regexp.Compile(args[0])
	if err != nil {
		return fmt.Errorf("bad pattern '%s': %w", args[0], err)
	}
	for _, name := range args[1:] {
		_, real := sh.resolve(name)
		lines, err := sh.store.ReadLines(real)
		if err != nil {
			sh.printf("grep: %v\n", err)
			continue
		}
		for _, line := range lines {
			if re.MatchString(line) {
				sh.printf("%s:%s\n", name, line)
			}
		}
	}
	return nil
}

func (sh *Shell) cmdMktemp(ctx context.Context, args []string) error {
	name := args[0] + uuid.NewString()[:8]
	virtual, real := sh.resolve(name)
	if err := sh.store.CreateFile(real); err != nil {
		return err
	}
	sh.printf("temporary file created: %s\n", virtual)
	return nil
}

func (sh *Shell) cmdRealpath(ctx context.Context, args []string) error {
	virtual, _ := sh.resolve(args[0])
	sh.println(virtual)
	return nil
}

func (sh *Shell) cmdDirname(ctx context.Context, args []string) error {
	virtual, _ := sh.resolve(args[0])
	sh.println(vfs.Dir(virtual))
	return nil
}

func (sh *Shell) cmdBasename(ctx context.Context, args []string) error {
	virtual, _ := sh.resolve(args[0])
	sh.println(vfs.Base(virtual))
	return nil
}

func (sh *Shell) cmdPathchk(ctx context.Context, args []string) error {
	name := args[0]
	switch {
	case strings.ContainsRune(name, 0):
		sh.printf("file name '%s' is invalid: contains a NUL byte\n", name)
	case len(vfs.Base(vfs.Join(sh.cwd, name))) > 255:
		sh.printf("file name '%s' is invalid: component longer than 255 bytes\n", name)
	default:
		sh.printf("file name '%s' is valid\n", name)
	}
	return nil
}

// magic sniffing mirrors a handful of well known signatures.
func (sh *Shell) cmdFile(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	data, err := sh.store.ReadFile(real)
	if err != nil {
		return err
	}
	if len(data) > 1024 {
		data = data[:1024]
	}
	kind := "unknown file type"
	switch {
	case hasPrefix(data, "\x7fELF"):
		kind = "ELF executable"
	case hasPrefix(data, "MZ"):
		kind = "Windows executable"
	case hasPrefix(data, "\x89PNG"):
		kind = "PNG image"
	case hasPrefix(data, "\xff\xd8\xff"):
		kind = "JPEG image"
	case hasPrefix(data, "GIF87a") || hasPrefix(data, "GIF89a"):
		kind = "GIF image"
	case hasPrefix(data, "#!/bin/bash"):
		kind = "Bash script"
	}
	sh.printf("%s: %s\n", args[0], kind)
	return nil
}

func (sh *Shell) cmdMime(ctx context.Context, args []string) error {
	ext := path.Ext(args[0])
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		sh.printf("%s: unknown MIME type\n", args[0])
		return nil
	}
	sh.printf("%s: %s\n", args[0], mimeType)
	return nil
}

const splitChunkSize = 1024

func (sh *Shell) cmdSplit(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	data, err := sh.store.ReadFile(real)
	if err != nil {
		return err
	}
	prefix := args[1]
	for i, off := 0, 0; off < len(data); i, off = i+1, off+splitChunkSize {
		end := off + splitChunkSize
		if end > len(data) {
			end = len(data)
		}
		_, part := sh.resolve(fmt.Sprintf("%s%03d", prefix, i))
		if err := sh.store.WriteFile(part, data[off:end]); err != nil {
			return err
		}
	}
	sh.printf("file '%s' split into '%sxxx' pieces\n", args[0], prefix)
	return nil
}

func (sh *Shell) cmdCsplit(ctx context.Context, args []string) error {
	_, real := sh.resolve(args[0])
	data, err := sh.store.ReadFile(real)
	if err != nil {
		return err
	}
	prefix := args[2]
	for i, part := range strings.Split(string(data), args[1]) {
		_, out := sh.resolve(fmt.Sprintf("%s%03d", prefix, i))
		if err := sh.store.WriteFile(out, []byte(part)); err != nil {
			return err
		}
	}
	sh.printf("file '%s' split at '%s' into '%sxxx' pieces\n", args[0], args[1], prefix)
	return nil
}

func (sh *Shell) cmdPatch(ctx context.Context, args []string) error {
	_, target := sh.resolve(args[0])
	_, patchFile := sh.resolve(args[1])
	data, err := sh.store.ReadFile(target)
	if err != nil {
		return err
	}
	patch, err := sh.store.ReadFile(patchFile)
	if err != nil {
		return err
	}
	content := string(data)
	for _, line := range strings.Split(string(patch), "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			continue
		case strings.HasPrefix(line, "+"):
			content += line[1:] + "\n"
		case strings.HasPrefix(line, "-"):
			content = strings.ReplaceAll(content, line[1:]+"\n", "")
		}
	}
	if err := sh.store.WriteFile(target, []byte(content)); err != nil {
		return err
	}
	sh.printf("patch applied to '%s'\n", args[0])
	return nil
}

func hasPrefix(data []byte, magic string) bool {
	return bytes.HasPrefix(data, []byte(magic))
}
