package shell

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"

	"github.com/sandsh/sandsh/internal/textutil"
)

func (sh *Shell) checksumCommands() []CommandSpec {
	return []CommandSpec{
		{Name: "sum", Usage: "sum <file>", Summary: "16-bit additive checksum",
			Manual: "Print the 16-bit additive checksum of the file followed by its size and name.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdSum},
		{Name: "cksum", Usage: "cksum <file>", Summary: "CRC-32 checksum",
			Manual: "Print the CRC-32 checksum of the file followed by its size and name.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdCksum},
		{Name: "md5sum", Usage: "md5sum <file>", Summary: "MD5 digest",
			MinArgs: 1, MaxArgs: 1, Run: sh.digestCommand(md5.New)},
		{Name: "sha1sum", Usage: "sha1sum <file>", Summary: "SHA-1 digest",
			MinArgs: 1, MaxArgs: 1, Run: sh.digestCommand(sha1.New)},
		{Name: "sha256sum", Usage: "sha256sum <file>", Summary: "SHA-256 digest",
			MinArgs: 1, MaxArgs: 1, Run: sh.digestCommand(sha256.New)},
		{Name: "od", Usage: "od <file>", Summary: "octal-offset dump",
			Manual: "Dump the file 16 bytes per row with a 7-digit octal offset and a printable-character column.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdOd},
		{Name: "hexdump", Usage: "hexdump <file>", Summary: "hex-offset dump",
			Manual: "Dump the file 16 bytes per row with an 8-digit hex offset and a |sidebar| of printable characters.",
			MinArgs: 1, MaxArgs: 1, Run: sh.cmdHexdump},
	}
}

func (sh *Shell) cmdSum(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	sh.printf("%d %d %s\n", textutil.Sum16(data), len(data), args[0])
	return nil
}

func (sh *Shell) cmdCksum(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	sh.printf("%d %d %s\n", textutil.Checksum32(data), len(data), args[0])
	return nil
}

// digestCommand builds a handler that streams the file through the given
// hash and prints "<hex>  <filename>".
func (sh *Shell) digestCommand(newHash func() hash.Hash) HandlerFunc {
	return func(ctx context.Context, args []string) error {
		_, real := sh.resolve(args[0])
		f, err := sh.store.Open(real)
		if err != nil {
			return err
		}
		defer f.Close()
		h := newHash()
		if _, err := io.Copy(h, f); err != nil {
			return fmt.Errorf("failed to read '%s': %w", args[0], err)
		}
		sh.printf("%x  %s\n", h.Sum(nil), args[0])
		return nil
	}
}

func (sh *Shell) cmdOd(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.OctalDump(data))
	return nil
}

func (sh *Shell) cmdHexdump(ctx context.Context, args []string) error {
	data, err := sh.readBytes(args[0])
	if err != nil {
		return err
	}
	sh.printLines(textutil.HexDump(data))
	return nil
}
