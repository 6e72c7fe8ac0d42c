package textutil

import (
	"fmt"
	"hash/crc32"
	"strings"
)

// Sum16 computes the simple additive 16-bit rolling checksum used by the
// sum command: every byte added, truncated to 16 bits.
func Sum16(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

// Checksum32 computes an IEEE CRC-32 over the data (cksum).
func Checksum32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// HexDump renders the bytes 16 per row: an 8-digit hex offset, the hex
// bytes, and a printable-ASCII sidebar between pipes, with non-printable
// bytes shown as ".".
func HexDump(data []byte) []string {
	var out []string
	for off := 0; off < len(data); off += 16 {
		chunk := data[off:min(off+16, len(data))]
		out = append(out, fmt.Sprintf("%08x  %-48s  |%s|",
			off, hexBytes(chunk), asciiSidebar(chunk)))
	}
	return out
}

// OctalDump renders the bytes 16 per row like HexDump, but with a
// 7-digit octal offset and no pipes around the sidebar (od).
func OctalDump(data []byte) []string {
	var out []string
	for off := 0; off < len(data); off += 16 {
		chunk := data[off:min(off+16, len(data))]
		out = append(out, fmt.Sprintf("%07o: %-48s %s",
			off, hexBytes(chunk), asciiSidebar(chunk)))
	}
	return out
}

func hexBytes(chunk []byte) string {
	parts := make([]string, len(chunk))
	for i, b := range chunk {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

func asciiSidebar(chunk []byte) string {
	var b strings.Builder
	for _, c := range chunk {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// ExtractStrings scans raw bytes for runs of printable ASCII and returns
// every run of at least minLen characters. Any non-printable byte ends
// the current run.
func ExtractStrings(data []byte, minLen int) []string {
	var out []string
	var run []byte
	flush := func() {
		if len(run) >= minLen {
			out = append(out, string(run))
		}
		run = run[:0]
	}
	for _, b := range data {
		if b >= 32 && b <= 126 {
			run = append(run, b)
		} else {
			flush()
		}
	}
	flush()
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
