package textutil

import (
	"crypto/md5"
	"encoding/hex"
	"hash/crc32"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSum16(t *testing.T) {
	if got := Sum16(nil); got != 0 {
		t.Errorf("empty sum = %d, want 0", got)
	}
	if got := Sum16([]byte{1, 2, 3}); got != 6 {
		t.Errorf("sum = %d, want 6", got)
	}
	// Wraps at 16 bits.
	data := make([]byte, 300)
	for i := range data {
		data[i] = 0xFF
	}
	total := 300 * 255
	want := uint16(total)
	if got := Sum16(data); got != want {
		t.Errorf("sum = %d, want %d", got, want)
	}
}

func TestChecksum32_MatchesIEEE(t *testing.T) {
	data := []byte("123456789")
	if got := Checksum32(data); got != crc32.ChecksumIEEE(data) {
		t.Errorf("cksum disagrees with IEEE table")
	}
	// Deterministic: identical content, identical checksum.
	if Checksum32(data) != Checksum32([]byte("123456789")) {
		t.Error("cksum not deterministic")
	}
}

func TestDigestOfEmptyInput(t *testing.T) {
	sum := md5.Sum(nil)
	if hex.EncodeToString(sum[:]) != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Error("md5 of empty input does not match the known constant")
	}
}

func TestHexDump(t *testing.T) {
	got := HexDump([]byte("AB\x00"))
	want := []string{"00000000  41 42 00                                          |AB.|"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("hexdump mismatch (-want +got):\n%s", diff)
	}
}

func TestHexDump_RowSplit(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = 'a'
	}
	got := HexDump(data)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for 20 bytes, got %d", len(got))
	}
	if !strings.HasPrefix(got[1], "00000010") {
		t.Errorf("second row offset wrong: %q", got[1])
	}
}

func TestOctalDump(t *testing.T) {
	got := OctalDump([]byte("A"))
	want := []string{"0000000: 41                                               A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("od mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractStrings(t *testing.T) {
	data := []byte("no\x00hello\x01hi\x02worlds")
	got := ExtractStrings(data, 4)
	want := []string{"hello", "worlds"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("strings mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractStrings_RunAtEnd(t *testing.T) {
	got := ExtractStrings([]byte("\x00ending"), 4)
	want := []string{"ending"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trailing run mismatch (-want +got):\n%s", diff)
	}
}

func TestFactor(t *testing.T) {
	got := Factor(12)
	want := []int64{1, 2, 3, 4, 6, 12}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("factor 12 mismatch (-want +got):\n%s", diff)
	}

	got = Factor(7)
	want = []int64{1, 7}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("factor 7 mismatch (-want +got):\n%s", diff)
	}

	if got := Factor(0); got != nil {
		t.Errorf("factor 0 should be nil, got %v", got)
	}

	got = Factor(36)
	want = []int64{1, 2, 3, 4, 6, 9, 12, 18, 36}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("factor 36 (perfect square) mismatch (-want +got):\n%s", diff)
	}
}
