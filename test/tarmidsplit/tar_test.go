package tarmidsplit

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/aurora-is-near/tarstream/src/splitting"
	"github.com/aurora-is-near/tarstream/src/tardir"
	"github.com/aurora-is-near/tarstream/src/tarstream"
)

// buildArchive packs a small tree into a tar file and returns its path.
func buildArchive(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for i := 0; i < 8; i++ {
		name := path.Join(root, fmt.Sprintf("file%d.bin", i))
		if err := os.WriteFile(name, bytes.Repeat([]byte{byte(i)}, 900), 0o644); err != nil {
			t.Fatalf("WriteFile: %s", err)
		}
	}
	if err := os.WriteFile(path.Join(root, "hello.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}
	fn := path.Join(t.TempDir(), "data.tar")
	f, err := os.Create(fn)
	if err != nil {
		t.Fatalf("Create: %s", err)
	}
	if err := tardir.Pack(root, f); err != nil {
		t.Fatalf("Pack: %s", err)
	}
	return fn
}

func countEntries(t *testing.T, fn string) int {
	t.Helper()
	f, err := os.Open(fn)
	if err != nil {
		t.Fatalf("Open: %s", err)
	}
	defer func() { _ = f.Close() }()
	tr := tarstream.NewReader(f)
	count := 0
	for {
		if _, err := tr.Next(); err == io.EOF {
			return count
		} else if err != nil {
			t.Fatalf("Next: %s", err)
		}
		count++
	}
}

func TestSplitTarMiddle(t *testing.T) {
	fn := buildArchive(t)
	total := countEntries(t, fn)
	if err := splitting.SplitTarMiddle(fn); err != nil {
		t.Fatalf("SplitTarMiddle: %s", err)
	}
	part1 := countEntries(t, fn)
	part2 := countEntries(t, fn+".part2")
	if part1 == 0 || part2 == 0 {
		t.Errorf("Degenerate split: %d %d", part1, part2)
	}
	if part1+part2 != total {
		t.Errorf("Entries lost in split: %d + %d != %d", part1, part2, total)
	}
}

func TestHash(t *testing.T) {
	fn := buildArchive(t)
	out := new(bytes.Buffer)
	if err := splitting.ReadSHA256(fn, out); err != nil {
		t.Fatalf("ReadSHA256: %s", err)
	}
	want := fmt.Sprintf("%x  ./hello.txt", sha256.Sum256([]byte("hello")))
	if !strings.Contains(out.String(), want) {
		t.Errorf("Missing digest line %q in:\n%s", want, out.String())
	}
}
