package tardir

import (
	"bytes"
	"io"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/aurora-is-near/tarstream/src/tarstream"
)

func mkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	assert.NilError(t, os.MkdirAll(path.Join(root, "sub"), 0o755))
	assert.NilError(t, os.WriteFile(path.Join(root, "a.txt"), []byte("hello"), 0o644))
	assert.NilError(t, os.WriteFile(path.Join(root, "sub", "b.bin"), make([]byte, 700), 0o600))
	assert.NilError(t, os.Symlink("a.txt", path.Join(root, "link")))
	return root
}

// readArchive collects entry names with their content from a stream.
func readArchive(t *testing.T, data []byte) map[string]*tarstream.Entry {
	t.Helper()
	entries := make(map[string]*tarstream.Entry)
	r := tarstream.NewReader(bytes.NewReader(data))
	for {
		e, err := r.Next()
		if err == io.EOF {
			return entries
		}
		assert.NilError(t, err)
		entries[e.Name()] = e
	}
}

func TestPackRelativePaths(t *testing.T) {
	root := mkTree(t)
	buf := new(bytes.Buffer)
	assert.NilError(t, Pack(root, buf))

	entries := readArchive(t, buf.Bytes())
	for _, name := range []string{"./", "./a.txt", "./sub/", "./sub/b.bin", "./link"} {
		_, ok := entries[name]
		assert.Assert(t, ok, "missing entry %q", name)
	}
	assert.Equal(t, entries["./a.txt"].Size(), int64(5))
	assert.Equal(t, entries["./link"].Typeflag(), tarstream.TypeSymlink)
	assert.Equal(t, entries["./link"].LinkName(), "a.txt")
}

func TestPackOptions(t *testing.T) {
	root := mkTree(t)
	buf := new(bytes.Buffer)
	stamp := time.Unix(1500000000, 0)
	assert.NilError(t, Pack(root, buf,
		OptRebase("backup/"),
		OptUID(0),
		OptGID(0),
		OptNumericIDs,
		OptModTime(stamp),
		OptAppendFile(".version", 0o600, strings.NewReader("v1")),
	))

	entries := readArchive(t, buf.Bytes())
	e, ok := entries["backup/a.txt"]
	assert.Assert(t, ok)
	h := e.Header()
	assert.Equal(t, h.UserID, int64(0))
	assert.Equal(t, h.GroupID, int64(0))
	assert.Equal(t, h.UserName, "")
	assert.Equal(t, h.GroupName, "")
	assert.Equal(t, h.ModTime, stamp.Unix())

	v, ok := entries["backup/.version"]
	assert.Assert(t, ok)
	assert.Equal(t, v.Size(), int64(2))
}

func TestPackRejectsFile(t *testing.T) {
	root := mkTree(t)
	err := Pack(path.Join(root, "a.txt"), new(bytes.Buffer))
	assert.Assert(t, err != nil)
}

func TestPackUnpackRoundTrip(t *testing.T) {
	root := mkTree(t)
	buf := new(bytes.Buffer)
	assert.NilError(t, Pack(root, buf))

	dest := t.TempDir()
	assert.NilError(t, Unpack(bytes.NewReader(buf.Bytes()), dest))

	got, err := os.ReadFile(path.Join(dest, "a.txt"))
	assert.NilError(t, err)
	assert.Equal(t, string(got), "hello")

	fi, err := os.Stat(path.Join(dest, "sub", "b.bin"))
	assert.NilError(t, err)
	assert.Equal(t, fi.Size(), int64(700))

	link, err := os.Readlink(path.Join(dest, "link"))
	assert.NilError(t, err)
	assert.Equal(t, link, "a.txt")
}

func TestUnpackRejectsEscapingNames(t *testing.T) {
	buf := new(bytes.Buffer)
	w := tarstream.NewWriter(buf)
	e := tarstream.NewEntry(tarstream.Header{
		Name:     "../evil.txt",
		Typeflag: tarstream.TypeNormal,
		Size:     0,
		Magic:    tarstream.MagicUstar,
	})
	assert.NilError(t, w.PutNextEntry(e))
	assert.NilError(t, w.Close())

	err := Unpack(bytes.NewReader(buf.Bytes()), t.TempDir())
	assert.ErrorIs(t, err, ErrUnsafePath)
}

func TestListToFunc(t *testing.T) {
	root := mkTree(t)
	var files, dirs, links int
	err := ListToFunc(root, func(le *ListEntry) error {
		switch le.Type {
		case EntryTypeFile:
			files++
		case EntryTypeDirectory:
			dirs++
		case EntryTypeLink:
			links++
		}
		return nil
	})
	assert.NilError(t, err)
	assert.Equal(t, files, 2)
	assert.Equal(t, dirs, 2) // root and sub
	assert.Equal(t, links, 1)
}
