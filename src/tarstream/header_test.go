package tarstream

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCreateHeaderFile(t *testing.T) {
	h := CreateHeader("/some/dir/file.txt/", 42, 1234567, false, 0o644)
	assert.Equal(t, h.Name, "some/dir/file.txt")
	assert.Equal(t, h.NamePrefix, "")
	assert.Equal(t, h.Size, int64(42))
	assert.Equal(t, h.ModTime, int64(1234567))
	assert.Equal(t, h.Typeflag, TypeNormal)
	assert.Equal(t, h.Mode, int64(0o644))
	assert.Equal(t, h.Magic, MagicUstar)
}

func TestCreateHeaderDirectory(t *testing.T) {
	h := CreateHeader("some/dir", 9999, 0, true, 0o755)
	assert.Equal(t, h.Name, "some/dir/")
	assert.Equal(t, h.Typeflag, TypeDirectory)
	// Directories never carry content, whatever size was supplied.
	assert.Equal(t, h.Size, int64(0))
}

func TestCreateHeaderLongNameSplit(t *testing.T) {
	long := strings.Repeat("d/", 60) + "file.txt" // 128 bytes
	h := CreateHeader(long, 1, 0, false, 0o600)
	assert.Equal(t, h.Name, "file.txt")
	assert.Equal(t, h.NamePrefix+"/"+h.Name, long)
}

func TestStringFieldCodec(t *testing.T) {
	b := make([]byte, 10)
	next := putString("abc", b, 0, 10)
	assert.Equal(t, next, 10)
	assert.Equal(t, parseString(b, 0, 10), "abc")
	assert.DeepEqual(t, b[3:], make([]byte, 7))

	// Values longer than the field are truncated on write.
	putString("0123456789abcdef", b, 0, 10)
	assert.Equal(t, parseString(b, 0, 10), "0123456789")
}
