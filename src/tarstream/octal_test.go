package tarstream

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestOctalRoundTrip(t *testing.T) {
	// 8589934591 is the largest value 11 octal digits can hold; the two
	// values above it must take the GNU binary branch.
	for _, v := range []int64{0, 1, 511, 8589934591, 8589934592, 1 << 40} {
		b := make([]byte, 12)
		next := putOctal(v, b, 0, 12)
		assert.Equal(t, next, 12)
		assert.Equal(t, parseOctal(b, 0, 12), v)
	}
}

func TestOctalPlainEncoding(t *testing.T) {
	b := make([]byte, 8)
	putOctal(0o644, b, 0, 8)
	assert.Equal(t, string(b[:7]), "0000644")
	assert.Equal(t, b[7], byte(0))
}

func TestOctalGNUEncoding(t *testing.T) {
	b := make([]byte, 12)
	putOctal(8589934592, b, 0, 12)
	assert.Equal(t, b[0], byte(0x80))
	assert.Equal(t, b[1], byte(0))
	assert.Equal(t, b[2], byte(0))
	assert.Equal(t, b[3], byte(0))
	// 8589934592 == 1<<33: big-endian bytes 4..11.
	assert.DeepEqual(t, b[4:12], []byte{0, 0, 0, 2, 0, 0, 0, 0})
}

func TestOctalNarrowFieldStaysOctal(t *testing.T) {
	// Only 12-wide fields may use the GNU form; an 8-wide field encodes
	// however many octal digits fit.
	b := make([]byte, 8)
	putOctal(0o7777777, b, 0, 8)
	assert.Equal(t, parseOctal(b, 0, 8), int64(0o7777777))
}

func TestParseOctalPadding(t *testing.T) {
	assert.Equal(t, parseOctal([]byte("   755\x00 "), 0, 8), int64(0o755))
	assert.Equal(t, parseOctal([]byte("0000644\x00"), 0, 8), int64(0o644))
	// A space after digits terminates the value.
	assert.Equal(t, parseOctal([]byte("  12 34\x00"), 0, 8), int64(0o12))
	// An all-NUL field is zero.
	assert.Equal(t, parseOctal(make([]byte, 8), 0, 8), int64(0))
}

func TestChecksumOctalTrailingSpace(t *testing.T) {
	b := make([]byte, 8)
	next := putChecksumOctal(0o6060, b, 0, 8)
	assert.Equal(t, next, 8)
	assert.Equal(t, string(b[:6]), "006060")
	assert.Equal(t, b[6], byte(0))
	assert.Equal(t, b[7], byte(' '))
	assert.Equal(t, parseOctal(b, 0, 8), int64(0o6060))
}
