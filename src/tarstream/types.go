// Package tarstream reads and writes POSIX ustar archives as sequential
// streams of 512-byte blocks. It exposes entry-by-entry access without
// seeking: a Reader clips content reads to each entry's declared size and
// skips inter-entry padding, a Writer enforces the symmetric size and
// padding contracts while producing a stream.
package tarstream

const (
	// BlockSize is the fixed tar block unit. Headers occupy exactly one
	// block, content is padded to a block multiple.
	BlockSize int64 = 512

	// HeaderSize is the size of a serialized entry header.
	HeaderSize int64 = 512

	// FooterSize is the end-of-archive marker: two all-zero blocks.
	FooterSize = BlockSize * 2
)

// Header field widths, in table order.
const (
	nameLen       = 100
	modeLen       = 8
	uidLen        = 8
	gidLen        = 8
	sizeLen       = 12
	modTimeLen    = 12
	checksumLen   = 8
	typeflagLen   = 1
	linkNameLen   = 100
	magicLen      = 8
	userNameLen   = 32
	groupNameLen  = 32
	devLen        = 8
	namePrefixLen = 155
)

// Typeflag values.
const (
	TypeNormal     byte = '0'
	TypeOldNormal  byte = 0
	TypeHardLink   byte = '1'
	TypeSymlink    byte = '2'
	TypeCharDev    byte = '3'
	TypeBlockDev   byte = '4'
	TypeDirectory  byte = '5'
	TypeFIFO       byte = '6'
	TypeContiguous byte = '7'
)

// MagicUstar is written into the magic field of every produced header.
const MagicUstar = "ustar  "

type block [BlockSize]byte

var zeroBlock block

func (b *block) isZero() bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

// paddingSize returns the number of zero bytes needed after size bytes to
// reach the next block boundary.
func paddingSize(size int64) int64 {
	r := size % BlockSize
	if r == 0 {
		return 0
	}
	return BlockSize - r
}
