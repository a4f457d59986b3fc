package tarstream

import (
	"os"
	"strings"
)

// Header is the decoded form of one 512-byte ustar header block. It is a
// plain value: copying it copies the entry metadata. Mutation on the write
// path goes through Entry setters; serialization is a pure function of the
// final field values.
type Header struct {
	Name       string
	Mode       int64
	UserID     int64
	GroupID    int64
	Size       int64
	ModTime    int64 // Unix seconds.
	Checksum   int64
	Typeflag   byte
	LinkName   string
	Magic      string
	UserName   string
	GroupName  string
	DevMajor   int64
	DevMinor   int64
	NamePrefix string
}

// NewHeader returns a Header with the ustar magic set.
func NewHeader() Header {
	return Header{Magic: MagicUstar}
}

// parseString decodes a fixed-width text field. The value ends at the first
// NUL or at the end of the field, whichever comes first.
func parseString(b []byte, offset, length int) string {
	end := offset + length
	for i := offset; i < end; i++ {
		if b[i] == 0 {
			end = i
			break
		}
	}
	return string(b[offset:end])
}

// putString writes as many bytes of s as fit in length and zero-fills the
// remainder. Returns offset+length.
func putString(s string, b []byte, offset, length int) int {
	n := copy(b[offset:offset+length], s)
	for i := offset + n; i < offset+length; i++ {
		b[i] = 0
	}
	return offset + length
}

// CreateHeader builds a header for a file or directory entry. Path
// separators are normalized to '/' and leading/trailing slashes trimmed.
// Names longer than 100 bytes are split at the last '/': the left part goes
// into NamePrefix. Directories get the directory typeflag, a trailing '/'
// on the name, and a forced zero size.
func CreateHeader(entryName string, size, modTime int64, dir bool, permissions int64) Header {
	name := strings.ReplaceAll(entryName, string(os.PathSeparator), "/")
	name = strings.Trim(name, "/")

	header := NewHeader()
	header.Mode = permissions

	if i := strings.LastIndexByte(name, '/'); len(name) > nameLen && i >= 0 {
		header.NamePrefix = name[:i]
		header.Name = name[i+1:]
	} else {
		header.Name = name
	}
	if dir {
		header.Typeflag = TypeDirectory
		if !strings.HasSuffix(header.Name, "/") {
			header.Name += "/"
		}
		header.Size = 0
	} else {
		header.Typeflag = TypeNormal
		header.Size = size
	}
	header.ModTime = modTime
	return header
}
