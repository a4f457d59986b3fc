package tarstream

import (
	"os"
	"strings"
	"time"
)

// Entry is one archive member: a header plus, on the write path, the
// filesystem object it was built from. Entries read from a stream have no
// backing file.
type Entry struct {
	header Header
	path   string
	fi     os.FileInfo
}

// NewEntry wraps a pre-built header.
func NewEntry(header Header) *Entry {
	return &Entry{header: header}
}

// NewEntryFromBlock parses an entry from a raw 512-byte header block.
func NewEntryFromBlock(b []byte) *Entry {
	return &Entry{header: ParseHeaderBlock(b)}
}

// NewEntryFromFile builds a write-path entry describing the filesystem
// object at path, stored in the archive under entryName.
func NewEntryFromFile(path, entryName string) (*Entry, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &Entry{
		header: CreateHeader(entryName, fi.Size(), fi.ModTime().Unix(), fi.IsDir(), int64(fi.Mode().Perm())),
		path:   path,
		fi:     fi,
	}, nil
}

// Header returns a copy of the entry's header.
func (e *Entry) Header() Header { return e.header }

// Path returns the backing file path, or "" for entries read from a stream.
func (e *Entry) Path() string { return e.path }

// Name returns the full entry name, joining the ustar prefix field when set.
func (e *Entry) Name() string {
	if e.header.NamePrefix != "" {
		return e.header.NamePrefix + "/" + e.header.Name
	}
	return e.header.Name
}

// Size returns the declared content size in bytes.
func (e *Entry) Size() int64 { return e.header.Size }

// ModTime returns the entry's modification time.
func (e *Entry) ModTime() time.Time { return time.Unix(e.header.ModTime, 0) }

// Mode returns the permission bits.
func (e *Entry) Mode() int64 { return e.header.Mode }

// Typeflag returns the entry type indicator byte.
func (e *Entry) Typeflag() byte { return e.header.Typeflag }

// LinkName returns the link target for link entries.
func (e *Entry) LinkName() string { return e.header.LinkName }

// IsDirectory reports whether the entry describes a directory: a backing
// directory, the directory typeflag, or a name ending in '/'.
func (e *Entry) IsDirectory() bool {
	if e.fi != nil && e.fi.IsDir() {
		return true
	}
	if e.header.Typeflag == TypeDirectory {
		return true
	}
	return strings.HasSuffix(e.header.Name, "/")
}

// IsDescendant reports whether other's full name is a string prefix of this
// entry's full name. The test is deliberately a raw prefix match, not a
// path-segment match: "ab" counts as an ancestor of "abc".
func (e *Entry) IsDescendant(other *Entry) bool {
	return strings.HasPrefix(e.Name(), other.Name())
}

// Setters for the write path. Entries read from a stream are replaced
// wholesale by the next Reader.Next call and are not meant to be mutated.

func (e *Entry) SetName(name string)    { e.header.Name = name }
func (e *Entry) SetSize(size int64)     { e.header.Size = size }
func (e *Entry) SetMode(mode int64)     { e.header.Mode = mode }
func (e *Entry) SetModTime(t time.Time) { e.header.ModTime = t.Unix() }

func (e *Entry) SetUserID(id int64)        { e.header.UserID = id }
func (e *Entry) SetGroupID(id int64)       { e.header.GroupID = id }
func (e *Entry) SetUserName(name string)   { e.header.UserName = name }
func (e *Entry) SetGroupName(name string)  { e.header.GroupName = name }
func (e *Entry) SetLinkName(name string)   { e.header.LinkName = name }
func (e *Entry) SetTypeflag(typeflag byte) { e.header.Typeflag = typeflag }

// SetIDs sets the numeric user and group IDs.
func (e *Entry) SetIDs(userID, groupID int64) {
	e.header.UserID = userID
	e.header.GroupID = groupID
}

// SetNames sets the symbolic user and group names.
func (e *Entry) SetNames(userName, groupName string) {
	e.header.UserName = userName
	e.header.GroupName = groupName
}

// ComputeChecksum sums all bytes of a header block, each taken as an
// unsigned value. The checksum field must hold spaces while summing.
func ComputeChecksum(b []byte) int64 {
	var sum int64
	for _, c := range b {
		sum += int64(c)
	}
	return sum
}

// Field offsets within the header block, used by the checksum overwrite.
const (
	checksumOffset = 148
)

// WriteHeaderBlock serializes the entry header into b, which must be at
// least 512 bytes. The checksum is produced in two phases: the field is
// first filled with spaces, the sum is taken over the fully populated
// block, and the real value then overwrites the placeholder. The checksum
// covers its own field's placeholder content, so the order is load-bearing.
func (e *Entry) WriteHeaderBlock(b []byte) {
	offset := 0
	offset = putString(e.header.Name, b, offset, nameLen)
	offset = putOctal(e.header.Mode, b, offset, modeLen)
	offset = putOctal(e.header.UserID, b, offset, uidLen)
	offset = putOctal(e.header.GroupID, b, offset, gidLen)
	offset = putOctal(e.header.Size, b, offset, sizeLen)
	offset = putOctal(e.header.ModTime, b, offset, modTimeLen)
	for i := 0; i < checksumLen; i++ {
		b[offset+i] = ' '
	}
	offset += checksumLen
	b[offset] = e.header.Typeflag
	offset += typeflagLen
	offset = putString(e.header.LinkName, b, offset, linkNameLen)
	offset = putString(e.header.Magic, b, offset, magicLen)
	offset = putString(e.header.UserName, b, offset, userNameLen)
	offset = putString(e.header.GroupName, b, offset, groupNameLen)
	offset = putOctal(e.header.DevMajor, b, offset, devLen)
	offset = putOctal(e.header.DevMinor, b, offset, devLen)
	offset = putString(e.header.NamePrefix, b, offset, namePrefixLen)
	for i := offset; i < int(HeaderSize); i++ {
		b[i] = 0
	}

	checksum := ComputeChecksum(b[:HeaderSize])
	putChecksumOctal(checksum, b, checksumOffset, checksumLen)
	e.header.Checksum = checksum
}

// ParseHeaderBlock decodes a 512-byte header block field by field, in
// table order.
func ParseHeaderBlock(b []byte) Header {
	var header Header
	offset := 0
	header.Name = parseString(b, offset, nameLen)
	offset += nameLen
	header.Mode = parseOctal(b, offset, modeLen)
	offset += modeLen
	header.UserID = parseOctal(b, offset, uidLen)
	offset += uidLen
	header.GroupID = parseOctal(b, offset, gidLen)
	offset += gidLen
	header.Size = parseOctal(b, offset, sizeLen)
	offset += sizeLen
	header.ModTime = parseOctal(b, offset, modTimeLen)
	offset += modTimeLen
	header.Checksum = parseOctal(b, offset, checksumLen)
	offset += checksumLen
	header.Typeflag = b[offset]
	offset += typeflagLen
	header.LinkName = parseString(b, offset, linkNameLen)
	offset += linkNameLen
	header.Magic = parseString(b, offset, magicLen)
	offset += magicLen
	header.UserName = parseString(b, offset, userNameLen)
	offset += userNameLen
	header.GroupName = parseString(b, offset, groupNameLen)
	offset += groupNameLen
	header.DevMajor = parseOctal(b, offset, devLen)
	offset += devLen
	header.DevMinor = parseOctal(b, offset, devLen)
	offset += devLen
	header.NamePrefix = parseString(b, offset, namePrefixLen)
	return header
}
